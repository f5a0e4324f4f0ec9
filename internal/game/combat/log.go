package combat

import (
	"sync"
	"time"

	"github.com/udisondev/galaxies/internal/model"
)

// DefaultLogCapacity bounds a combat log when no capacity is configured.
const DefaultLogCapacity = 1000

// EventType names the kind of exchange a log entry records.
type EventType string

const (
	EventPlayerAttack EventType = "player_attack"
	EventEnemyAttack  EventType = "enemy_attack"
)

// Entry is one resolved exchange.
type Entry struct {
	// Seq increases by one per appended entry and is never reused, even
	// after eviction or Clear.
	Seq        uint64
	Encounter  string
	Type       EventType
	AttackerID string
	TargetID   string
	ActionID   string
	Damage     float64
	Critical   bool
	Blocked    bool
	Dodged     bool
	Effects    []model.SkillEffect
	Timestamp  time.Time
}

// EffectKinds returns the names of the effects that took hold.
func (e Entry) EffectKinds() []string {
	out := make([]string, 0, len(e.Effects))
	for _, eff := range e.Effects {
		out = append(out, eff.Kind().String())
	}
	return out
}

// Observer receives every appended entry. It is called synchronously after
// the append and must not block.
type Observer func(Entry)

// Log is an append-only ring of the most recent combat entries.
// When full, the oldest entry is evicted first.
//
// Thread-safe: appends are serialised, so concurrent writers keep a total order.
type Log struct {
	mu        sync.Mutex
	buf       []Entry
	head      int // index of the oldest entry
	size      int
	seq       uint64
	observers []Observer
}

// NewLog creates a log holding at most capacity entries.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultLogCapacity
	}
	return &Log{buf: make([]Entry, capacity)}
}

// Subscribe registers an observer for subsequent appends.
func (l *Log) Subscribe(o Observer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observers = append(l.observers, o)
}

// Append stores e, assigning its sequence number, and returns the stored entry.
func (l *Log) Append(e Entry) Entry {
	l.mu.Lock()
	l.seq++
	e.Seq = l.seq

	idx := (l.head + l.size) % len(l.buf)
	if l.size == len(l.buf) {
		// full: overwrite the oldest and advance head
		l.head = (l.head + 1) % len(l.buf)
	} else {
		l.size++
	}
	l.buf[idx] = e
	observers := l.observers
	l.mu.Unlock()

	for _, o := range observers {
		o(e)
	}
	return e
}

// Entries returns a copy of all entries, oldest first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, l.size)
	for i := 0; i < l.size; i++ {
		out[i] = l.buf[(l.head+i)%len(l.buf)]
	}
	return out
}

// ForTarget returns entries whose target is id, oldest first.
func (l *Log) ForTarget(id string) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []Entry
	for i := 0; i < l.size; i++ {
		if e := l.buf[(l.head+i)%len(l.buf)]; e.TargetID == id {
			out = append(out, e)
		}
	}
	return out
}

// Last returns the most recent entry.
func (l *Log) Last() (Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.size == 0 {
		return Entry{}, false
	}
	return l.buf[(l.head+l.size-1)%len(l.buf)], true
}

// Len returns the number of stored entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.size
}

// Cap returns the maximum number of stored entries.
func (l *Log) Cap() int {
	return len(l.buf)
}

// Clear drops all entries. Sequence numbers keep increasing.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	clear(l.buf)
	l.head = 0
	l.size = 0
}
