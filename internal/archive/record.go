// Package archive copies combat log entries to external stores.
//
// A Pump subscribes to encounter logs, buffers entries without blocking
// the simulation and flushes them in batches to every configured Sink.
package archive

import (
	"context"
	"time"

	"github.com/udisondev/galaxies/internal/game/combat"
)

// Sink stores batches of combat log entries.
type Sink interface {
	Name() string
	Write(ctx context.Context, entries []combat.Entry) error
}

// Record is the serialised form of a combat log entry.
type Record struct {
	Seq       uint64    `json:"seq"`
	Encounter string    `json:"encounter"`
	Type      string    `json:"type"`
	Attacker  string    `json:"attacker"`
	Target    string    `json:"target"`
	Action    string    `json:"action,omitempty"`
	Damage    float64   `json:"damage"`
	Critical  bool      `json:"critical,omitempty"`
	Blocked   bool      `json:"blocked,omitempty"`
	Dodged    bool      `json:"dodged,omitempty"`
	Effects   []string  `json:"effects,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRecord flattens e. Effects keep only their kind names.
func NewRecord(e combat.Entry) Record {
	r := Record{
		Seq:       e.Seq,
		Encounter: e.Encounter,
		Type:      string(e.Type),
		Attacker:  e.AttackerID,
		Target:    e.TargetID,
		Action:    e.ActionID,
		Damage:    e.Damage,
		Critical:  e.Critical,
		Blocked:   e.Blocked,
		Dodged:    e.Dodged,
		Timestamp: e.Timestamp.UTC(),
	}
	if len(e.Effects) > 0 {
		r.Effects = e.EffectKinds()
	}
	return r
}
