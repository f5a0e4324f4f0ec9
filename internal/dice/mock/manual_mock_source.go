package mockdice

import (
	"sync"

	"github.com/udisondev/galaxies/internal/dice"
)

// Never is returned once the queued rolls run out; it is above every
// probability the resolver rolls against, so nothing triggers.
const Never = 1.0

// ManualMockSource implements dice.Source for testing with predetermined rolls
type ManualMockSource struct {
	mu    sync.Mutex
	rolls []float64
	index int
	drawn int
}

var _ dice.Source = (*ManualMockSource)(nil)

// NewManualMockSource creates a source that returns rolls in order.
func NewManualMockSource(rolls ...float64) *ManualMockSource {
	return &ManualMockSource{rolls: rolls}
}

// SetNextRoll queues one more roll
func (m *ManualMockSource) SetNextRoll(roll float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append(m.rolls, roll)
}

// SetRolls replaces the queue and rewinds it
func (m *ManualMockSource) SetRolls(rolls []float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = rolls
	m.index = 0
}

// Drawn returns how many rolls were taken so far, including Never fallbacks.
func (m *ManualMockSource) Drawn() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.drawn
}

// Float64 implements dice.Source.Float64
func (m *ManualMockSource) Float64() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.drawn++
	if m.index >= len(m.rolls) {
		return Never
	}
	roll := m.rolls[m.index]
	m.index++
	return roll
}
