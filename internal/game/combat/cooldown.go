package combat

import (
	"log/slog"
	"sync"
)

// cooldownKey identifies one action of one character.
type cooldownKey struct {
	actorID  string
	actionID string
}

// CooldownTracker tracks remaining cooldowns in simulation time.
// An action is ready again once its remaining time reaches 0.
//
// Thread-safe: all methods are protected by sync.Mutex.
type CooldownTracker struct {
	mu        sync.Mutex
	remaining map[cooldownKey]float64
}

// NewCooldownTracker creates an empty tracker.
func NewCooldownTracker() *CooldownTracker {
	return &CooldownTracker{remaining: make(map[cooldownKey]float64)}
}

// Start puts actionID of actorID on cooldown for duration.
// Non-positive durations are ignored.
func (t *CooldownTracker) Start(actorID, actionID string, duration float64) {
	if !(duration > 0) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.remaining[cooldownKey{actorID, actionID}] = duration
}

// Remaining returns the time left before the action is ready (0 if ready).
func (t *CooldownTracker) Remaining(actorID, actionID string) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining[cooldownKey{actorID, actionID}]
}

// Ready reports whether the action can be used.
func (t *CooldownTracker) Ready(actorID, actionID string) bool {
	return t.Remaining(actorID, actionID) <= 0
}

// Tick advances all cooldowns by delta and drops finished ones.
func (t *CooldownTracker) Tick(delta float64) {
	if !(delta > 0) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	for k, left := range t.remaining {
		left -= delta
		if left <= 1e-9 {
			delete(t.remaining, k)
			slog.Debug("cooldown finished", "actor", k.actorID, "action", k.actionID)
			continue
		}
		t.remaining[k] = left
	}
}

// Clear drops every cooldown of actorID.
func (t *CooldownTracker) Clear(actorID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for k := range t.remaining {
		if k.actorID == actorID {
			delete(t.remaining, k)
		}
	}
}
