// Package effect tracks timed status effects and advances them with an
// explicit Update(delta) tick.
package effect

import (
	"log/slog"
	"math"
	"sync"

	"github.com/udisondev/galaxies/internal/config"
	"github.com/udisondev/galaxies/internal/model"
	"github.com/udisondev/galaxies/internal/uuid"
)

// epsilon absorbs float drift when comparing accumulated tick time.
const epsilon = 1e-9

// EventType tags an Event.
type EventType int8

const (
	EventTick EventType = iota
	EventExpire
	EventCancel
)

// String returns event type name.
func (t EventType) String() string {
	switch t {
	case EventTick:
		return "tick"
	case EventExpire:
		return "expire"
	case EventCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Event describes one thing that happened to an instance during Update.
type Event struct {
	Type     EventType
	TargetID string
	EffectID string
	Kind     model.EffectKind
	// Amount is health removed (DOT) or restored (HOT) by a tick.
	Amount float64
}

// Manager owns the lifecycle of status effect instances across the
// characters of one encounter. Instances are stored on their target; the
// manager remembers which targets carry any.
//
// Thread-safe: all methods are protected by sync.Mutex. Characters passed in
// must not be mutated concurrently by other goroutines.
type Manager struct {
	mu  sync.Mutex
	cfg config.Combat
	ids uuid.Generator

	targets map[string]*model.Character
	order   []string
}

// NewManager creates a Manager. ids names new instances.
func NewManager(cfg config.Combat, ids uuid.Generator) *Manager {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = config.DefaultCombat().TickInterval
	}
	if cfg.MaxEffectsPerTarget <= 0 {
		cfg.MaxEffectsPerTarget = config.DefaultCombat().MaxEffectsPerTarget
	}
	return &Manager{
		cfg:     cfg,
		ids:     ids,
		targets: make(map[string]*model.Character),
	}
}

// Apply attaches eff to target. source is the character that caused it and
// may be nil for environmental effects.
//
// Returns the created instance, or nil if the effect has nothing to track
// (zero duration). Unknown kinds return *EffectApplicationError and leave
// target untouched.
func (m *Manager) Apply(source, target *model.Character, eff model.SkillEffect) (*model.StatusEffectInstance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sourceID := ""
	if source != nil {
		sourceID = source.ID()
	}

	switch e := eff.(type) {
	case model.DamageEffect:
		return m.attachPeriodic(sourceID, target, e, e.Value, e.Duration), nil
	case model.DOTEffect:
		return m.attachPeriodic(sourceID, target, e, e.Value, e.Duration), nil
	case model.HOTEffect:
		return m.attachPeriodic(sourceID, target, e, e.Value, e.Duration), nil
	case model.StunEffect, model.SlowEffect, model.BuffEffect, model.DebuffEffect:
		return m.attachTimed(sourceID, target, e), nil
	case model.UnknownEffect:
		slog.Warn("skipping effect of unknown kind",
			"effect", e.Name,
			"target", target.ID())
		return nil, &EffectApplicationError{Kind: e.Kind(), Name: e.Name, TargetID: target.ID(), Err: ErrUnknownEffectKind}
	default:
		return nil, &EffectApplicationError{Kind: model.EffectUnknown, TargetID: target.ID(), Err: ErrUnknownEffectKind}
	}
}

// attachPeriodic handles DOT-like effects. A zero duration applies a single
// tick immediately instead of creating an instance.
func (m *Manager) attachPeriodic(sourceID string, target *model.Character, eff model.SkillEffect, value, duration float64) *model.StatusEffectInstance {
	if !positive(duration) {
		if positive(value) {
			tick(target, eff)
		}
		return nil
	}
	return m.attach(sourceID, target, eff, duration)
}

func (m *Manager) attachTimed(sourceID string, target *model.Character, eff model.SkillEffect) *model.StatusEffectInstance {
	if !positive(eff.EffectDuration()) {
		return nil
	}
	return m.attach(sourceID, target, eff, eff.EffectDuration())
}

// attach must be called with mu held.
func (m *Manager) attach(sourceID string, target *model.Character, eff model.SkillEffect, duration float64) *model.StatusEffectInstance {
	active := target.StatusEffects()
	if len(active) >= m.cfg.MaxEffectsPerTarget {
		oldest := active[0]
		target.RemoveStatusEffect(oldest.ID)

		slog.Debug("effect limit reached, removed oldest",
			"removed", oldest.ID,
			"kind", oldest.Kind(),
			"target", target.ID())
	}

	inst := &model.StatusEffectInstance{
		ID:        m.ids.New(),
		Effect:    eff,
		Remaining: duration,
		Source:    sourceID,
		TargetID:  target.ID(),
	}
	target.AddStatusEffect(inst)
	m.track(target)

	slog.Debug("effect started",
		"id", inst.ID,
		"kind", eff.Kind(),
		"source", sourceID,
		"target", target.ID(),
		"duration", duration)

	return inst
}

// track must be called with mu held.
func (m *Manager) track(target *model.Character) {
	if _, ok := m.targets[target.ID()]; ok {
		return
	}
	m.targets[target.ID()] = target
	m.order = append(m.order, target.ID())
}

// Update advances every active instance by delta and removes the expired
// ones. Periodic effects tick once per TickInterval of elapsed time, never
// beyond their remaining duration. Call exactly once per simulation step.
func (m *Manager) Update(delta float64) []Event {
	if !positive(delta) || math.IsInf(delta, 0) {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var events []Event
	n := 0
	for _, id := range m.order {
		target := m.targets[id]
		events = m.advance(target, delta, events)
		if len(target.StatusEffects()) == 0 {
			delete(m.targets, id)
			continue
		}
		m.order[n] = id
		n++
	}
	m.order = m.order[:n]
	return events
}

// advance must be called with mu held.
func (m *Manager) advance(target *model.Character, delta float64, events []Event) []Event {
	for _, inst := range target.StatusEffects() {
		cancelled := false

		if periodic(inst.Effect) {
			inst.TickElapsed += math.Min(delta, inst.Remaining)
			for inst.TickElapsed+epsilon >= m.cfg.TickInterval {
				inst.TickElapsed -= m.cfg.TickInterval
				if target.IsDead() {
					cancelled = true
					break
				}
				amount := tick(target, inst.Effect)
				inst.Ticks++
				events = append(events, Event{
					Type: EventTick, TargetID: target.ID(), EffectID: inst.ID,
					Kind: inst.Kind(), Amount: amount,
				})
			}
			// DOT stops once the target has nothing left to lose.
			if target.IsDead() {
				cancelled = true
			}
		}

		inst.Remaining -= delta
		if inst.Remaining <= epsilon {
			inst.Remaining = 0
		}

		switch {
		case cancelled:
			target.RemoveStatusEffect(inst.ID)
			events = append(events, Event{Type: EventCancel, TargetID: target.ID(), EffectID: inst.ID, Kind: inst.Kind()})
			slog.Debug("effect cancelled", "id", inst.ID, "kind", inst.Kind(), "target", target.ID())
		case inst.IsExpired():
			target.RemoveStatusEffect(inst.ID)
			events = append(events, Event{Type: EventExpire, TargetID: target.ID(), EffectID: inst.ID, Kind: inst.Kind()})
			slog.Debug("effect expired", "id", inst.ID, "kind", inst.Kind(), "target", target.ID())
		}
	}
	return events
}

// RemoveTarget synchronously clears every instance on c and forgets it.
func (m *Manager) RemoveTarget(c *model.Character) []*model.StatusEffectInstance {
	m.mu.Lock()
	defer m.mu.Unlock()

	cleared := c.ClearStatusEffects()
	if _, ok := m.targets[c.ID()]; ok {
		delete(m.targets, c.ID())
		for i, id := range m.order {
			if id == c.ID() {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
	}

	if len(cleared) > 0 {
		slog.Debug("target removed, effects cleared",
			"target", c.ID(),
			"count", len(cleared))
	}
	return cleared
}

// Remove detaches one instance from target before it expires.
func (m *Manager) Remove(target *model.Character, id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return target.RemoveStatusEffect(id) != nil
}

// TargetCount returns how many characters currently carry instances.
func (m *Manager) TargetCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.order)
}

func positive(v float64) bool {
	return v > 0 && !math.IsNaN(v)
}
