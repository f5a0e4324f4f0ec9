package model

// StatusEffectInstance tracks one running effect on its target.
// Created when an action with a matching effect resolves; removed when
// Remaining reaches 0 or the target leaves combat.
type StatusEffectInstance struct {
	ID     string
	Effect SkillEffect
	// Remaining lifetime in simulation time units.
	Remaining float64
	// Source is the ID of the character that applied the effect.
	Source string
	// TargetID is the character carrying the instance. Set by
	// Character.AddStatusEffect.
	TargetID string
	// TickElapsed accumulates time toward the next periodic tick.
	TickElapsed float64
	// Ticks counts periodic applications so far.
	Ticks int
}

// IsExpired returns true if the effect duration has elapsed.
func (s *StatusEffectInstance) IsExpired() bool {
	return s.Remaining <= 0
}

// Kind returns the effect kind of the instance.
func (s *StatusEffectInstance) Kind() EffectKind {
	return s.Effect.Kind()
}
