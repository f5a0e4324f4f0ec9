package model

// EffectKind tags a SkillEffect variant.
type EffectKind int8

const (
	EffectUnknown EffectKind = iota
	EffectDamage
	EffectDOT
	EffectHOT
	EffectStun
	EffectSlow
	EffectBuff
	EffectDebuff
)

// String returns the kind name used in data files and log entries.
func (k EffectKind) String() string {
	switch k {
	case EffectDamage:
		return "damage"
	case EffectDOT:
		return "dot"
	case EffectHOT:
		return "hot"
	case EffectStun:
		return "stun"
	case EffectSlow:
		return "slow"
	case EffectBuff:
		return "buff"
	case EffectDebuff:
		return "debuff"
	default:
		return "unknown"
	}
}

// EffectTarget selects who receives an effect.
type EffectTarget int8

const (
	TargetEnemy EffectTarget = iota // the action's target
	TargetSelf                      // the acting character
	TargetAlly
	TargetArea
)

// ParseEffectTarget converts a selector name; empty means TargetEnemy.
func ParseEffectTarget(name string) EffectTarget {
	switch name {
	case "self":
		return TargetSelf
	case "ally":
		return TargetAlly
	case "area":
		return TargetArea
	default:
		return TargetEnemy
	}
}

// SkillEffect is a tagged variant over effect kinds.
// Implemented only by the types in this file; dispatch with a type switch.
type SkillEffect interface {
	Kind() EffectKind
	Target() EffectTarget
	// EffectDuration is the lifetime in simulation time units (0 for instant).
	EffectDuration() float64

	sealed()
}

// Selector is embedded into every variant. Embedding it alone does not
// make a type a SkillEffect.
type Selector struct {
	Targets EffectTarget
}

func (s Selector) Target() EffectTarget { return s.Targets }

// DamageEffect is the generic "damage" kind; it ticks like a DOT.
type DamageEffect struct {
	Selector
	Value    float64
	Duration float64
}

func (e DamageEffect) Kind() EffectKind        { return EffectDamage }
func (e DamageEffect) EffectDuration() float64 { return e.Duration }
func (DamageEffect) sealed()                   {}

// DOTEffect deals Value damage every tick for Duration.
type DOTEffect struct {
	Selector
	Value    float64
	Duration float64
}

func (e DOTEffect) Kind() EffectKind        { return EffectDOT }
func (e DOTEffect) EffectDuration() float64 { return e.Duration }
func (DOTEffect) sealed()                   {}

// HOTEffect heals Value every tick for Duration.
type HOTEffect struct {
	Selector
	Value    float64
	Duration float64
}

func (e HOTEffect) Kind() EffectKind        { return EffectHOT }
func (e HOTEffect) EffectDuration() float64 { return e.Duration }
func (HOTEffect) sealed()                   {}

// StunEffect prevents the target from initiating actions.
type StunEffect struct {
	Selector
	Duration float64
}

func (e StunEffect) Kind() EffectKind        { return EffectStun }
func (e StunEffect) EffectDuration() float64 { return e.Duration }
func (StunEffect) sealed()                   {}

// SlowEffect scales movement speed by (1 - Value).
type SlowEffect struct {
	Selector
	Value    float64
	Duration float64
}

func (e SlowEffect) Kind() EffectKind        { return EffectSlow }
func (e SlowEffect) EffectDuration() float64 { return e.Duration }
func (SlowEffect) sealed()                   {}

// BuffEffect adds Stats while active. As a skill effect its Value also feeds
// the skill layer of total-stat aggregation.
type BuffEffect struct {
	Selector
	Value    float64
	Duration float64
	Stats    PrimaryStats
}

func (e BuffEffect) Kind() EffectKind        { return EffectBuff }
func (e BuffEffect) EffectDuration() float64 { return e.Duration }
func (BuffEffect) sealed()                   {}

// DebuffEffect subtracts Stats while active.
type DebuffEffect struct {
	Selector
	Value    float64
	Duration float64
	Stats    PrimaryStats
}

func (e DebuffEffect) Kind() EffectKind        { return EffectDebuff }
func (e DebuffEffect) EffectDuration() float64 { return e.Duration }
func (DebuffEffect) sealed()                   {}

// UnknownEffect keeps a kind this build does not understand.
type UnknownEffect struct {
	Selector
	Name     string
	Value    float64
	Duration float64
}

func (e UnknownEffect) Kind() EffectKind        { return EffectUnknown }
func (e UnknownEffect) EffectDuration() float64 { return e.Duration }
func (UnknownEffect) sealed()                   {}
