package model

import "fmt"

// SkillType selects the primary stats a skill scales with.
type SkillType int8

const (
	SkillAttack SkillType = iota
	SkillMagic
	SkillDefense
	SkillSupport
)

// String returns human-readable skill type name.
func (t SkillType) String() string {
	switch t {
	case SkillAttack:
		return "attack"
	case SkillMagic:
		return "magic"
	case SkillDefense:
		return "defense"
	case SkillSupport:
		return "support"
	default:
		return "unknown"
	}
}

// ParseSkillType converts a skill type name.
func ParseSkillType(name string) (SkillType, error) {
	switch name {
	case "attack", "":
		return SkillAttack, nil
	case "magic":
		return SkillMagic, nil
	case "defense":
		return SkillDefense, nil
	case "support":
		return SkillSupport, nil
	default:
		return 0, fmt.Errorf("unknown skill type %q", name)
	}
}

// Skill описывает изученный скилл персонажа.
type Skill struct {
	ID       string
	Name     string
	Type     SkillType
	Level    int32
	Damage   float64
	ManaCost float64
	Cooldown float64 // simulation time units
	Range    float64
	Effects  []SkillEffect
}

// EnemyAbility is an enemy's attack. Damage 0 means the configured default.
type EnemyAbility struct {
	ID       string
	Name     string
	Damage   float64
	Cooldown float64
	Range    float64
	Effects  []SkillEffect
}
