package model

import "math"

// Kind distinguishes players from enemies. Both share the same stat shape.
type Kind int8

const (
	KindPlayer Kind = iota
	KindEnemy
)

// String returns human-readable kind name.
func (k Kind) String() string {
	if k == KindEnemy {
		return "enemy"
	}
	return "player"
}

// HasStats exposes identity, level and base attributes.
type HasStats interface {
	ID() string
	Level() int32
	BaseStats() PrimaryStats
}

// HasEquipment exposes the equipment loadout.
type HasEquipment interface {
	Equipment() *Equipment
}

// HasSkills exposes learned skills in order.
type HasSkills interface {
	Skills() []*Skill
}

// HasStatusEffects exposes active status effects in application order.
type HasStatusEffects interface {
	StatusEffects() []*StatusEffectInstance
}

// Combatant is everything the stat resolver reads.
type Combatant interface {
	HasStats
	HasEquipment
	HasSkills
	HasStatusEffects
}

// Character — игрок или враг.
// Owns its equipment, skills and active status effects exclusively.
// Not safe for concurrent use: an encounter drives it from one goroutine.
type Character struct {
	id         string
	name       string
	kind       Kind
	level      int32
	experience int64

	base      PrimaryStats
	equipment Equipment
	skills    []*Skill
	abilities []*EnemyAbility

	effects     map[string]*StatusEffectInstance
	effectOrder []string

	health  float64
	mana    float64
	removed bool
}

var _ Combatant = (*Character)(nil)

// NewCharacter creates a character with zero health and mana.
// Callers fill the pools once derived maxima are known.
func NewCharacter(id, name string, kind Kind, level int32, base PrimaryStats) *Character {
	return &Character{
		id:      id,
		name:    name,
		kind:    kind,
		level:   level,
		base:    base,
		effects: make(map[string]*StatusEffectInstance),
	}
}

func (c *Character) ID() string              { return c.id }
func (c *Character) Name() string            { return c.name }
func (c *Character) Kind() Kind              { return c.kind }
func (c *Character) Level() int32            { return c.level }
func (c *Character) Experience() int64       { return c.experience }
func (c *Character) BaseStats() PrimaryStats { return c.base }
func (c *Character) Equipment() *Equipment   { return &c.equipment }
func (c *Character) Skills() []*Skill        { return c.skills }

// AddExperience adds xp (negative values are ignored).
func (c *Character) AddExperience(xp int64) {
	if xp > 0 {
		c.experience += xp
	}
}

// SetExperience overwrites accumulated experience (negative becomes 0).
func (c *Character) SetExperience(xp int64) {
	c.experience = max(xp, 0)
}

// GainLevel raises level by one and adds the allocated attribute points.
func (c *Character) GainLevel(points PrimaryStats) {
	c.level++
	c.base = c.base.Add(points.Sanitize())
}

// LearnSkill appends a skill, replacing one with the same ID.
func (c *Character) LearnSkill(s *Skill) {
	for i, existing := range c.skills {
		if existing.ID == s.ID {
			c.skills[i] = s
			return
		}
	}
	c.skills = append(c.skills, s)
}

// Skill returns the learned skill with id, or nil.
func (c *Character) Skill(id string) *Skill {
	for _, s := range c.skills {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Abilities returns enemy abilities in learn order.
func (c *Character) Abilities() []*EnemyAbility { return c.abilities }

// LearnAbility appends an enemy ability, replacing one with the same ID.
func (c *Character) LearnAbility(a *EnemyAbility) {
	for i, existing := range c.abilities {
		if existing.ID == a.ID {
			c.abilities[i] = a
			return
		}
	}
	c.abilities = append(c.abilities, a)
}

// Ability returns the enemy ability with id, or nil.
func (c *Character) Ability(id string) *EnemyAbility {
	for _, a := range c.abilities {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// Health returns current health.
func (c *Character) Health() float64 { return c.health }

// SetHealth sets health clamped to [0, maxHealth].
func (c *Character) SetHealth(hp, maxHealth float64) {
	c.health = clampPool(hp, maxHealth)
}

// TakeDamage lowers health by amount (never below 0) and returns the new value.
func (c *Character) TakeDamage(amount float64) float64 {
	if amount <= 0 {
		return c.health
	}
	c.health -= amount
	if c.health < 0 {
		c.health = 0
	}
	return c.health
}

// Mana returns current mana.
func (c *Character) Mana() float64 { return c.mana }

// SetMana sets mana clamped to [0, maxMana].
func (c *Character) SetMana(mp, maxMana float64) {
	c.mana = clampPool(mp, maxMana)
}

// SpendMana subtracts cost. Returns false without change if mana is short.
func (c *Character) SpendMana(cost float64) bool {
	if cost <= 0 {
		return true
	}
	if c.mana < cost {
		return false
	}
	c.mana -= cost
	return true
}

// IsDead reports whether health reached 0.
func (c *Character) IsDead() bool { return c.health <= 0 }

// Removed reports whether the character left its encounter.
func (c *Character) Removed() bool { return c.removed }

// SetRemoved marks the character as removed from (or returned to) combat.
func (c *Character) SetRemoved(removed bool) { c.removed = removed }

// IsStunned reports whether any stun instance is active.
func (c *Character) IsStunned() bool {
	for _, id := range c.effectOrder {
		if _, ok := c.effects[id].Effect.(StunEffect); ok {
			return true
		}
	}
	return false
}

// StatusEffects returns active instances in application order.
func (c *Character) StatusEffects() []*StatusEffectInstance {
	out := make([]*StatusEffectInstance, 0, len(c.effectOrder))
	for _, id := range c.effectOrder {
		out = append(out, c.effects[id])
	}
	return out
}

// StatusEffect returns the instance with id, or nil.
func (c *Character) StatusEffect(id string) *StatusEffectInstance {
	return c.effects[id]
}

// AddStatusEffect attaches inst. An instance with the same ID is replaced in place.
func (c *Character) AddStatusEffect(inst *StatusEffectInstance) {
	if c.effects == nil {
		c.effects = make(map[string]*StatusEffectInstance)
	}
	if _, ok := c.effects[inst.ID]; !ok {
		c.effectOrder = append(c.effectOrder, inst.ID)
	}
	inst.TargetID = c.id
	c.effects[inst.ID] = inst
}

// RemoveStatusEffect detaches and returns the instance with id (nil if absent).
func (c *Character) RemoveStatusEffect(id string) *StatusEffectInstance {
	inst, ok := c.effects[id]
	if !ok {
		return nil
	}
	delete(c.effects, id)
	for i, eid := range c.effectOrder {
		if eid == id {
			c.effectOrder = append(c.effectOrder[:i], c.effectOrder[i+1:]...)
			break
		}
	}
	return inst
}

// ClearStatusEffects detaches all instances and returns them in order.
func (c *Character) ClearStatusEffects() []*StatusEffectInstance {
	out := c.StatusEffects()
	c.effects = make(map[string]*StatusEffectInstance)
	c.effectOrder = nil
	return out
}

func clampPool(v, maxValue float64) float64 {
	if maxValue < 0 {
		maxValue = 0
	}
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > maxValue {
		return maxValue
	}
	return v
}
