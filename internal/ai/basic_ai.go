package ai

import (
	"github.com/udisondev/galaxies/internal/game/stats"
	"github.com/udisondev/galaxies/internal/model"
)

// DefaultHealThreshold is the health share under which BasicAI casts support skills.
const DefaultHealThreshold = 0.5

// BasicAI is a greedy controller.
//
// Players heal when an ally drops under HealThreshold of max health,
// otherwise they use the ready, affordable damaging skill with the highest
// base damage on the weakest opponent. Enemies use the first ready ability
// and fall back to a basic attack.
type BasicAI struct {
	HealThreshold float64
}

// NewBasicAI creates BasicAI with DefaultHealThreshold.
func NewBasicAI() *BasicAI {
	return &BasicAI{HealThreshold: DefaultHealThreshold}
}

// Decide implements Controller.
func (ai *BasicAI) Decide(self *model.Character, field Battlefield) (Decision, bool) {
	if self.IsDead() || self.IsStunned() {
		return Decision{}, false
	}

	target := weakest(field.Alive(opponentOf(self.Kind())))
	if target == nil {
		return Decision{}, false
	}

	var d Decision
	var ok bool
	if self.Kind() == model.KindPlayer {
		d, ok = ai.decidePlayer(self, target, field)
	} else {
		d, ok = decideEnemy(self, target, field), true
	}

	return d, ok
}

func (ai *BasicAI) decidePlayer(self, target *model.Character, field Battlefield) (Decision, bool) {
	if ai.anyWounded(field.Alive(self.Kind())) {
		for _, s := range self.Skills() {
			if s.Type == model.SkillSupport && usable(self, s, field) {
				// cast at the opponent; ally and self selectors route the effects
				return Decision{Target: target, ActionID: s.ID}, true
			}
		}
	}

	var best *model.Skill
	for _, s := range self.Skills() {
		if s.Type == model.SkillSupport || !usable(self, s, field) {
			continue
		}
		if best == nil || s.Damage > best.Damage {
			best = s
		}
	}
	if best == nil {
		return Decision{}, false
	}
	return Decision{Target: target, ActionID: best.ID}, true
}

func decideEnemy(self, target *model.Character, field Battlefield) Decision {
	for _, a := range self.Abilities() {
		if field.Ready(self, a.ID) {
			return Decision{Target: target, ActionID: a.ID}
		}
	}
	return Decision{Target: target}
}

func (ai *BasicAI) anyWounded(allies []*model.Character) bool {
	for _, c := range allies {
		maxHealth := stats.Derive(c).MaxHealth
		if maxHealth > 0 && c.Health()/maxHealth < ai.HealThreshold {
			return true
		}
	}
	return false
}

func usable(self *model.Character, s *model.Skill, field Battlefield) bool {
	return self.Mana() >= s.ManaCost && field.Ready(self, s.ID)
}

// weakest returns the living character with the lowest health, first on ties.
func weakest(cs []*model.Character) *model.Character {
	var pick *model.Character
	for _, c := range cs {
		if pick == nil || c.Health() < pick.Health() {
			pick = c
		}
	}
	return pick
}

func opponentOf(k model.Kind) model.Kind {
	if k == model.KindPlayer {
		return model.KindEnemy
	}
	return model.KindPlayer
}
