// Package combat resolves attack exchanges between characters.
//
// A Resolver consumes derived stats and an injected random source, mutates
// target health, applies attached status effects and records one log entry
// per successful resolution.
package combat

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/galaxies/internal/config"
	"github.com/udisondev/galaxies/internal/dice"
	"github.com/udisondev/galaxies/internal/game/effect"
	"github.com/udisondev/galaxies/internal/game/stats"
	"github.com/udisondev/galaxies/internal/model"
)

// Result is the outcome of one exchange.
// At most one of Blocked and Dodged is set; when either is set Critical is false.
type Result struct {
	Damage   float64
	Effects  []model.SkillEffect
	Critical bool
	Blocked  bool
	Dodged   bool
}

// TargetSelector expands an effect's target selector into recipients.
type TargetSelector interface {
	Recipients(sel model.EffectTarget, source, target *model.Character) []*model.Character
}

// directSelector sends self-targeted effects to the source and everything
// else to the action's target.
type directSelector struct{}

func (directSelector) Recipients(sel model.EffectTarget, source, target *model.Character) []*model.Character {
	if sel == model.TargetSelf {
		return []*model.Character{source}
	}
	return []*model.Character{target}
}

// Resolver координирует обмен ударами между персонажами.
// Not safe for concurrent use on the same characters; run one resolver per
// encounter goroutine.
type Resolver struct {
	cfg     config.Combat
	rng     dice.Source
	effects *effect.Manager
	log     *Log

	encounterID string
	modifiers   []DamageModifier
	selector    TargetSelector
	now         func() time.Time
}

// NewResolver creates a Resolver. rng draws every crit, dodge and block roll.
func NewResolver(cfg config.Combat, rng dice.Source, effects *effect.Manager, log *Log) *Resolver {
	return &Resolver{
		cfg:      cfg,
		rng:      rng,
		effects:  effects,
		log:      log,
		selector: directSelector{},
		now:      time.Now,
	}
}

// SetDamageModifiers replaces the damage modifier chain (empty by default).
func (r *Resolver) SetDamageModifiers(mods ...DamageModifier) {
	r.modifiers = mods
}

// SetTargetSelector sets how effect selectors map to recipients.
func (r *Resolver) SetTargetSelector(s TargetSelector) {
	if s == nil {
		s = directSelector{}
	}
	r.selector = s
}

// SetClock overrides the timestamp source for log entries.
func (r *Resolver) SetClock(now func() time.Time) {
	r.now = now
}

// SetEncounterID tags log entries with the owning encounter.
func (r *Resolver) SetEncounterID(id string) {
	r.encounterID = id
}

// Log returns the log entries are appended to.
func (r *Resolver) Log() *Log { return r.log }

// Effects returns the status effect manager.
func (r *Resolver) Effects() *effect.Manager { return r.effects }

// ResolvePlayerAttack resolves attacker using skill on target.
//
// Workflow:
//  1. base = weapon attack + skill damage + stat bonus for the skill type
//  2. scaled by skill level, then by the damage modifier chain
//  3. mitigated by target level resistance, floored at MinDamage
//  4. critical roll against the attacker's derived crit chance
//  5. skill effects applied
//  6. target health reduced, entry logged
func (r *Resolver) ResolvePlayerAttack(attacker, target *model.Character, skill *model.Skill) (Result, error) {
	if err := ValidateAttack(attacker, target); err != nil {
		return Result{}, err
	}
	if skill == nil {
		return Result{}, fmt.Errorf("%w: skill is nil", ErrInvalidAction)
	}

	total := stats.TotalStats(attacker)
	derived := stats.Derive(attacker)

	base := BaseDamage(attacker.Equipment().WeaponStats().Attack, skill.Damage, StatBonus(total, skill.Type))
	damage := SkillDamage(base, skill.Level, r.cfg.SkillLevelBonus)
	damage = applyModifiers(r.modifiers, damage, attacker, skill)
	damage = Mitigate(damage, LevelResistance(target.Level(), r.cfg), r.cfg.MinDamage)

	var result Result
	if dice.Chance(r.rng, derived.CriticalChance) {
		damage *= derived.CriticalMultiplier
		result.Critical = true
	}
	result.Damage = damage
	result.Effects = r.applyEffects(attacker, target, skill.Effects)

	target.TakeDamage(damage)
	r.record(EventPlayerAttack, attacker, target, skill.ID, result)

	slog.Debug("player attack resolved",
		"attacker", attacker.ID(),
		"target", target.ID(),
		"skill", skill.ID,
		"damage", result.Damage,
		"critical", result.Critical,
		"targetHealth", target.Health())

	return result, nil
}

// ResolveEnemyAttack resolves enemy using ability on target. A nil ability
// is a basic attack with the default damage and no effects.
//
// First match wins: dodge (no damage), block (BlockDamageFactor of base
// damage is reported, health is untouched), otherwise base damage mitigated
// by TargetDefense. Enemy attacks never roll for critical hits.
func (r *Resolver) ResolveEnemyAttack(enemy, target *model.Character, ability *model.EnemyAbility) (Result, error) {
	if err := ValidateAttack(enemy, target); err != nil {
		return Result{}, err
	}
	if ability == nil {
		ability = &model.EnemyAbility{ID: "basic"}
	}

	targetStats := stats.Derive(target)
	base := EnemyBaseDamage(ability.Damage, enemy.Level(), stats.Derive(enemy).AttackPower, r.cfg)

	var result Result
	switch {
	case dice.Chance(r.rng, targetStats.DodgeChance):
		result.Dodged = true
	case dice.Chance(r.rng, targetStats.BlockChance):
		result.Blocked = true
		result.Damage = BlockedDamage(base, r.cfg)
	default:
		result.Damage = Mitigate(base, TargetDefense(target), r.cfg.MinDamage)
		result.Effects = r.applyEffects(enemy, target, ability.Effects)
		target.TakeDamage(result.Damage)
	}

	r.record(EventEnemyAttack, enemy, target, ability.ID, result)

	slog.Debug("enemy attack resolved",
		"enemy", enemy.ID(),
		"target", target.ID(),
		"ability", ability.ID,
		"damage", result.Damage,
		"dodged", result.Dodged,
		"blocked", result.Blocked,
		"targetHealth", target.Health())

	return result, nil
}

// applyEffects applies each effect to its recipients and returns the ones
// that took hold on at least one recipient. Unknown kinds are skipped.
func (r *Resolver) applyEffects(source, target *model.Character, effects []model.SkillEffect) []model.SkillEffect {
	var applied []model.SkillEffect
	for _, eff := range effects {
		ok := false
		for _, recipient := range r.selector.Recipients(eff.Target(), source, target) {
			if recipient == nil || recipient.Removed() {
				continue
			}
			if _, err := r.effects.Apply(source, recipient, eff); err != nil {
				if !errors.Is(err, effect.ErrUnknownEffectKind) {
					slog.Warn("effect not applied",
						"kind", eff.Kind(),
						"target", recipient.ID(),
						"error", err)
				}
				continue
			}
			ok = true
		}
		if ok {
			applied = append(applied, eff)
		}
	}
	return applied
}

func (r *Resolver) record(t EventType, attacker, target *model.Character, actionID string, res Result) {
	if r.log == nil {
		return
	}
	r.log.Append(Entry{
		Encounter:  r.encounterID,
		Type:       t,
		AttackerID: attacker.ID(),
		TargetID:   target.ID(),
		ActionID:   actionID,
		Damage:     res.Damage,
		Critical:   res.Critical,
		Blocked:    res.Blocked,
		Dodged:     res.Dodged,
		Effects:    res.Effects,
		Timestamp:  r.now(),
	})
}

// Update advances every active status effect by delta.
func (r *Resolver) Update(delta float64) []effect.Event {
	return r.effects.Update(delta)
}

// RemoveTarget takes c out of combat: its status effects are cleared
// synchronously and later resolutions against it fail with ErrMissingTarget.
func (r *Resolver) RemoveTarget(c *model.Character) {
	cleared := r.effects.RemoveTarget(c)
	c.SetRemoved(true)

	slog.Debug("target removed from combat",
		"target", c.ID(),
		"effectsCleared", len(cleared))
}
