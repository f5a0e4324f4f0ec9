package combat

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/udisondev/galaxies/internal/config"
	"github.com/udisondev/galaxies/internal/dice"
	"github.com/udisondev/galaxies/internal/game/effect"
	"github.com/udisondev/galaxies/internal/game/stats"
	"github.com/udisondev/galaxies/internal/model"
	"github.com/udisondev/galaxies/internal/uuid"
)

var (
	// ErrActorStunned is returned when a stunned character tries to act.
	ErrActorStunned = errors.New("actor is stunned")
	// ErrNotEnoughMana is returned when a skill costs more mana than the actor has.
	ErrNotEnoughMana = errors.New("not enough mana")
	// ErrOnCooldown is returned when the action has not recovered yet.
	ErrOnCooldown = errors.New("action on cooldown")
	// ErrUnknownAction is returned when the actor does not know the action.
	ErrUnknownAction = errors.New("unknown action")
	// ErrNotParticipant is returned for characters outside the encounter.
	ErrNotParticipant = errors.New("not a participant")
	// ErrAlreadyJoined is returned when a character joins twice.
	ErrAlreadyJoined = errors.New("already joined")
)

// Outcome summarises who is still standing.
type Outcome int8

const (
	OutcomeOngoing Outcome = iota
	OutcomePlayersWon
	OutcomeEnemiesWon
	OutcomeDraw
)

// String returns outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomePlayersWon:
		return "players_won"
	case OutcomeEnemiesWon:
		return "enemies_won"
	case OutcomeDraw:
		return "draw"
	default:
		return "ongoing"
	}
}

// Encounter groups the characters of one fight with their own resolver,
// status effects and log shard. Encounters are independent and may run on
// separate goroutines.
//
// Thread-safe: Act and Update are serialised by sync.Mutex.
type Encounter struct {
	mu sync.Mutex

	id        string
	cfg       config.Combat
	resolver  *Resolver
	cooldowns *CooldownTracker

	members map[string]*model.Character
	order   []string
	elapsed float64
}

// NewEncounter creates an empty encounter with its own log of
// cfg.LogCapacity entries. ids names status effect instances.
func NewEncounter(id string, cfg config.Combat, rng dice.Source, ids uuid.Generator) *Encounter {
	e := &Encounter{
		id:        id,
		cfg:       cfg,
		cooldowns: NewCooldownTracker(),
		members:   make(map[string]*model.Character),
	}
	e.resolver = NewResolver(cfg, rng, effect.NewManager(cfg, ids), NewLog(cfg.LogCapacity))
	e.resolver.SetTargetSelector(e)
	e.resolver.SetEncounterID(id)
	return e
}

// ID returns the encounter id.
func (e *Encounter) ID() string { return e.id }

// Resolver returns the encounter's resolver (for modifiers and clock setup).
func (e *Encounter) Resolver() *Resolver { return e.resolver }

// Log returns the encounter's log shard.
func (e *Encounter) Log() *Log { return e.resolver.Log() }

// Elapsed returns the simulation time advanced so far.
func (e *Encounter) Elapsed() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.elapsed
}

// Join adds c to the encounter. The caller fills its health and mana.
func (e *Encounter) Join(c *model.Character) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.members[c.ID()]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyJoined, c.ID())
	}
	c.SetRemoved(false)
	e.members[c.ID()] = c
	e.order = append(e.order, c.ID())
	return nil
}

// Leave takes c out of the encounter, clearing its effects and cooldowns.
// Log entries that mention c are kept.
func (e *Encounter) Leave(c *model.Character) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.members[c.ID()]; !ok {
		return fmt.Errorf("%w: %s", ErrNotParticipant, c.ID())
	}
	e.remove(c)
	return nil
}

// remove must be called with mu held.
func (e *Encounter) remove(c *model.Character) {
	e.resolver.RemoveTarget(c)
	e.cooldowns.Clear(c.ID())
	delete(e.members, c.ID())
	for i, id := range e.order {
		if id == c.ID() {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

// Participants returns the characters still in the encounter, join order.
func (e *Encounter) Participants() []*model.Character {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.participants()
}

func (e *Encounter) participants() []*model.Character {
	out := make([]*model.Character, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.members[id])
	}
	return out
}

// Alive returns living participants of the given kind, join order.
func (e *Encounter) Alive(kind model.Kind) []*model.Character {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.alive(kind)
}

func (e *Encounter) alive(kind model.Kind) []*model.Character {
	var out []*model.Character
	for _, id := range e.order {
		if c := e.members[id]; c.Kind() == kind && !c.IsDead() {
			out = append(out, c)
		}
	}
	return out
}

// Ready reports whether actionID of actor is off cooldown.
func (e *Encounter) Ready(actor *model.Character, actionID string) bool {
	return e.cooldowns.Ready(actor.ID(), actionID)
}

// Act makes actor use actionID on target. Players use learned skills and
// pay their mana cost on success; enemies use abilities. An actor that is
// stunned, dead or outside the encounter cannot act.
//
// A target that dies is removed from the encounter; a player that kills an
// enemy is rewarded with experience.
func (e *Encounter) Act(actor, target *model.Character, actionID string) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.members[actor.ID()]; !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrNotParticipant, actor.ID())
	}
	if target == nil {
		return Result{}, fmt.Errorf("%w: target is nil", ErrMissingTarget)
	}
	if _, ok := e.members[target.ID()]; !ok {
		return Result{}, fmt.Errorf("%w: %s is not in encounter %s", ErrMissingTarget, target.ID(), e.id)
	}
	if actor.IsStunned() {
		return Result{}, fmt.Errorf("%w: %s", ErrActorStunned, actor.ID())
	}
	if !e.cooldowns.Ready(actor.ID(), actionID) {
		return Result{}, fmt.Errorf("%w: %s/%s %.2f left", ErrOnCooldown, actor.ID(), actionID, e.cooldowns.Remaining(actor.ID(), actionID))
	}

	var (
		result   Result
		err      error
		cooldown float64
	)
	switch actor.Kind() {
	case model.KindPlayer:
		skill := actor.Skill(actionID)
		if skill == nil {
			return Result{}, fmt.Errorf("%w: %s does not know %q", ErrUnknownAction, actor.ID(), actionID)
		}
		if actor.Mana() < skill.ManaCost {
			return Result{}, fmt.Errorf("%w: %s needs %.1f, has %.1f", ErrNotEnoughMana, actor.ID(), skill.ManaCost, actor.Mana())
		}
		result, err = e.resolver.ResolvePlayerAttack(actor, target, skill)
		if err != nil {
			return Result{}, err
		}
		actor.SpendMana(skill.ManaCost)
		cooldown = skill.Cooldown
	default:
		ability := actor.Ability(actionID)
		if ability == nil && actionID != "" {
			return Result{}, fmt.Errorf("%w: %s does not know %q", ErrUnknownAction, actor.ID(), actionID)
		}
		result, err = e.resolver.ResolveEnemyAttack(actor, target, ability)
		if err != nil {
			return Result{}, err
		}
		if ability != nil {
			cooldown = ability.Cooldown
		}
	}

	e.cooldowns.Start(actor.ID(), actionID, cooldown)
	e.reapLocked(actor)
	return result, nil
}

// Update advances status effects, cooldowns and regeneration by delta and
// removes characters that died. Call exactly once per simulation step.
func (e *Encounter) Update(delta float64) []effect.Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !(delta > 0) {
		return nil
	}
	e.elapsed += delta

	events := e.resolver.Update(delta)
	e.cooldowns.Tick(delta)
	for _, c := range e.participants() {
		stats.Regenerate(c, delta)
	}
	e.reapLocked(nil)
	return events
}

// reapLocked removes dead participants. killer, if a player, is rewarded
// for every enemy that died.
func (e *Encounter) reapLocked(killer *model.Character) {
	for _, c := range e.participants() {
		if !c.IsDead() {
			continue
		}
		e.remove(c)

		slog.Debug("participant defeated",
			"encounter", e.id,
			"character", c.ID())

		if killer != nil && killer.Kind() == model.KindPlayer && c.Kind() == model.KindEnemy && !killer.IsDead() {
			RewardExperience(killer, e.cfg)
		}
	}
}

// Outcome reports the current state of the fight.
func (e *Encounter) Outcome() Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	players := len(e.alive(model.KindPlayer))
	enemies := len(e.alive(model.KindEnemy))
	switch {
	case players == 0 && enemies == 0:
		return OutcomeDraw
	case enemies == 0:
		return OutcomePlayersWon
	case players == 0:
		return OutcomeEnemiesWon
	default:
		return OutcomeOngoing
	}
}

// Recipients implements TargetSelector over the encounter's participants:
// self goes to the source, ally to every living member on the source's
// side, area to every living member on the target's side, enemy to the
// target. Called by the resolver with mu held.
func (e *Encounter) Recipients(sel model.EffectTarget, source, target *model.Character) []*model.Character {
	switch sel {
	case model.TargetSelf:
		return []*model.Character{source}
	case model.TargetAlly:
		return e.alive(source.Kind())
	case model.TargetArea:
		return e.alive(target.Kind())
	default:
		return []*model.Character{target}
	}
}
