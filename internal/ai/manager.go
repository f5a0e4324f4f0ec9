package ai

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/udisondev/galaxies/internal/game/combat"
	"github.com/udisondev/galaxies/internal/model"
)

// Arena is an encounter driven by the tick manager.
// Implemented by *combat.Encounter.
type Arena interface {
	Battlefield
	Participants() []*model.Character
	Act(actor, target *model.Character, actionID string) (combat.Result, error)
}

// TickManager holds the controllers of one encounter's participants and
// gives each living one a turn per Tick.
type TickManager struct {
	controllers     sync.Map // characterID -> Controller
	controllerCount atomic.Int32

	debug bool
}

// NewTickManager creates an empty tick manager.
func NewTickManager() *TickManager {
	return &TickManager{}
}

// Register registers controller for characterID, replacing any previous one.
func (m *TickManager) Register(characterID string, controller Controller) {
	if _, loaded := m.controllers.Swap(characterID, controller); !loaded {
		m.controllerCount.Add(1)
	}

	slog.Debug("AI controller registered", "character", characterID)
}

// Unregister unregisters the controller of characterID.
func (m *TickManager) Unregister(characterID string) {
	if _, ok := m.controllers.LoadAndDelete(characterID); !ok {
		return
	}
	m.controllerCount.Add(-1)

	slog.Debug("AI controller unregistered", "character", characterID)
}

// Count returns number of registered controllers.
func (m *TickManager) Count() int {
	return int(m.controllerCount.Load())
}

// Controller returns the controller of characterID.
func (m *TickManager) Controller(characterID string) (Controller, error) {
	value, ok := m.controllers.Load(characterID)
	if !ok {
		return nil, fmt.Errorf("controller not found for character %q", characterID)
	}
	return value.(Controller), nil
}

// Tick gives every living participant with a controller one turn, in join
// order, and returns the number of resolved actions. Rejected actions
// (stunned, cooldown, missing target) end the turn without error.
func (m *TickManager) Tick(arena Arena) int {
	acted := 0
	for _, c := range arena.Participants() {
		if c.IsDead() || c.Removed() {
			continue
		}
		ctrl, err := m.Controller(c.ID())
		if err != nil {
			continue
		}

		d, ok := ctrl.Decide(c, arena)
		if !ok {
			continue
		}
		if m.debug {
			slog.Debug("AI decision",
				"actor", c.ID(),
				"target", d.Target.ID(),
				"action", d.ActionID)
		}
		if _, err := arena.Act(c, d.Target, d.ActionID); err != nil {
			if !isTurnRejection(err) {
				slog.Warn("AI action failed",
					"actor", c.ID(),
					"action", d.ActionID,
					"error", err)
			} else if m.debug {
				slog.Debug("AI action rejected",
					"actor", c.ID(),
					"action", d.ActionID,
					"reason", err)
			}
			continue
		}
		acted++
	}

	if acted > 0 && m.debug {
		slog.Debug("AI tick completed", "actions", acted)
	}
	return acted
}

func isTurnRejection(err error) bool {
	return errors.Is(err, combat.ErrActorStunned) ||
		errors.Is(err, combat.ErrOnCooldown) ||
		errors.Is(err, combat.ErrNotEnoughMana) ||
		errors.Is(err, combat.ErrMissingTarget)
}
