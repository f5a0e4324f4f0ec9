package ai

import "github.com/udisondev/galaxies/internal/model"

// Battlefield is the part of an encounter a controller may inspect.
// Implemented by *combat.Encounter.
type Battlefield interface {
	// Alive returns living participants of the given kind, join order.
	Alive(kind model.Kind) []*model.Character
	// Ready reports whether actionID of actor is off cooldown.
	Ready(actor *model.Character, actionID string) bool
}

// Decision is one action a controller wants to take.
// An empty ActionID is an enemy's basic attack.
type Decision struct {
	Target   *model.Character
	ActionID string
}

// Controller decides what a character does on its turn.
type Controller interface {
	// Decide returns the action for self, or false to pass the turn.
	Decide(self *model.Character, field Battlefield) (Decision, bool)
}

// ControllerFunc adapts a function to Controller.
type ControllerFunc func(self *model.Character, field Battlefield) (Decision, bool)

// Decide implements Controller.
func (f ControllerFunc) Decide(self *model.Character, field Battlefield) (Decision, bool) {
	return f(self, field)
}
