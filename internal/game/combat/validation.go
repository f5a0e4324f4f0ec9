package combat

import (
	"errors"
	"fmt"

	"github.com/udisondev/galaxies/internal/model"
)

var (
	// ErrMissingTarget is returned when the target is nil, dead, or removed
	// from combat. Nothing is mutated and nothing is logged.
	ErrMissingTarget = errors.New("missing target")
	// ErrInvalidAttacker is returned when the attacker is nil, dead, or removed.
	ErrInvalidAttacker = errors.New("invalid attacker")
	// ErrInvalidAction is returned for a nil skill.
	ErrInvalidAction = errors.New("invalid action")
)

// ValidateAttack checks that both sides can take part in an exchange.
//
// Checks:
//   - Attacker exists, alive, not removed
//   - Target exists, alive, not removed
func ValidateAttack(attacker, target *model.Character) error {
	if attacker == nil {
		return fmt.Errorf("%w: attacker is nil", ErrInvalidAttacker)
	}
	if attacker.Removed() {
		return fmt.Errorf("%w: %s left combat", ErrInvalidAttacker, attacker.ID())
	}
	if attacker.IsDead() {
		return fmt.Errorf("%w: %s is dead", ErrInvalidAttacker, attacker.ID())
	}

	if target == nil {
		return fmt.Errorf("%w: target is nil", ErrMissingTarget)
	}
	if target.Removed() {
		return fmt.Errorf("%w: %s left combat", ErrMissingTarget, target.ID())
	}
	if target.IsDead() {
		return fmt.Errorf("%w: %s is dead", ErrMissingTarget, target.ID())
	}
	return nil
}
