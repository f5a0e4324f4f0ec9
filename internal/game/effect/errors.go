package effect

import (
	"errors"
	"fmt"

	"github.com/udisondev/galaxies/internal/model"
)

// ErrUnknownEffectKind is wrapped by EffectApplicationError for effects this
// build cannot apply.
var ErrUnknownEffectKind = errors.New("unknown effect kind")

// EffectApplicationError reports an effect that was skipped.
// Callers log it and keep resolving the rest of the action.
type EffectApplicationError struct {
	Kind     model.EffectKind
	Name     string
	TargetID string
	Err      error
}

func (e *EffectApplicationError) Error() string {
	name := e.Name
	if name == "" {
		name = e.Kind.String()
	}
	return fmt.Sprintf("apply effect %q to %s: %v", name, e.TargetID, e.Err)
}

func (e *EffectApplicationError) Unwrap() error { return e.Err }
