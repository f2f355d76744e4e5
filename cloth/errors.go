package cloth

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHandle indicates a handle to a destroyed particle or to a
	// previous generation of the grid.
	ErrInvalidHandle = errors.New("cloth: invalid particle handle")
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("cloth: invalid parameters")
)

// ValidationError reports a parameter that cannot produce a usable grid.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("cloth: invalid %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
