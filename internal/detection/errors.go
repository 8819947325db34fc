package detection

import (
	"errors"
	"fmt"
)

// ErrInvalidInput matches any *InvalidInputError via errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError reports a pixel buffer the engine cannot analyze.
// No pipeline stage runs once this error is returned.
type InvalidInputError struct {
	Reason string
	Width  int
	Height int
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s (%dx%d)", e.Reason, e.Width, e.Height)
}

// Is lets errors.Is(err, ErrInvalidInput) match.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ConfigError reports an invalid engine configuration field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Field, e.Reason)
}
