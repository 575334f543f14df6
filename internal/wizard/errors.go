package wizard

import (
	"errors"
	"fmt"

	"github.com/lamim/prdforge/internal/api"
)

var (
	// ErrBusy rejects any action while another one is running
	ErrBusy = errors.New("another operation is in progress")

	// ErrValidation marks an action that is not allowed in the current state or has bad input
	ErrValidation = errors.New("invalid action")

	// ErrMissingCredential is returned when real AI is enabled without a key
	ErrMissingCredential = api.ErrMissingCredential
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// GenerationError reports a failed backend call and the operation it belonged to
type GenerationError struct {
	Operation string
	Err       error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
