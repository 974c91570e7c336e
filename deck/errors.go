package deck

import (
	"errors"
	"fmt"
)

var (
	ErrDeckExhausted  = errors.New("no more cards left to draw from this finite deck")
	ErrNotImplemented = errors.New("deck variant does not implement a draw")
)

// ValidationError reports a deck configuration that cannot be built.
// It is only ever returned by constructors, never by Pull.
type ValidationError string

func (e ValidationError) Error() string { return "invalid deck: " + string(e) }

func errValidation(format string, args ...any) error {
	return ValidationError(fmt.Sprintf(format, args...))
}

// ExhaustionError is returned by a locked FiniteDeck once more cards are
// requested than the deck holds. It unwraps to ErrDeckExhausted.
type ExhaustionError struct {
	Pull int
	Size int
}

func (e *ExhaustionError) Error() string {
	return fmt.Sprintf("pull %d on a deck of %d: %v", e.Pull, e.Size, ErrDeckExhausted)
}

func (e *ExhaustionError) Unwrap() error { return ErrDeckExhausted }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
