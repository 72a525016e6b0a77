package match

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes engine failures.
type ErrorCode string

const (
	// ErrCodeNoMatching means no perfect matching was found within the
	// attempt budget. This is an expected outcome whenever the constraint
	// graph admits none, not a malfunction.
	ErrCodeNoMatching ErrorCode = "NO_MATCHING"

	// ErrCodeEmptyRoster means the participant collection was empty.
	ErrCodeEmptyRoster ErrorCode = "EMPTY_ROSTER"

	// ErrCodeBadConfig means the search configuration was rejected before
	// any attempt ran (e.g. a non-positive attempt budget).
	ErrCodeBadConfig ErrorCode = "BAD_CONFIG"
)

// Error is a structured engine failure.
//
// The engine never returns a partial matching alongside an Error; a
// result is either a fully verified perfect matching or an Error.
type Error struct {
	// Code identifies the failure category.
	Code ErrorCode

	// Message is a human-readable description. It never contains
	// assignment pairs.
	Message string

	// Attempts is the number of solver attempts actually run before the
	// failure was reported. Zero for failures detected up front.
	Attempts int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Attempts > 0 {
		return fmt.Sprintf("%s: %s (after %d attempts)", e.Code, e.Message, e.Attempts)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsNoMatching reports whether err is an engine failure meaning "no
// perfect matching exists or none was found within the budget". Callers
// are expected to treat this as a normal outcome and report it to the
// operator.
func IsNoMatching(err error) bool {
	var me *Error
	return errors.As(err, &me) && me.Code == ErrCodeNoMatching
}
