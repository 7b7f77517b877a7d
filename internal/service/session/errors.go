package session

import (
	"errors"
	"fmt"
)

// Common error types for the session orchestrator
var (
	// ErrSessionNotStarted indicates an operation that requires a started
	// session was called before Start.
	ErrSessionNotStarted = errors.New("session not started")

	// ErrSessionComplete indicates the session instance is terminal and only
	// Replay can produce further activity.
	ErrSessionComplete = errors.New("session already complete")

	// ErrChoiceAlreadyMade indicates a second choice was submitted for the
	// scenario currently visible. The first recorded choice stands.
	ErrChoiceAlreadyMade = errors.New("choice already recorded for this scenario")

	// ErrNoChoiceMade indicates an advance was requested before any choice
	// was recorded for the visible scenario.
	ErrNoChoiceMade = errors.New("no choice recorded for this scenario yet")

	// ErrUnknownChoice indicates the submitted choice ID does not belong to
	// the visible scenario.
	ErrUnknownChoice = errors.New("unknown choice for current scenario")
)

// ServiceError wraps errors from the session orchestrator with additional
// context, so consumers can differentiate failures with errors.As instead of
// string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "start", "submit_choice")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
