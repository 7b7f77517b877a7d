package api

import (
	"errors"
	"net/http"

	"github.com/creditclimb/engine/internal/service/session"
)

// statusForSessionError maps session orchestrator errors to HTTP status
// codes. Unknown errors are treated as internal failures.
func statusForSessionError(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotStarted):
		return http.StatusConflict
	case errors.Is(err, session.ErrSessionComplete):
		return http.StatusConflict
	case errors.Is(err, session.ErrChoiceAlreadyMade):
		return http.StatusConflict
	case errors.Is(err, session.ErrNoChoiceMade):
		return http.StatusConflict
	case errors.Is(err, session.ErrUnknownChoice):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// safeSessionMessage returns a client-safe message for a session error
// without leaking internal detail.
func safeSessionMessage(err error) string {
	switch {
	case errors.Is(err, session.ErrSessionNotStarted):
		return "No session in progress"
	case errors.Is(err, session.ErrSessionComplete):
		return "Session already complete"
	case errors.Is(err, session.ErrChoiceAlreadyMade):
		return "A choice was already recorded for this scenario"
	case errors.Is(err, session.ErrNoChoiceMade):
		return "No choice recorded for this scenario yet"
	case errors.Is(err, session.ErrUnknownChoice):
		return "Unknown choice for the current scenario"
	default:
		return "Session operation failed"
	}
}
