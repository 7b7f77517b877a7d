package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/creditclimb/engine/internal/api/shared"
	"github.com/creditclimb/engine/internal/platform/logger"
	"github.com/creditclimb/engine/internal/service"
	"github.com/creditclimb/engine/internal/service/session"
	"github.com/go-playground/validator/v10"
)

// SessionHandler handles practice session requests.
type SessionHandler struct {
	registry *service.Registry
	validate *validator.Validate
	logger   *slog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(registry *service.Registry, log *slog.Logger) *SessionHandler {
	if registry == nil {
		panic("registry cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &SessionHandler{
		registry: registry,
		validate: validator.New(),
		logger:   log.With(slog.String("component", "session_handler")),
	}
}

// Start handles POST /users/{userID}/sessions requests.
// It starts a fresh session, or replays after completion.
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	orch, err := h.registry.Orchestrator(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to load session state", err)
		return
	}

	var snapshot *session.Snapshot
	if orch.Snapshot().State == session.StateComplete {
		snapshot, err = orch.Replay(r.Context())
	} else {
		snapshot, err = orch.Start(r.Context())
	}
	if err != nil {
		var svcErr *session.ServiceError
		if errors.As(err, &svcErr) {
			shared.RespondWithErrorAndLog(w, r, http.StatusConflict, svcErr.Message, err)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to start session", err)
		return
	}

	log.Debug("session started",
		slog.String("user_id", userID.String()),
		slog.Int("scenario_count", len(snapshot.Scenarios)))
	shared.RespondWithJSON(w, r, http.StatusCreated, snapshot)
}

// Get handles GET /users/{userID}/sessions/current requests.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	orch, err := h.registry.Orchestrator(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to load session state", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, orch.Snapshot())
}

// SubmitChoice handles POST /users/{userID}/sessions/current/choices requests.
func (h *SessionHandler) SubmitChoice(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	var req SubmitChoiceRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	orch, err := h.registry.Orchestrator(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to load session state", err)
		return
	}

	result, err := orch.SubmitChoice(r.Context(), req.ChoiceID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, statusForSessionError(err),
			safeSessionMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// Next handles POST /users/{userID}/sessions/current/next requests.
func (h *SessionHandler) Next(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	orch, err := h.registry.Orchestrator(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to load session state", err)
		return
	}

	snapshot, err := orch.Next(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, statusForSessionError(err),
			safeSessionMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, snapshot)
}
