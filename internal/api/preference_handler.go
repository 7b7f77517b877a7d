package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/creditclimb/engine/internal/api/shared"
	"github.com/creditclimb/engine/internal/platform/logger"
	"github.com/creditclimb/engine/internal/service"
	"github.com/creditclimb/engine/internal/service/guidance"
	"github.com/go-playground/validator/v10"
)

// PreferenceHandler handles guidance preference requests.
type PreferenceHandler struct {
	registry *service.Registry
	validate *validator.Validate
	logger   *slog.Logger
}

// NewPreferenceHandler creates a new PreferenceHandler.
func NewPreferenceHandler(registry *service.Registry, log *slog.Logger) *PreferenceHandler {
	if registry == nil {
		panic("registry cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PreferenceHandler{
		registry: registry,
		validate: validator.New(),
		logger:   log.With(slog.String("component", "preference_handler")),
	}
}

// Get handles GET /users/{userID}/preferences requests.
func (h *PreferenceHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	controller, err := h.registry.Controller(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to load preferences", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, controller.Preferences())
}

// Update handles PUT /users/{userID}/preferences requests.
//
// The update is optimistic with rollback: on persistence failure the
// in-memory value reverts and the failure is surfaced to the client as 502.
// This is the only engine failure the UI is required to show the learner.
func (h *PreferenceHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	var req PreferencesRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	controller, err := h.registry.Controller(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to load preferences", err)
		return
	}

	prefs, err := controller.SetPreference(r.Context(), req.toPatch())
	if err != nil {
		if errors.Is(err, guidance.ErrPreferenceSaveFailed) {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadGateway,
				"Preferences could not be saved and were reverted", err)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to update preferences", err)
		return
	}

	log.Debug("preferences updated", slog.String("user_id", userID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, prefs)
}

// CompleteOrientation handles POST /users/{userID}/preferences/orientation requests.
// Completing orientation also forces guidance mode back to full.
func (h *PreferenceHandler) CompleteOrientation(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	controller, err := h.registry.Controller(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to load preferences", err)
		return
	}

	prefs, err := controller.MarkOrientationCompleted(r.Context())
	if err != nil {
		if errors.Is(err, guidance.ErrPreferenceSaveFailed) {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadGateway,
				"Preferences could not be saved and were reverted", err)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to update preferences", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, prefs)
}
