// Package api provides HTTP handlers for the engine's API surface.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/creditclimb/engine/internal/api/shared"
	"github.com/creditclimb/engine/internal/domain"
	policy "github.com/creditclimb/engine/internal/domain/guidance"
	"github.com/creditclimb/engine/internal/platform/logger"
	"github.com/creditclimb/engine/internal/service"
	"github.com/go-playground/validator/v10"
)

// Auto-dismiss durations per presentation intensity. Stronger interventions
// stay on screen longer.
var triggerDurations = map[domain.Intensity]time.Duration{
	domain.IntensityLow:    6 * time.Second,
	domain.IntensityMedium: 9 * time.Second,
	domain.IntensityHigh:   12 * time.Second,
}

// Emotion hints per summon reason, consumed by the overlay renderer.
var triggerEmotions = map[domain.SummonReason]string{
	domain.SummonReasonUserRequest:      "supportive",
	domain.SummonReasonOverwhelmed:      "calming",
	domain.SummonReasonAssistanceNeeded: "encouraging",
}

// GuidanceHandler handles intervention-policy and trigger-lifecycle requests.
type GuidanceHandler struct {
	registry     *service.Registry
	policyParams *policy.Params
	validate     *validator.Validate
	logger       *slog.Logger
}

// NewGuidanceHandler creates a new GuidanceHandler.
func NewGuidanceHandler(
	registry *service.Registry,
	policyParams *policy.Params,
	log *slog.Logger,
) *GuidanceHandler {
	if registry == nil {
		panic("registry cannot be nil")
	}
	if policyParams == nil {
		policyParams = policy.NewDefaultParams()
	}
	if log == nil {
		log = slog.Default()
	}

	return &GuidanceHandler{
		registry:     registry,
		policyParams: policyParams,
		validate:     validator.New(),
		logger:       log.With(slog.String("component", "guidance_handler")),
	}
}

// Decide handles POST /guidance/decide requests.
// It runs the intervention policy statelessly and returns the decision
// without touching any trigger state. Useful for the front end to preview
// policy behavior.
func (h *GuidanceHandler) Decide(w http.ResponseWriter, r *http.Request) {
	var req DecideRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	decision := policy.Decide(req.UI.toUIState(), req.Telemetry.toSignals(), h.policyParams)
	shared.RespondWithJSON(w, r, http.StatusOK, decision)
}

// Evaluate handles POST /users/{userID}/guidance/evaluate requests.
// It runs the intervention policy and, when the decision summons, installs
// the corresponding trigger on the learner's guidance controller. The
// controller may still suppress the trigger in silent mode.
func (h *GuidanceHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	var req DecideRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	decision := policy.Decide(req.UI.toUIState(), req.Telemetry.toSignals(), h.policyParams)
	response := EvaluateResponse{Decision: decision}

	if decision.ShouldSummon {
		controller, err := h.registry.Controller(r.Context(), userID)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"Failed to load guidance state", err)
			return
		}

		trigger := domain.ActiveTrigger{
			Text:     decision.Message,
			Emotion:  triggerEmotions[decision.Reason],
			Duration: triggerDurations[decision.Intensity],
		}
		controller.TriggerGuidance(r.Context(), trigger)
		response.Trigger = controller.ActiveTrigger()

		log.Debug("guidance evaluated",
			slog.String("user_id", userID.String()),
			slog.String("reason", string(decision.Reason)),
			slog.Bool("suppressed", response.Trigger == nil))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GetTrigger handles GET /users/{userID}/guidance requests.
// It returns the currently active trigger, if any.
func (h *GuidanceHandler) GetTrigger(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	controller, err := h.registry.Controller(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to load guidance state", err)
		return
	}

	trigger := controller.ActiveTrigger()
	shared.RespondWithJSON(w, r, http.StatusOK, TriggerResponse{
		Active:  trigger != nil,
		Trigger: trigger,
	})
}

// Dismiss handles POST /users/{userID}/guidance/dismiss requests.
// It clears the active trigger and cancels its auto-dismiss timer.
func (h *GuidanceHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	controller, err := h.registry.Controller(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to load guidance state", err)
		return
	}

	controller.DismissTrigger(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
