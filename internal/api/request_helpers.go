package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/creditclimb/engine/internal/api/shared"
	"github.com/creditclimb/engine/internal/domain"
	"github.com/creditclimb/engine/internal/domain/guidance"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// decodeAndValidate decodes the request body into v and runs struct
// validation. On failure it writes the error response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, validate *validator.Validate, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validate.Struct(v); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return false
	}
	return true
}

// userIDParam extracts and parses the {userID} URL parameter. On failure it
// writes the error response and returns uuid.Nil, false.
func userIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil || userID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID")
		return uuid.Nil, false
	}
	return userID, true
}

// toUIState converts the request UI state into the policy engine's input.
func (r *UIStateRequest) toUIState() guidance.UIState {
	return guidance.UIState{
		Intensity: domain.Intensity(r.Intensity),
		Mode:      domain.UIMode(r.Mode),
	}
}

// toSignals converts the request telemetry into domain telemetry signals.
func (r *TelemetryRequest) toSignals() domain.TelemetrySignals {
	return domain.TelemetrySignals{
		RapidClickBursts:     r.RapidClickBursts,
		BackAndForthNavs:     r.BackAndForthNavs,
		PausesBeforeAction:   r.PausesBeforeAction,
		HelpRequests:         r.HelpRequests,
		SilenceAfterGuidance: time.Duration(r.SilenceAfterGuidanceMs) * time.Millisecond,
		UserClickedGuideMe:   r.UserClickedGuideMe,
		UserDeclinedRecently: r.UserDeclinedRecently,
	}
}
