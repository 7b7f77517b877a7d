package api

import (
	"github.com/creditclimb/engine/internal/domain"
	"github.com/creditclimb/engine/internal/service/guidance"
)

// Common request/response structures

// UIStateRequest carries the ambient UX state supplied by the front end.
type UIStateRequest struct {
	Intensity string `json:"intensity" validate:"required,oneof=low medium high"`
	Mode      string `json:"mode"      validate:"required,oneof=steady calm transparent energize soft_exit"`
}

// TelemetryRequest carries one evaluation window of behavioral counters.
// Counts may arrive negative from a buggy client; the engine clamps them.
type TelemetryRequest struct {
	RapidClickBursts       int  `json:"rapid_click_bursts"`
	BackAndForthNavs       int  `json:"back_and_forth_navs"`
	PausesBeforeAction     int  `json:"pauses_before_action"`
	HelpRequests           int  `json:"help_requests"`
	SilenceAfterGuidanceMs int  `json:"silence_after_guidance_ms"`
	UserClickedGuideMe     bool `json:"user_clicked_guide_me"`
	UserDeclinedRecently   bool `json:"user_declined_recently"`
}

// DecideRequest defines the payload for the summon-decision endpoints.
type DecideRequest struct {
	UI        UIStateRequest   `json:"ui"        validate:"required"`
	Telemetry TelemetryRequest `json:"telemetry"`
}

// PreferencesRequest defines the payload for the preference update endpoint.
// Omitted fields leave the stored value unchanged.
type PreferencesRequest struct {
	OrientationCompleted *bool   `json:"orientation_completed,omitempty"`
	GuidanceMode         *string `json:"guidance_mode,omitempty" validate:"omitempty,oneof=full light silent"`
	VoiceEnabled         *bool   `json:"voice_enabled,omitempty"`
	CaptionsEnabled      *bool   `json:"captions_enabled,omitempty"`
}

// SubmitChoiceRequest defines the payload for the choice submission endpoint.
type SubmitChoiceRequest struct {
	ChoiceID string `json:"choice_id" validate:"required"`
}

// TriggerResponse represents the active guidance trigger, if any.
type TriggerResponse struct {
	Active  bool                  `json:"active"`
	Trigger *domain.ActiveTrigger `json:"trigger,omitempty"`
}

// EvaluateResponse couples the summon decision with the trigger it installed,
// if the decision fired one.
type EvaluateResponse struct {
	Decision domain.SummonDecision `json:"decision"`
	Trigger  *domain.ActiveTrigger `json:"trigger,omitempty"`
}

// toPatch converts the request into a service-level preference patch.
func (r *PreferencesRequest) toPatch() guidance.PreferencePatch {
	patch := guidance.PreferencePatch{
		OrientationCompleted: r.OrientationCompleted,
		VoiceEnabled:         r.VoiceEnabled,
		CaptionsEnabled:      r.CaptionsEnabled,
	}
	if r.GuidanceMode != nil {
		mode := domain.GuidanceMode(*r.GuidanceMode)
		patch.GuidanceMode = &mode
	}
	return patch
}
