package domain

import "time"

// UIMode represents the ambient UX state supplied by the application's
// UX-state policy. The engine consumes it read-only.
type UIMode string

// Possible UI mode values
const (
	UIModeSteady      UIMode = "steady"
	UIModeCalm        UIMode = "calm"
	UIModeTransparent UIMode = "transparent"
	UIModeEnergize    UIMode = "energize"
	UIModeSoftExit    UIMode = "soft_exit"
)

// Intensity is the qualitative strength of a guidance intervention's
// presentation, distinct from whether the intervention fires at all.
type Intensity string

// Possible intensity values
const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// SummonReason identifies which policy rule produced a summon decision.
type SummonReason string

// Possible summon reason values
const (
	SummonReasonNone             SummonReason = ""
	SummonReasonUserRequest      SummonReason = "user_request"
	SummonReasonOverwhelmed      SummonReason = "overwhelmed_signal"
	SummonReasonAssistanceNeeded SummonReason = "assistance_needed"
)

// TelemetrySignals collects raw behavioral counters gathered by the UI layer
// over one evaluation window. Signals are ephemeral and reset per window.
type TelemetrySignals struct {
	RapidClickBursts     int           `json:"rapid_click_bursts"`
	BackAndForthNavs     int           `json:"back_and_forth_navs"`
	PausesBeforeAction   int           `json:"pauses_before_action"`
	HelpRequests         int           `json:"help_requests"`
	SilenceAfterGuidance time.Duration `json:"silence_after_guidance_ms"`
	UserClickedGuideMe   bool          `json:"user_clicked_guide_me"`
	UserDeclinedRecently bool          `json:"user_declined_recently"`
}

// Normalized returns a copy of the signals with negative counters clamped to
// zero. Negative input is a caller bug; the policy engine degrades rather
// than propagating it.
func (t TelemetrySignals) Normalized() TelemetrySignals {
	t.RapidClickBursts = max(t.RapidClickBursts, 0)
	t.BackAndForthNavs = max(t.BackAndForthNavs, 0)
	t.PausesBeforeAction = max(t.PausesBeforeAction, 0)
	t.HelpRequests = max(t.HelpRequests, 0)
	t.SilenceAfterGuidance = max(t.SilenceAfterGuidance, 0)
	return t
}

// SummonDecision is the pure output of the intervention policy. It carries no
// stored identity; the caller renders or discards it.
type SummonDecision struct {
	ShouldSummon bool         `json:"should_summon"`
	Intensity    Intensity    `json:"intensity"`
	Reason       SummonReason `json:"reason,omitempty"`
	Message      string       `json:"message,omitempty"`
}
