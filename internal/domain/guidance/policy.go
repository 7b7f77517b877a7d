// Package guidance implements the intervention policy engine: a pure mapping
// from behavioral telemetry, explicit user action, and the current UI mode to
// a summon decision. The policy performs no I/O and reads no clock, so it is
// unit-testable against its literal thresholds.
package guidance

import (
	"github.com/creditclimb/engine/internal/domain"
)

// UIState is the slice of ambient UX state the policy consumes: the baseline
// presentation intensity and the current mode. Both are supplied by the
// application's UX-state policy.
type UIState struct {
	Intensity domain.Intensity `json:"intensity"`
	Mode      domain.UIMode    `json:"mode"`
}

// Decide maps the current UI state and telemetry signals to a summon
// decision. Rules are evaluated in a fixed priority order; the first match
// wins:
//
//  1. A recent decline suppresses everything, including an explicit request
//     recorded in the same evaluation window.
//  2. An explicit guide-me click summons at the UI's baseline intensity.
//  3. Soft-exit mode suppresses all automatic interventions; a disengaging
//     user is never auto-interrupted.
//  4. A weighted overwhelm score at or above the threshold summons at low
//     intensity regardless of the UI baseline. Tone is never escalated to an
//     overwhelmed user.
//  5. Repeated help requests summon at the UI's baseline intensity.
//  6. Otherwise no summon.
//
// Negative telemetry counters are clamped to zero before scoring.
func Decide(ui UIState, signals domain.TelemetrySignals, params *Params) domain.SummonDecision {
	if params == nil {
		params = NewDefaultParams()
	}
	signals = signals.Normalized()

	if signals.UserDeclinedRecently {
		return domain.SummonDecision{ShouldSummon: false, Intensity: domain.IntensityLow}
	}

	if signals.UserClickedGuideMe {
		return domain.SummonDecision{
			ShouldSummon: true,
			Intensity:    ui.Intensity,
			Reason:       domain.SummonReasonUserRequest,
			Message:      params.UserRequestMessage,
		}
	}

	if ui.Mode == domain.UIModeSoftExit {
		return domain.SummonDecision{ShouldSummon: false, Intensity: domain.IntensityLow}
	}

	if OverwhelmScore(signals, params) >= params.OverwhelmThreshold {
		return domain.SummonDecision{
			ShouldSummon: true,
			Intensity:    domain.IntensityLow,
			Reason:       domain.SummonReasonOverwhelmed,
			Message:      params.OverwhelmedMessage,
		}
	}

	if signals.HelpRequests >= params.HelpRequestThreshold {
		return domain.SummonDecision{
			ShouldSummon: true,
			Intensity:    ui.Intensity,
			Reason:       domain.SummonReasonAssistanceNeeded,
			Message:      params.AssistanceMessage,
		}
	}

	return domain.SummonDecision{ShouldSummon: false, Intensity: domain.IntensityLow}
}

// OverwhelmScore computes the weighted sum of confusion-indicating counters
// used to gate the "slow down" intervention.
func OverwhelmScore(signals domain.TelemetrySignals, params *Params) float64 {
	if params == nil {
		params = NewDefaultParams()
	}
	signals = signals.Normalized()

	return float64(signals.RapidClickBursts)*params.RapidClickWeight +
		float64(signals.BackAndForthNavs)*params.BackForthWeight +
		float64(signals.PausesBeforeAction)*params.PauseWeight
}
