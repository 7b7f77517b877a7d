package session

import (
	"github.com/creditclimb/engine/internal/domain"
)

// State represents the current phase of a practice session.
type State string

// Possible session states
const (
	// StateIdle is the zero state before Start has been called.
	StateIdle State = "idle"

	// StateLoading covers stats fetch, scheduling, and scenario generation.
	StateLoading State = "loading"

	// StateAwaitingChoice means one scenario is visible and no choice has
	// been recorded for it yet.
	StateAwaitingChoice State = "awaiting_choice"

	// StateChoiceMade means the visible scenario's choice has been recorded
	// and the session is waiting for the advance action.
	StateChoiceMade State = "choice_made"

	// StateComplete is terminal for this session instance. Replay builds a
	// brand-new session.
	StateComplete State = "complete"
)

// Snapshot is a copy of the session state handed to subscribers and API
// responses. Mutating a snapshot has no effect on the session.
type Snapshot struct {
	State          State             `json:"state"`
	Scenarios      []domain.Scenario `json:"scenarios"`
	CurrentIndex   int               `json:"current_index"`
	TotalPoints    int               `json:"total_points"`
	SimulatedScore int               `json:"simulated_score"`
	Completed      bool              `json:"completed"`
}

// Current returns the scenario currently visible to the learner, or nil when
// the session has no visible scenario (idle, loading, or complete).
func (s *Snapshot) Current() *domain.Scenario {
	if s.State != StateAwaitingChoice && s.State != StateChoiceMade {
		return nil
	}
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Scenarios) {
		return nil
	}
	return &s.Scenarios[s.CurrentIndex]
}

// ChoiceResult describes the applied outcome of one submitted choice.
type ChoiceResult struct {
	Correct        bool   `json:"correct"`
	PointsAwarded  int    `json:"points_awarded"`
	ScoreImpact    int    `json:"score_impact"`
	SimulatedScore int    `json:"simulated_score"`
	Feedback       string `json:"feedback"`
}
