package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/creditclimb/engine/internal/domain"
	"github.com/creditclimb/engine/internal/domain/schedule"
	"github.com/creditclimb/engine/internal/events"
	"github.com/creditclimb/engine/internal/generation"
	"github.com/creditclimb/engine/internal/platform/logger"
	"github.com/creditclimb/engine/internal/store"
	"github.com/google/uuid"
)

// Params defines the tunable values of the session orchestrator.
type Params struct {
	// SessionSize is the number of scenarios scheduled per session.
	SessionSize int

	// CompletionBonus is the fixed point award for finishing the last
	// scenario of a session.
	CompletionBonus int

	// StartingScore is the simulated credit score a fresh session opens with.
	StartingScore int
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		SessionSize:     5,
		CompletionBonus: 50,
		StartingScore:   600,
	}
}

// Orchestrator drives one learner's practice session. It owns the session
// state exclusively; callers interact through the transition methods and
// receive copies via Snapshot.
//
// A mutex guards the state because event handlers and HTTP handlers may call
// in from different goroutines; the orchestrator itself never spawns any.
type Orchestrator struct {
	userID    uuid.UUID
	mastery   store.MasteryStore
	generator *generation.Generator
	schedule  *schedule.Params
	params    *Params
	emitter   events.EventEmitter
	logger    *slog.Logger

	mu             sync.Mutex
	state          State
	scenarios      []domain.Scenario
	currentIndex   int
	totalPoints    int
	simulatedScore int
	completed      bool
}

// NewOrchestrator creates an Orchestrator for one user's session.
// If scheduleParams, params, or emitter are nil, defaults are used.
// If logger is nil, a default logger will be used.
func NewOrchestrator(
	userID uuid.UUID,
	mastery store.MasteryStore,
	generator *generation.Generator,
	scheduleParams *schedule.Params,
	params *Params,
	emitter events.EventEmitter,
	logger *slog.Logger,
) *Orchestrator {
	if mastery == nil {
		panic("mastery store cannot be nil")
	}
	if generator == nil {
		panic("generator cannot be nil")
	}
	if scheduleParams == nil {
		scheduleParams = schedule.NewDefaultParams()
	}
	if params == nil {
		params = NewDefaultParams()
	}
	if emitter == nil {
		emitter = events.NopEmitter{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Orchestrator{
		userID:    userID,
		mastery:   mastery,
		generator: generator,
		schedule:  scheduleParams,
		params:    params,
		emitter:   emitter,
		logger: logger.With(
			slog.String("component", "session_orchestrator"),
			slog.String("user_id", userID.String()),
		),
		state: StateIdle,
	}
}

// Start loads a fresh session: fetch mastery stats, schedule a playlist, and
// generate one scenario per scheduled template.
//
// A stats fetch failure is never fatal. The scheduler falls back to catalog
// order truncated to the session size, the failure is logged, and the session
// proceeds.
func (o *Orchestrator) Start(ctx context.Context) (*Snapshot, error) {
	log := logger.FromContextOrDefault(ctx, o.logger)

	o.mu.Lock()

	if o.state == StateAwaitingChoice || o.state == StateChoiceMade {
		o.mu.Unlock()
		return nil, &ServiceError{Operation: "start", Message: "session already in progress"}
	}

	o.state = StateLoading
	log.Debug("loading session", slog.Int("session_size", o.params.SessionSize))

	catalog := o.generator.Catalog().All()

	var playlist []domain.ScenarioTemplate
	stats, err := o.mastery.GetStats(ctx, o.userID)
	if err != nil {
		log.Warn("failed to fetch mastery stats, falling back to catalog order",
			slog.String("error", err.Error()))
		playlist = schedule.Truncate(catalog, o.params.SessionSize, o.schedule)
	} else {
		playlist = schedule.Schedule(catalog, stats, o.params.SessionSize, o.schedule)
	}

	scenarios := make([]domain.Scenario, 0, len(playlist))
	for i, tmpl := range playlist {
		s, err := o.generator.Generate(i, tmpl.ID)
		if err != nil {
			o.state = StateIdle
			o.mu.Unlock()
			return nil, &ServiceError{Operation: "start", Message: "scenario generation failed", Err: err}
		}
		scenarios = append(scenarios, *s)
	}

	o.scenarios = scenarios
	o.currentIndex = 0
	o.totalPoints = 0
	o.simulatedScore = domain.ClampScore(o.params.StartingScore)
	o.completed = false
	o.state = StateAwaitingChoice

	snapshot := o.snapshotLocked()
	o.mu.Unlock()

	// Emit after unlocking so a handler may call back into Snapshot.
	o.emit(ctx, events.TypeSessionStarted, snapshot)

	log.Debug("session started", slog.Int("scenario_count", len(scenarios)))
	return snapshot, nil
}

// SubmitChoice records the learner's choice for the visible scenario.
//
// A correct choice awards the choice's points and emits a positive-feedback
// event; every choice applies its score impact to the simulated score,
// clamped to the valid range. The outcome append to the mastery store is
// issued before the method returns but its failure is swallowed: outcome
// history is best-effort telemetry and never blocks the learner.
//
// Submitting a second choice for the same scenario returns
// ErrChoiceAlreadyMade and changes nothing.
func (o *Orchestrator) SubmitChoice(ctx context.Context, choiceID string) (*ChoiceResult, error) {
	log := logger.FromContextOrDefault(ctx, o.logger)

	o.mu.Lock()

	switch o.state {
	case StateIdle, StateLoading:
		o.mu.Unlock()
		return nil, ErrSessionNotStarted
	case StateComplete:
		o.mu.Unlock()
		return nil, ErrSessionComplete
	case StateChoiceMade:
		index := o.currentIndex
		o.mu.Unlock()
		log.Debug("ignoring duplicate choice",
			slog.String("choice_id", choiceID),
			slog.Int("scenario_index", index))
		return nil, ErrChoiceAlreadyMade
	}

	scenario := &o.scenarios[o.currentIndex]
	choice := scenario.ChoiceByID(choiceID)
	if choice == nil {
		o.mu.Unlock()
		return nil, fmt.Errorf("%w: %q", ErrUnknownChoice, choiceID)
	}

	var feedbackPayload map[string]any
	if choice.IsCorrect {
		o.totalPoints += choice.Points
		feedbackPayload = map[string]any{
			"scenario_id": scenario.ID,
			"points":      choice.Points,
		}
	}
	o.simulatedScore = domain.ClampScore(o.simulatedScore + choice.ScoreImpact)
	o.state = StateChoiceMade

	// Issue the outcome write before another choice can be accepted, so a
	// rapid advance cannot lose this outcome. Failure is logged only.
	if err := o.mastery.AppendOutcome(ctx, o.userID, scenario.TemplateID, choice.IsCorrect); err != nil {
		log.Warn("failed to append choice outcome",
			slog.String("error", err.Error()),
			slog.String("template_id", scenario.TemplateID))
	}

	result := &ChoiceResult{
		Correct:        choice.IsCorrect,
		PointsAwarded:  pointsIfCorrect(choice),
		ScoreImpact:    choice.ScoreImpact,
		SimulatedScore: o.simulatedScore,
		Feedback:       choice.Feedback,
	}

	recordedPayload := map[string]any{
		"scenario_id": scenario.ID,
		"template_id": scenario.TemplateID,
		"choice_id":   choice.ID,
		"correct":     choice.IsCorrect,
		"score":       o.simulatedScore,
	}
	o.mu.Unlock()

	// Emit after unlocking so a handler may call back into Snapshot.
	if feedbackPayload != nil {
		o.emit(ctx, events.TypePositiveFeedback, feedbackPayload)
	}
	o.emit(ctx, events.TypeChoiceRecorded, recordedPayload)

	log.Debug("choice recorded",
		slog.String("template_id", scenario.TemplateID),
		slog.String("choice_id", choice.ID),
		slog.Bool("correct", choice.IsCorrect),
		slog.Int("simulated_score", result.SimulatedScore))

	return result, nil
}

// Next advances past the resolved scenario. With scenarios remaining it
// returns to AwaitingChoice; otherwise it awards the completion bonus and the
// session becomes terminal.
func (o *Orchestrator) Next(ctx context.Context) (*Snapshot, error) {
	log := logger.FromContextOrDefault(ctx, o.logger)

	o.mu.Lock()

	switch o.state {
	case StateIdle, StateLoading:
		o.mu.Unlock()
		return nil, ErrSessionNotStarted
	case StateComplete:
		o.mu.Unlock()
		return nil, ErrSessionComplete
	case StateAwaitingChoice:
		o.mu.Unlock()
		return nil, ErrNoChoiceMade
	}

	if o.currentIndex+1 < len(o.scenarios) {
		o.currentIndex++
		o.state = StateAwaitingChoice
		snapshot := o.snapshotLocked()
		o.mu.Unlock()
		return snapshot, nil
	}

	o.totalPoints += o.params.CompletionBonus
	o.completed = true
	o.state = StateComplete

	snapshot := o.snapshotLocked()
	o.mu.Unlock()

	// Emit after unlocking so a handler may call back into Snapshot.
	o.emit(ctx, events.TypeSessionCompleted, snapshot)

	log.Debug("session completed",
		slog.Int("total_points", snapshot.TotalPoints),
		slog.Int("simulated_score", snapshot.SimulatedScore))

	return snapshot, nil
}

// Replay discards the completed session and loads a brand-new one. Mastery
// stats have changed since the last load, so scheduling runs fresh.
func (o *Orchestrator) Replay(ctx context.Context) (*Snapshot, error) {
	o.mu.Lock()
	if o.state == StateAwaitingChoice || o.state == StateChoiceMade {
		o.mu.Unlock()
		return nil, &ServiceError{Operation: "replay", Message: "session still in progress"}
	}
	o.state = StateIdle
	o.mu.Unlock()

	return o.Start(ctx)
}

// Snapshot returns a copy of the current session state.
func (o *Orchestrator) Snapshot() *Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

// snapshotLocked builds a state copy. Callers must hold o.mu.
func (o *Orchestrator) snapshotLocked() *Snapshot {
	scenarios := make([]domain.Scenario, len(o.scenarios))
	copy(scenarios, o.scenarios)

	return &Snapshot{
		State:          o.state,
		Scenarios:      scenarios,
		CurrentIndex:   o.currentIndex,
		TotalPoints:    o.totalPoints,
		SimulatedScore: o.simulatedScore,
		Completed:      o.completed,
	}
}

// emit publishes an event, logging and swallowing emitter failures: state
// change notification is never allowed to fail a transition.
func (o *Orchestrator) emit(ctx context.Context, eventType string, payload any) {
	event, err := events.NewSessionEvent(eventType, payload)
	if err != nil {
		o.logger.Error("failed to build session event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
		return
	}
	if err := o.emitter.EmitEvent(ctx, event); err != nil {
		o.logger.Warn("session event handler failed",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
	}
}

func pointsIfCorrect(c *domain.Choice) int {
	if c.IsCorrect {
		return c.Points
	}
	return 0
}
