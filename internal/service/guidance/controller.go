package guidance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/creditclimb/engine/internal/domain"
	"github.com/creditclimb/engine/internal/events"
	"github.com/creditclimb/engine/internal/platform/logger"
	"github.com/creditclimb/engine/internal/store"
	"github.com/creditclimb/engine/internal/task"
	"github.com/google/uuid"
)

// ErrPreferenceSaveFailed wraps a preference persistence failure after the
// local value has been rolled back. This is the only engine failure that is
// surfaced to the UI rather than degraded silently.
var ErrPreferenceSaveFailed = errors.New("failed to save guidance preferences")

// Controller manages one learner's guidance preferences and the lifecycle of
// the active intervention trigger. It is created on login and destroyed on
// logout; there is no ambient singleton.
type Controller struct {
	prefStore store.PreferenceStore
	scheduler task.Scheduler
	emitter   events.EventEmitter
	logger    *slog.Logger

	mu         sync.Mutex
	prefs      domain.GuidancePreferences
	active     *domain.ActiveTrigger
	dismiss    task.Handle
	generation uint64
}

// NewController creates a Controller for the given user, loading their stored
// preferences or creating defaults when none exist yet.
// If emitter is nil, events are discarded. If logger is nil, a default
// logger will be used.
func NewController(
	ctx context.Context,
	userID uuid.UUID,
	prefStore store.PreferenceStore,
	scheduler task.Scheduler,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (*Controller, error) {
	if prefStore == nil {
		panic("preference store cannot be nil")
	}
	if scheduler == nil {
		panic("scheduler cannot be nil")
	}
	if emitter == nil {
		emitter = events.NopEmitter{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	prefs, err := prefStore.Get(ctx, userID)
	if err != nil {
		if !store.IsNotFoundError(err) {
			return nil, fmt.Errorf("failed to load guidance preferences: %w", err)
		}
		prefs, err = domain.NewGuidancePreferences(userID)
		if err != nil {
			return nil, fmt.Errorf("failed to create default preferences: %w", err)
		}
	}

	return &Controller{
		prefStore: prefStore,
		scheduler: scheduler,
		emitter:   emitter,
		logger: logger.With(
			slog.String("component", "guidance_controller"),
			slog.String("user_id", userID.String()),
		),
		prefs: *prefs,
	}, nil
}

// Preferences returns a copy of the current preferences.
func (c *Controller) Preferences() domain.GuidancePreferences {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prefs
}

// SetPreference applies a preference patch optimistically: the local value
// changes immediately, then the store commit runs. On commit failure the
// local value is rolled back to the pre-patch state and the error is
// returned; callers must surface it, not swallow it.
func (c *Controller) SetPreference(ctx context.Context, patch PreferencePatch) (domain.GuidancePreferences, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	c.mu.Lock()
	defer c.mu.Unlock()

	cmd := newUpdateCommand(&c.prefs, c.prefStore)
	cmd.apply(patch)

	if err := cmd.commit(ctx); err != nil {
		cmd.rollback()
		log.Error("preference update failed, rolled back",
			slog.String("error", err.Error()))
		return c.prefs, fmt.Errorf("%w: %v", ErrPreferenceSaveFailed, err)
	}

	log.Debug("preferences updated",
		slog.String("guidance_mode", string(c.prefs.GuidanceMode)),
		slog.Bool("orientation_completed", c.prefs.OrientationCompleted))

	return c.prefs, nil
}

// MarkOrientationCompleted records orientation completion and forces guidance
// mode back to full, re-enabling guidance that may have been silenced before
// completion. Uses the same optimistic commit-or-rollback path as
// SetPreference.
func (c *Controller) MarkOrientationCompleted(ctx context.Context) (domain.GuidancePreferences, error) {
	completed := true
	full := domain.GuidanceModeFull
	return c.SetPreference(ctx, PreferencePatch{
		OrientationCompleted: &completed,
		GuidanceMode:         &full,
	})
}

// TriggerGuidance installs trigger as the active intervention message.
//
// In silent mode this is a no-op: guidance is fully suppressed. Otherwise any
// pending auto-dismiss timer from a prior trigger is cancelled first, and if
// the new trigger carries a duration, a fresh cancellable auto-dismiss is
// scheduled. A stale timer firing late can never clear this trigger: every
// installation bumps a generation counter that the timer callback checks.
func (c *Controller) TriggerGuidance(ctx context.Context, trigger domain.ActiveTrigger) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	c.mu.Lock()

	if c.prefs.GuidanceMode == domain.GuidanceModeSilent {
		c.mu.Unlock()
		log.Debug("guidance suppressed by silent mode",
			slog.String("trigger_text", trigger.Text))
		return
	}

	if trigger.ID == uuid.Nil {
		trigger.ID = uuid.New()
	}

	c.cancelDismissLocked()
	c.active = &trigger
	c.generation++
	gen := c.generation

	if trigger.Duration > 0 {
		c.dismiss = c.scheduler.AfterFunc(trigger.Duration, func() {
			c.autoDismiss(gen)
		})
	}
	c.mu.Unlock()

	c.emit(ctx, events.TypeGuidanceTriggered, trigger)

	log.Debug("guidance triggered",
		slog.String("trigger_id", trigger.ID.String()),
		slog.String("emotion", trigger.Emotion),
		slog.Duration("duration", trigger.Duration))
}

// DismissTrigger clears the active trigger and cancels any pending
// auto-dismiss timer. Dismissing when nothing is active is a no-op.
func (c *Controller) DismissTrigger(ctx context.Context) {
	c.mu.Lock()
	if c.active == nil {
		c.mu.Unlock()
		return
	}
	dismissed := *c.active
	c.active = nil
	c.generation++
	c.cancelDismissLocked()
	c.mu.Unlock()

	c.emit(ctx, events.TypeGuidanceDismissed, dismissed)
}

// ActiveTrigger returns a copy of the live trigger, or nil when none is
// active.
func (c *Controller) ActiveTrigger() *domain.ActiveTrigger {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil {
		return nil
	}
	trigger := *c.active
	return &trigger
}

// Close cancels any pending timer. Called on logout.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelDismissLocked()
	c.active = nil
}

// autoDismiss is the timer callback. It only clears the trigger it was
// scheduled for: if the generation moved on, a newer trigger or an explicit
// dismiss got there first and this callback does nothing.
func (c *Controller) autoDismiss(gen uint64) {
	c.mu.Lock()
	if c.generation != gen || c.active == nil {
		c.mu.Unlock()
		return
	}
	dismissed := *c.active
	c.active = nil
	c.dismiss = nil
	c.mu.Unlock()

	c.emit(context.Background(), events.TypeGuidanceDismissed, dismissed)
}

// cancelDismissLocked cancels the pending dismiss handle if any. Callers
// must hold c.mu.
func (c *Controller) cancelDismissLocked() {
	if c.dismiss != nil {
		c.dismiss.Cancel()
		c.dismiss = nil
	}
}

// emit publishes a guidance event, logging and swallowing emitter failures.
func (c *Controller) emit(ctx context.Context, eventType string, payload any) {
	event, err := events.NewSessionEvent(eventType, payload)
	if err != nil {
		c.logger.Error("failed to build guidance event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
		return
	}
	if err := c.emitter.EmitEvent(ctx, event); err != nil {
		c.logger.Warn("guidance event handler failed",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
	}
}
