package store

import (
	"context"

	"github.com/creditclimb/engine/internal/domain"
	"github.com/google/uuid"
)

// MasteryStore defines the interface for per-learner template performance
// history.
// Version: 1.0
type MasteryStore interface {
	// GetStats retrieves all template statistics recorded for a user, keyed
	// by template ID. A user with no history yields an empty map, not an
	// error. May fail or time out; callers are expected to degrade to a
	// default ordering rather than block a session on this failure.
	GetStats(ctx context.Context, userID uuid.UUID) (map[string]domain.TemplateStat, error)

	// AppendOutcome records one choice outcome for a template. Outcomes are
	// append-only: the aggregate stat for the template is created on first
	// outcome and never deleted. Callers may treat failures as best-effort
	// telemetry loss; the store itself does not retry.
	AppendOutcome(ctx context.Context, userID uuid.UUID, templateID string, correct bool) error
}

// PreferenceStore defines the interface for per-user guidance preference
// persistence.
// Version: 1.0
type PreferenceStore interface {
	// Get retrieves the guidance preferences for a user.
	// Returns ErrPreferencesNotFound if the user has none stored yet.
	Get(ctx context.Context, userID uuid.UUID) (*domain.GuidancePreferences, error)

	// Upsert creates or replaces the stored preferences for prefs.UserID.
	// It handles domain validation internally and returns validation errors
	// wrapped in ErrInvalidEntity if the preferences are invalid.
	Upsert(ctx context.Context, prefs *domain.GuidancePreferences) error
}
