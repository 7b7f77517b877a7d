package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/creditclimb/engine/internal/domain"
	"github.com/creditclimb/engine/internal/store"
	"github.com/google/uuid"
)

// PostgresPreferenceStore implements the store.PreferenceStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPreferenceStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresPreferenceStore creates a new PostgreSQL implementation of the
// PreferenceStore interface. The database handle should be initialized and
// managed by the caller. If logger is nil, a default logger will be used.
func NewPostgresPreferenceStore(db *sql.DB, logger *slog.Logger) *PostgresPreferenceStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPreferenceStore{
		db:     db,
		logger: logger.With(slog.String("component", "preference_store")),
	}
}

// Ensure PostgresPreferenceStore implements store.PreferenceStore interface
var _ store.PreferenceStore = (*PostgresPreferenceStore)(nil)

// Get implements store.PreferenceStore.Get.
// Returns store.ErrPreferencesNotFound if the user has no stored preferences.
func (s *PostgresPreferenceStore) Get(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.GuidancePreferences, error) {
	var prefs domain.GuidancePreferences
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, orientation_completed, guidance_mode, voice_enabled, captions_enabled, updated_at
		FROM guidance_preferences
		WHERE user_id = $1`,
		userID,
	).Scan(
		&prefs.UserID,
		&prefs.OrientationCompleted,
		&prefs.GuidanceMode,
		&prefs.VoiceEnabled,
		&prefs.CaptionsEnabled,
		&prefs.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err, store.ErrPreferencesNotFound)
	}

	if err := prefs.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	return &prefs, nil
}

// Upsert implements store.PreferenceStore.Upsert.
// It validates the preferences and creates or replaces the stored row.
func (s *PostgresPreferenceStore) Upsert(ctx context.Context, prefs *domain.GuidancePreferences) error {
	if err := prefs.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO guidance_preferences (user_id, orientation_completed, guidance_mode, voice_enabled, captions_enabled, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET orientation_completed = EXCLUDED.orientation_completed,
		    guidance_mode = EXCLUDED.guidance_mode,
		    voice_enabled = EXCLUDED.voice_enabled,
		    captions_enabled = EXCLUDED.captions_enabled,
		    updated_at = NOW()`,
		prefs.UserID,
		prefs.OrientationCompleted,
		prefs.GuidanceMode,
		prefs.VoiceEnabled,
		prefs.CaptionsEnabled,
	)
	if err != nil {
		return mapError(err, store.ErrPreferencesNotFound)
	}

	return nil
}
