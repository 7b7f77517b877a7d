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

// PostgresMasteryStore implements the store.MasteryStore interface using a
// PostgreSQL database as the storage backend.
//
// Outcomes are written twice per append, inside one transaction: a row in the
// append-only outcomes log and an upsert of the aggregate template_stats row.
// The aggregate keeps GetStats a single cheap read on every session start.
type PostgresMasteryStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresMasteryStore creates a new PostgreSQL implementation of the
// MasteryStore interface. The database handle should be initialized and
// managed by the caller. If logger is nil, a default logger will be used.
func NewPostgresMasteryStore(db *sql.DB, logger *slog.Logger) *PostgresMasteryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresMasteryStore{
		db:     db,
		logger: logger.With(slog.String("component", "mastery_store")),
	}
}

// Ensure PostgresMasteryStore implements store.MasteryStore interface
var _ store.MasteryStore = (*PostgresMasteryStore)(nil)

// GetStats implements store.MasteryStore.GetStats.
// A user with no recorded outcomes yields an empty map.
func (s *PostgresMasteryStore) GetStats(
	ctx context.Context,
	userID uuid.UUID,
) (map[string]domain.TemplateStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT template_id, attempts, correct
		FROM template_stats
		WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, store.NewStoreError("template_stat", "get_stats", "query failed", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.logger.Warn("failed to close stats rows", slog.String("error", cerr.Error()))
		}
	}()

	stats := make(map[string]domain.TemplateStat)
	for rows.Next() {
		var stat domain.TemplateStat
		if err := rows.Scan(&stat.TemplateID, &stat.Attempts, &stat.Correct); err != nil {
			return nil, store.NewStoreError("template_stat", "get_stats", "scan failed", err)
		}
		if err := stat.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
		stats[stat.TemplateID] = stat
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("template_stat", "get_stats", "row iteration failed", err)
	}

	return stats, nil
}

// AppendOutcome implements store.MasteryStore.AppendOutcome.
// The outcome log insert and the aggregate upsert commit atomically.
func (s *PostgresMasteryStore) AppendOutcome(
	ctx context.Context,
	userID uuid.UUID,
	templateID string,
	correct bool,
) error {
	if templateID == "" {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrEmptyStatTemplateID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrTransactionFailed, err)
	}
	defer func() {
		// No-op when the transaction already committed.
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			s.logger.Warn("failed to roll back outcome transaction",
				slog.String("error", rbErr.Error()))
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO outcomes (id, user_id, template_id, correct, created_at)
		VALUES ($1, $2, $3, $4, NOW())`,
		uuid.New(), userID, templateID, correct,
	)
	if err != nil {
		return mapError(err, store.ErrNotFound)
	}

	correctIncrement := 0
	if correct {
		correctIncrement = 1
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO template_stats (user_id, template_id, attempts, correct, updated_at)
		VALUES ($1, $2, 1, $3, NOW())
		ON CONFLICT (user_id, template_id) DO UPDATE
		SET attempts = template_stats.attempts + 1,
		    correct = template_stats.correct + $3,
		    updated_at = NOW()`,
		userID, templateID, correctIncrement,
	)
	if err != nil {
		return mapError(err, store.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrTransactionFailed, err)
	}

	return nil
}
