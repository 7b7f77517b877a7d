package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/creditclimb/engine/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes of interest
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// foreignKeyViolationCode is the PostgreSQL error code for foreign key violations
	foreignKeyViolationCode = "23503"

	// checkViolationCode is the PostgreSQL error code for check constraint violations
	checkViolationCode = "23514"
)

// mapError translates database driver errors into store sentinel errors so
// callers can use errors.Is against the store taxonomy.
func mapError(err error, notFound error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case checkViolationCode:
			return fmt.Errorf("%w: %s", store.ErrInvalidEntity, pgErr.ConstraintName)
		case uniqueViolationCode, foreignKeyViolationCode:
			return fmt.Errorf("%w: %s", store.ErrInvalidEntity, pgErr.ConstraintName)
		}
	}

	return err
}
