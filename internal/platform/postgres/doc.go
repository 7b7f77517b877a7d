// Package postgres provides PostgreSQL implementations of the engine's store
// interfaces.
//
// Connections use the pgx driver through database/sql. Store methods map
// database errors to the sentinel errors in internal/store so callers never
// depend on driver error types.
package postgres
