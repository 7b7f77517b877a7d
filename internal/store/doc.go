// Package store defines the persistence interfaces the engine depends on and
// the shared error taxonomy for their implementations.
//
// The engine treats both stores as external collaborators: the mastery store
// holds per-learner, per-template performance history, and the preference
// store holds per-learner guidance settings. Concrete implementations live in
// internal/platform/postgres; in-memory implementations in this package back
// tests and library use without a database.
package store
