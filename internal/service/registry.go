// Package service wires the engine's per-learner components together. The
// registry owns one session orchestrator and one guidance controller per
// active learner, created on first use and destroyed on logout.
package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/creditclimb/engine/internal/domain/schedule"
	"github.com/creditclimb/engine/internal/events"
	"github.com/creditclimb/engine/internal/generation"
	"github.com/creditclimb/engine/internal/service/guidance"
	"github.com/creditclimb/engine/internal/service/session"
	"github.com/creditclimb/engine/internal/store"
	"github.com/creditclimb/engine/internal/task"
	"github.com/google/uuid"
)

// Registry creates and caches the per-learner engine components. The engine
// assumes a single active session per user; a second login reuses the same
// components rather than defending against concurrent sessions.
type Registry struct {
	mastery        store.MasteryStore
	prefs          store.PreferenceStore
	generator      *generation.Generator
	scheduleParams *schedule.Params
	sessionParams  *session.Params
	scheduler      task.Scheduler
	emitter        events.EventEmitter
	logger         *slog.Logger

	mu       sync.Mutex
	learners map[uuid.UUID]*learnerEntry
}

type learnerEntry struct {
	orchestrator *session.Orchestrator
	controller   *guidance.Controller
}

// NewRegistry creates a Registry over the given stores and engine parameters.
// Nil params, emitter, or logger fall back to defaults.
func NewRegistry(
	mastery store.MasteryStore,
	prefs store.PreferenceStore,
	generator *generation.Generator,
	scheduleParams *schedule.Params,
	sessionParams *session.Params,
	scheduler task.Scheduler,
	emitter events.EventEmitter,
	logger *slog.Logger,
) *Registry {
	if mastery == nil {
		panic("mastery store cannot be nil")
	}
	if prefs == nil {
		panic("preference store cannot be nil")
	}
	if generator == nil {
		panic("generator cannot be nil")
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

	return &Registry{
		mastery:        mastery,
		prefs:          prefs,
		generator:      generator,
		scheduleParams: scheduleParams,
		sessionParams:  sessionParams,
		scheduler:      scheduler,
		emitter:        emitter,
		logger:         logger,
		learners:       make(map[uuid.UUID]*learnerEntry),
	}
}

// Orchestrator returns the session orchestrator for a learner, creating the
// learner's components on first use.
func (r *Registry) Orchestrator(ctx context.Context, userID uuid.UUID) (*session.Orchestrator, error) {
	entry, err := r.entry(ctx, userID)
	if err != nil {
		return nil, err
	}
	return entry.orchestrator, nil
}

// Controller returns the guidance controller for a learner, creating the
// learner's components on first use.
func (r *Registry) Controller(ctx context.Context, userID uuid.UUID) (*guidance.Controller, error) {
	entry, err := r.entry(ctx, userID)
	if err != nil {
		return nil, err
	}
	return entry.controller, nil
}

// Release destroys a learner's components, cancelling any pending guidance
// timer. Called on logout.
func (r *Registry) Release(userID uuid.UUID) {
	r.mu.Lock()
	entry, ok := r.learners[userID]
	delete(r.learners, userID)
	r.mu.Unlock()

	if ok {
		entry.controller.Close()
	}
}

func (r *Registry) entry(ctx context.Context, userID uuid.UUID) (*learnerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.learners[userID]; ok {
		return entry, nil
	}

	controller, err := guidance.NewController(ctx, userID, r.prefs, r.scheduler, r.emitter, r.logger)
	if err != nil {
		return nil, err
	}

	entry := &learnerEntry{
		orchestrator: session.NewOrchestrator(
			userID, r.mastery, r.generator, r.scheduleParams, r.sessionParams, r.emitter, r.logger),
		controller: controller,
	}
	r.learners[userID] = entry
	return entry, nil
}
