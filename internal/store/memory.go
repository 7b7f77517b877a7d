package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/creditclimb/engine/internal/domain"
	"github.com/google/uuid"
)

// MemoryMasteryStore is an in-memory MasteryStore. It backs tests and
// library embeddings that run without a database.
type MemoryMasteryStore struct {
	mu    sync.RWMutex
	stats map[uuid.UUID]map[string]domain.TemplateStat
}

// NewMemoryMasteryStore creates an empty in-memory mastery store.
func NewMemoryMasteryStore() *MemoryMasteryStore {
	return &MemoryMasteryStore{
		stats: make(map[uuid.UUID]map[string]domain.TemplateStat),
	}
}

// Ensure MemoryMasteryStore implements the MasteryStore interface
var _ MasteryStore = (*MemoryMasteryStore)(nil)

// GetStats implements MasteryStore.GetStats.
func (s *MemoryMasteryStore) GetStats(
	ctx context.Context,
	userID uuid.UUID,
) (map[string]domain.TemplateStat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]domain.TemplateStat, len(s.stats[userID]))
	for id, stat := range s.stats[userID] {
		out[id] = stat
	}
	return out, nil
}

// AppendOutcome implements MasteryStore.AppendOutcome.
func (s *MemoryMasteryStore) AppendOutcome(
	ctx context.Context,
	userID uuid.UUID,
	templateID string,
	correct bool,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if templateID == "" {
		return fmt.Errorf("%w: %v", ErrInvalidEntity, domain.ErrEmptyStatTemplateID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	userStats := s.stats[userID]
	if userStats == nil {
		userStats = make(map[string]domain.TemplateStat)
		s.stats[userID] = userStats
	}

	stat, ok := userStats[templateID]
	if !ok {
		stat = domain.TemplateStat{TemplateID: templateID}
	}
	userStats[templateID] = stat.RecordOutcome(correct)
	return nil
}

// MemoryPreferenceStore is an in-memory PreferenceStore.
type MemoryPreferenceStore struct {
	mu    sync.RWMutex
	prefs map[uuid.UUID]domain.GuidancePreferences
}

// NewMemoryPreferenceStore creates an empty in-memory preference store.
func NewMemoryPreferenceStore() *MemoryPreferenceStore {
	return &MemoryPreferenceStore{
		prefs: make(map[uuid.UUID]domain.GuidancePreferences),
	}
}

// Ensure MemoryPreferenceStore implements the PreferenceStore interface
var _ PreferenceStore = (*MemoryPreferenceStore)(nil)

// Get implements PreferenceStore.Get.
func (s *MemoryPreferenceStore) Get(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.GuidancePreferences, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	prefs, ok := s.prefs[userID]
	if !ok {
		return nil, ErrPreferencesNotFound
	}
	return &prefs, nil
}

// Upsert implements PreferenceStore.Upsert.
func (s *MemoryPreferenceStore) Upsert(ctx context.Context, prefs *domain.GuidancePreferences) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := prefs.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs[prefs.UserID] = *prefs
	return nil
}
