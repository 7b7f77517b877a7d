package domain

import (
	"errors"
)

// Common validation errors for TemplateStat
var (
	ErrEmptyStatTemplateID    = errors.New("template stat template ID cannot be empty")
	ErrNegativeAttempts       = errors.New("attempts must be greater than or equal to 0")
	ErrNegativeCorrect        = errors.New("correct count must be greater than or equal to 0")
	ErrCorrectExceedsAttempts = errors.New("correct count cannot exceed attempts")
)

// TemplateStat aggregates a learner's historical performance on a single
// scenario template. Stats are append-only: every recorded outcome increments
// Attempts and, when the choice was correct, Correct. Entries are never
// deleted.
type TemplateStat struct {
	TemplateID string `json:"template_id"`
	Attempts   int    `json:"attempts"`
	Correct    int    `json:"correct"`
}

// NewTemplateStat creates an empty stat for a template that has not been
// attempted yet.
func NewTemplateStat(templateID string) (*TemplateStat, error) {
	stat := &TemplateStat{
		TemplateID: templateID,
		Attempts:   0,
		Correct:    0,
	}

	if err := stat.Validate(); err != nil {
		return nil, err
	}

	return stat, nil
}

// Validate checks if the TemplateStat has valid data.
// Returns an error if any field fails validation.
func (s *TemplateStat) Validate() error {
	if s.TemplateID == "" {
		return ErrEmptyStatTemplateID
	}

	if s.Attempts < 0 {
		return ErrNegativeAttempts
	}

	if s.Correct < 0 {
		return ErrNegativeCorrect
	}

	if s.Correct > s.Attempts {
		return ErrCorrectExceedsAttempts
	}

	return nil
}

// RecordOutcome returns a copy of the stat with one more attempt recorded.
// The original stat is not modified.
func (s TemplateStat) RecordOutcome(correct bool) TemplateStat {
	s.Attempts++
	if correct {
		s.Correct++
	}
	return s
}
