package domain

import (
	"testing"
)

func TestNewTemplateStat(t *testing.T) {
	stat, err := NewTemplateStat("utilization-basics")

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if stat.TemplateID != "utilization-basics" {
		t.Errorf("Expected template ID utilization-basics, got %s", stat.TemplateID)
	}
	if stat.Attempts != 0 || stat.Correct != 0 {
		t.Errorf("Expected zeroed counters, got attempts=%d correct=%d", stat.Attempts, stat.Correct)
	}

	_, err = NewTemplateStat("")
	if err != ErrEmptyStatTemplateID {
		t.Errorf("Expected error %v, got %v", ErrEmptyStatTemplateID, err)
	}
}

func TestTemplateStatValidate(t *testing.T) {
	testCases := []struct {
		name     string
		stat     TemplateStat
		expected error
	}{
		{
			name:     "valid stat",
			stat:     TemplateStat{TemplateID: "t", Attempts: 3, Correct: 2},
			expected: nil,
		},
		{
			name:     "empty template ID",
			stat:     TemplateStat{Attempts: 1},
			expected: ErrEmptyStatTemplateID,
		},
		{
			name:     "negative attempts",
			stat:     TemplateStat{TemplateID: "t", Attempts: -1},
			expected: ErrNegativeAttempts,
		},
		{
			name:     "negative correct",
			stat:     TemplateStat{TemplateID: "t", Attempts: 1, Correct: -1},
			expected: ErrNegativeCorrect,
		},
		{
			name:     "correct exceeds attempts",
			stat:     TemplateStat{TemplateID: "t", Attempts: 1, Correct: 2},
			expected: ErrCorrectExceedsAttempts,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.stat.Validate()

			if err != tc.expected {
				t.Errorf("Expected error %v, got %v", tc.expected, err)
			}
		})
	}
}

func TestTemplateStatRecordOutcome(t *testing.T) {
	original := TemplateStat{TemplateID: "t", Attempts: 2, Correct: 1}

	afterCorrect := original.RecordOutcome(true)
	if afterCorrect.Attempts != 3 || afterCorrect.Correct != 2 {
		t.Errorf("Expected attempts=3 correct=2, got attempts=%d correct=%d",
			afterCorrect.Attempts, afterCorrect.Correct)
	}

	afterIncorrect := original.RecordOutcome(false)
	if afterIncorrect.Attempts != 3 || afterIncorrect.Correct != 1 {
		t.Errorf("Expected attempts=3 correct=1, got attempts=%d correct=%d",
			afterIncorrect.Attempts, afterIncorrect.Correct)
	}

	// The receiver is never mutated.
	if original.Attempts != 2 || original.Correct != 1 {
		t.Errorf("Expected original unchanged, got attempts=%d correct=%d",
			original.Attempts, original.Correct)
	}
}
