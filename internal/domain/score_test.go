package domain

import "testing"

func TestClampScore(t *testing.T) {
	testCases := []struct {
		name     string
		score    int
		expected int
	}{
		{"within range", 600, 600},
		{"at lower bound", MinSimulatedScore, MinSimulatedScore},
		{"at upper bound", MaxSimulatedScore, MaxSimulatedScore},
		{"below lower bound", 120, MinSimulatedScore},
		{"above upper bound", 1000, MaxSimulatedScore},
		{"negative score", -50, MinSimulatedScore},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClampScore(tc.score)

			if got != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, got)
			}
		})
	}
}
