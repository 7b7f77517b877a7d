package domain

import (
	"testing"
)

func validTemplate() ScenarioTemplate {
	return ScenarioTemplate{
		ID:                  "utilization-basics",
		Title:               "Keeping Utilization Low",
		DescriptionTemplate: "Your card has a {limit} dollar limit.",
		Ranges: map[string]ValueRange{
			"limit": {Min: 1000, Max: 5000, Step: 500},
		},
		Choices: []ChoiceDef{
			{ID: "pay-early", TextTemplate: "Pay early", IsCorrect: true, Points: 100, ScoreImpact: 12, FeedbackTemplate: "Good."},
			{ID: "minimum-only", TextTemplate: "Pay the minimum", FeedbackTemplate: "Costly."},
		},
	}
}

func TestScenarioTemplateValidate(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(*ScenarioTemplate)
		expected error
	}{
		{
			name:     "valid template",
			mutate:   func(*ScenarioTemplate) {},
			expected: nil,
		},
		{
			name:     "empty ID",
			mutate:   func(tmpl *ScenarioTemplate) { tmpl.ID = "" },
			expected: ErrTemplateIDEmpty,
		},
		{
			name:     "empty title",
			mutate:   func(tmpl *ScenarioTemplate) { tmpl.Title = "" },
			expected: ErrTemplateTitleEmpty,
		},
		{
			name:     "single choice",
			mutate:   func(tmpl *ScenarioTemplate) { tmpl.Choices = tmpl.Choices[:1] },
			expected: ErrTemplateNoChoices,
		},
		{
			name:     "empty choice ID",
			mutate:   func(tmpl *ScenarioTemplate) { tmpl.Choices[1].ID = "" },
			expected: ErrChoiceIDEmpty,
		},
		{
			name:     "no correct choice",
			mutate:   func(tmpl *ScenarioTemplate) { tmpl.Choices[0].IsCorrect = false },
			expected: ErrTemplateCorrectChoices,
		},
		{
			name:     "two correct choices",
			mutate:   func(tmpl *ScenarioTemplate) { tmpl.Choices[1].IsCorrect = true },
			expected: ErrTemplateCorrectChoices,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tmpl := validTemplate()
			tc.mutate(&tmpl)

			err := tmpl.Validate()
			if err != tc.expected {
				t.Errorf("Expected error %v, got %v", tc.expected, err)
			}
		})
	}
}

func TestScenarioChoiceByID(t *testing.T) {
	scenario := Scenario{
		TemplateID: "t",
		Choices: []Choice{
			{ID: "a", Text: "first"},
			{ID: "b", Text: "second"},
		},
	}

	choice := scenario.ChoiceByID("b")
	if choice == nil {
		t.Fatal("Expected choice b, got nil")
	}
	if choice.Text != "second" {
		t.Errorf("Expected text second, got %q", choice.Text)
	}

	if got := scenario.ChoiceByID("missing"); got != nil {
		t.Errorf("Expected nil for unknown choice ID, got %+v", got)
	}
}
