package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Scenario-specific validation errors
var (
	// ErrTemplateIDEmpty is returned when a scenario template ID is empty.
	ErrTemplateIDEmpty = errors.New("scenario template ID cannot be empty")

	// ErrTemplateTitleEmpty is returned when a scenario template title is empty.
	ErrTemplateTitleEmpty = errors.New("scenario template title cannot be empty")

	// ErrTemplateNoChoices is returned when a template defines fewer than two choices.
	ErrTemplateNoChoices = errors.New("scenario template must define at least two choices")

	// ErrTemplateCorrectChoices is returned when a template does not define
	// exactly one correct choice.
	ErrTemplateCorrectChoices = errors.New("scenario template must define exactly one correct choice")

	// ErrChoiceIDEmpty is returned when a choice definition ID is empty.
	ErrChoiceIDEmpty = errors.New("choice ID cannot be empty")
)

// ChoiceDef defines one selectable answer within a scenario template.
// TextTemplate and FeedbackTemplate may contain placeholders that the
// generator resolves at instantiation time; IsCorrect, Points and ScoreImpact
// are fixed by the catalog and never change during instantiation.
type ChoiceDef struct {
	ID               string `json:"id"                validate:"required"`
	TextTemplate     string `json:"text"              validate:"required"`
	IsCorrect        bool   `json:"is_correct"`
	Points           int    `json:"points"`
	ScoreImpact      int    `json:"score_impact"`
	FeedbackTemplate string `json:"feedback"          validate:"required"`
}

// ValueRange declares an illustrative numeric range for one placeholder in a
// template's text. The generator picks a value from the range
// deterministically; variety is cosmetic and never changes which choice is
// correct.
type ValueRange struct {
	Min  int `json:"min"  validate:"gte=0"`
	Max  int `json:"max"  validate:"gtefield=Min"`
	Step int `json:"step"`
}

// ScenarioTemplate is a static, catalog-defined practice topic. Templates are
// read-only at runtime; the catalog is loaded once at process start.
type ScenarioTemplate struct {
	ID                  string                `json:"id"          validate:"required"`
	Title               string                `json:"title"       validate:"required"`
	Theme               string                `json:"theme"`
	DescriptionTemplate string                `json:"description" validate:"required"`
	Ranges              map[string]ValueRange `json:"ranges,omitempty" validate:"omitempty,dive"`
	Choices             []ChoiceDef           `json:"choices"     validate:"required,min=2,dive"`
}

// Validate checks if the ScenarioTemplate has valid data.
// Returns an error if any field fails validation.
func (t *ScenarioTemplate) Validate() error {
	if t.ID == "" {
		return ErrTemplateIDEmpty
	}

	if t.Title == "" {
		return ErrTemplateTitleEmpty
	}

	if len(t.Choices) < 2 {
		return ErrTemplateNoChoices
	}

	correct := 0
	for _, c := range t.Choices {
		if c.ID == "" {
			return ErrChoiceIDEmpty
		}
		if c.IsCorrect {
			correct++
		}
	}

	if correct != 1 {
		return ErrTemplateCorrectChoices
	}

	return nil
}

// Choice is an instantiated, presentable answer option within a Scenario.
type Choice struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	IsCorrect   bool   `json:"is_correct"`
	Points      int    `json:"points"`
	ScoreImpact int    `json:"score_impact"`
	Feedback    string `json:"feedback"`
}

// Scenario is one instantiated practice item derived from a template.
// It is owned exclusively by the session that generated it and is discarded
// when the session ends.
type Scenario struct {
	ID          uuid.UUID `json:"id"`
	TemplateID  string    `json:"template_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Choices     []Choice  `json:"choices"`
}

// ChoiceByID returns the scenario choice with the given ID, or nil if the
// scenario has no such choice.
func (s *Scenario) ChoiceByID(choiceID string) *Choice {
	for i := range s.Choices {
		if s.Choices[i].ID == choiceID {
			return &s.Choices[i]
		}
	}
	return nil
}
