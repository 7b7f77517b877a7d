package generation

import (
	"log/slog"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/creditclimb/engine/internal/domain"
	"github.com/google/uuid"
)

// Generator instantiates presentable scenarios from catalog templates.
// Generation is deterministic for a given (index, templateID) pair: the
// scenario index seeds the random source used for both fallback template
// selection and placeholder value picks.
type Generator struct {
	catalog *Catalog
	logger  *slog.Logger
}

// NewGenerator creates a Generator over the given catalog.
// If logger is nil, a default logger will be used.
func NewGenerator(catalog *Catalog, logger *slog.Logger) *Generator {
	if catalog == nil {
		panic("catalog cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Generator{
		catalog: catalog,
		logger:  logger.With(slog.String("component", "scenario_generator")),
	}
}

// Catalog returns the catalog the generator draws from.
func (g *Generator) Catalog() *Catalog {
	return g.catalog
}

// Generate instantiates a scenario for the given position in a session.
//
// When templateID names a catalog template, that template is used. An empty
// or unknown templateID falls back to a pseudo-random pick seeded by index;
// unknown IDs are a caller bug and are logged, not fatal. Placeholders in the
// description and choice text are resolved from the template's declared
// ranges; IsCorrect, Points, and ScoreImpact are copied untouched and choice
// order is preserved.
func (g *Generator) Generate(index int, templateID string) (*domain.Scenario, error) {
	rng := rand.New(rand.NewSource(int64(index)))

	tmpl, err := g.catalog.ByID(templateID)
	if err != nil {
		if templateID != "" {
			g.logger.Warn("unknown template requested, falling back to random pick",
				slog.String("template_id", templateID),
				slog.Int("index", index))
		}
		tmpl = &g.catalog.Templates[rng.Intn(g.catalog.Len())]
	}

	values := resolveRanges(tmpl.Ranges, rng)

	scenario := &domain.Scenario{
		ID:          uuid.New(),
		TemplateID:  tmpl.ID,
		Title:       tmpl.Title,
		Description: substitute(tmpl.DescriptionTemplate, values),
		Choices:     make([]domain.Choice, len(tmpl.Choices)),
	}

	for i, def := range tmpl.Choices {
		scenario.Choices[i] = domain.Choice{
			ID:          def.ID,
			Text:        substitute(def.TextTemplate, values),
			IsCorrect:   def.IsCorrect,
			Points:      def.Points,
			ScoreImpact: def.ScoreImpact,
			Feedback:    substitute(def.FeedbackTemplate, values),
		}
	}

	return scenario, nil
}

// resolveRanges picks one concrete value per declared placeholder.
// Ranges are iterated in sorted key order so the same seed always produces
// the same values regardless of map iteration order.
func resolveRanges(ranges map[string]domain.ValueRange, rng *rand.Rand) map[string]int {
	if len(ranges) == 0 {
		return nil
	}

	keys := make([]string, 0, len(ranges))
	for k := range ranges {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make(map[string]int, len(ranges))
	for _, k := range keys {
		values[k] = pickValue(ranges[k], rng)
	}
	return values
}

// pickValue selects a value from the range, honoring the step if set.
func pickValue(r domain.ValueRange, rng *rand.Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}

	step := r.Step
	if step <= 0 {
		step = 1
	}

	steps := (r.Max-r.Min)/step + 1
	return r.Min + rng.Intn(steps)*step
}

// substitute replaces every {name} placeholder with its resolved value.
// Unresolved placeholders are left in place so a catalog mistake is visible
// rather than silently blank.
func substitute(text string, values map[string]int) string {
	for name, value := range values {
		text = strings.ReplaceAll(text, "{"+name+"}", strconv.Itoa(value))
	}
	return text
}