package generation

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/creditclimb/engine/internal/domain"
	"github.com/go-playground/validator/v10"
)

//go:embed catalog.json
var defaultCatalogJSON []byte

// Catalog errors
var (
	// ErrEmptyCatalog is returned when a catalog document contains no templates.
	ErrEmptyCatalog = errors.New("catalog contains no templates")

	// ErrDuplicateTemplateID is returned when two templates share an ID.
	ErrDuplicateTemplateID = errors.New("catalog contains duplicate template IDs")

	// ErrTemplateNotFound is returned when a requested template ID is not in
	// the catalog.
	ErrTemplateNotFound = errors.New("template not found in catalog")
)

// Catalog is the versioned, read-only set of scenario templates available to
// the engine. Template order is pedagogically sequenced and preserved.
type Catalog struct {
	Version   string                    `json:"version"   validate:"required"`
	Templates []domain.ScenarioTemplate `json:"templates" validate:"required,min=1,dive"`

	byID map[string]int
}

// LoadDefaultCatalog parses and validates the catalog embedded in the binary.
func LoadDefaultCatalog() (*Catalog, error) {
	return parseCatalog(defaultCatalogJSON)
}

// LoadCatalogFile parses and validates a catalog from an external JSON file.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return parseCatalog(data)
}

func parseCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	if err := catalog.validate(); err != nil {
		return nil, err
	}

	catalog.byID = make(map[string]int, len(catalog.Templates))
	for i, tmpl := range catalog.Templates {
		if _, exists := catalog.byID[tmpl.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTemplateID, tmpl.ID)
		}
		catalog.byID[tmpl.ID] = i
	}

	return &catalog, nil
}

func (c *Catalog) validate() error {
	if len(c.Templates) == 0 {
		return ErrEmptyCatalog
	}

	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("catalog failed validation: %w", err)
	}

	// Structural rules the tag validators cannot express: exactly one
	// correct choice per template.
	for _, tmpl := range c.Templates {
		if err := tmpl.Validate(); err != nil {
			return fmt.Errorf("template %q invalid: %w", tmpl.ID, err)
		}
	}

	return nil
}

// All returns the catalog templates in declaration order. Callers must treat
// the slice as read-only.
func (c *Catalog) All() []domain.ScenarioTemplate {
	return c.Templates
}

// Len returns the number of templates in the catalog.
func (c *Catalog) Len() int {
	return len(c.Templates)
}

// ByID returns the template with the given ID.
// Returns ErrTemplateNotFound if no such template exists.
func (c *Catalog) ByID(id string) (*domain.ScenarioTemplate, error) {
	idx, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
	}
	return &c.Templates[idx], nil
}
