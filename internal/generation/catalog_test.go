package generation

import (
	"errors"
	"testing"

	"github.com/creditclimb/engine/internal/domain"
)

func TestLoadDefaultCatalog(t *testing.T) {
	t.Parallel()

	catalog, err := LoadDefaultCatalog()
	if err != nil {
		t.Fatalf("Expected embedded catalog to load, got %v", err)
	}

	if catalog.Version == "" {
		t.Error("Expected a catalog version")
	}
	if catalog.Len() == 0 {
		t.Fatal("Expected a non-empty catalog")
	}

	// Every template must be individually valid, with exactly one correct
	// choice.
	for _, tmpl := range catalog.All() {
		if err := tmpl.Validate(); err != nil {
			t.Errorf("Template %q failed validation: %v", tmpl.ID, err)
		}
	}
}

func TestCatalogByID(t *testing.T) {
	t.Parallel()

	catalog, err := LoadDefaultCatalog()
	if err != nil {
		t.Fatalf("Expected embedded catalog to load, got %v", err)
	}

	first := catalog.All()[0]
	tmpl, err := catalog.ByID(first.ID)
	if err != nil {
		t.Fatalf("Expected template %q, got error %v", first.ID, err)
	}
	if tmpl.ID != first.ID {
		t.Errorf("Expected template ID %q, got %q", first.ID, tmpl.ID)
	}

	_, err = catalog.ByID("no-such-template")
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("Expected ErrTemplateNotFound, got %v", err)
	}
}

func TestParseCatalogRejectsEmptyCatalog(t *testing.T) {
	t.Parallel()

	_, err := parseCatalog([]byte(`{"version": "1", "templates": []}`))
	if !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("Expected ErrEmptyCatalog, got %v", err)
	}
}

func TestParseCatalogRejectsDuplicateIDs(t *testing.T) {
	t.Parallel()

	doc := `{
		"version": "1",
		"templates": [
			{
				"id": "dup", "title": "One", "description": "d",
				"choices": [
					{"id": "a", "text": "a", "is_correct": true, "feedback": "f"},
					{"id": "b", "text": "b", "feedback": "f"}
				]
			},
			{
				"id": "dup", "title": "Two", "description": "d",
				"choices": [
					{"id": "a", "text": "a", "is_correct": true, "feedback": "f"},
					{"id": "b", "text": "b", "feedback": "f"}
				]
			}
		]
	}`

	_, err := parseCatalog([]byte(doc))
	if !errors.Is(err, ErrDuplicateTemplateID) {
		t.Errorf("Expected ErrDuplicateTemplateID, got %v", err)
	}
}

func TestParseCatalogRejectsNoCorrectChoice(t *testing.T) {
	t.Parallel()

	doc := `{
		"version": "1",
		"templates": [
			{
				"id": "t", "title": "T", "description": "d",
				"choices": [
					{"id": "a", "text": "a", "feedback": "f"},
					{"id": "b", "text": "b", "feedback": "f"}
				]
			}
		]
	}`

	_, err := parseCatalog([]byte(doc))
	if !errors.Is(err, domain.ErrTemplateCorrectChoices) {
		t.Errorf("Expected ErrTemplateCorrectChoices, got %v", err)
	}
}

func TestParseCatalogRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	_, err := parseCatalog([]byte(`{"version": `))
	if err == nil {
		t.Error("Expected an error for malformed JSON")
	}
}
