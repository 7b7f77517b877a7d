package schedule

import (
	"testing"

	"github.com/creditclimb/engine/internal/domain"
)

func makeCatalog(ids ...string) []domain.ScenarioTemplate {
	catalog := make([]domain.ScenarioTemplate, len(ids))
	for i, id := range ids {
		catalog[i] = domain.ScenarioTemplate{ID: id, Title: id}
	}
	return catalog
}

func idsOf(templates []domain.ScenarioTemplate) []string {
	ids := make([]string, len(templates))
	for i, tmpl := range templates {
		ids[i] = tmpl.ID
	}
	return ids
}

func assertOrder(t *testing.T, got []domain.ScenarioTemplate, want ...string) {
	t.Helper()
	gotIDs := idsOf(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("Expected %d templates %v, got %d: %v", len(want), want, len(gotIDs), gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("Expected order %v, got %v", want, gotIDs)
		}
	}
}

func TestNeedScore(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		stat     domain.TemplateStat
		expected int
	}{
		{
			name:     "unseen template gets the unseen score",
			stat:     domain.TemplateStat{},
			expected: params.UnseenScore,
		},
		{
			name:     "attempted but never correct gets the failed score",
			stat:     domain.TemplateStat{TemplateID: "t", Attempts: 3, Correct: 0},
			expected: params.FailedScore,
		},
		{
			name:     "single success counts as mastered",
			stat:     domain.TemplateStat{TemplateID: "t", Attempts: 5, Correct: 1},
			expected: params.MasteredScore,
		},
		{
			name:     "fully correct counts as mastered",
			stat:     domain.TemplateStat{TemplateID: "t", Attempts: 2, Correct: 2},
			expected: params.MasteredScore,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			score := NeedScore(tc.stat, params)

			if score != tc.expected {
				t.Errorf("Expected score %d, got %d", tc.expected, score)
			}
		})
	}
}

func TestNeedScoreOrdering(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	failed := NeedScore(domain.TemplateStat{TemplateID: "t", Attempts: 1}, params)
	unseen := NeedScore(domain.TemplateStat{}, params)
	mastered := NeedScore(domain.TemplateStat{TemplateID: "t", Attempts: 1, Correct: 1}, params)

	if failed <= unseen {
		t.Errorf("Expected failed score %d to outrank unseen score %d", failed, unseen)
	}
	if unseen <= mastered {
		t.Errorf("Expected unseen score %d to outrank mastered score %d", unseen, mastered)
	}
}

func TestSchedule(t *testing.T) {
	t.Parallel()
	catalog := makeCatalog("a", "b", "c", "d", "e")

	t.Run("failed before unseen before mastered", func(t *testing.T) {
		stats := map[string]domain.TemplateStat{
			"a": {TemplateID: "a", Attempts: 2, Correct: 2}, // mastered
			"c": {TemplateID: "c", Attempts: 3, Correct: 0}, // failed
			// b, d, e unseen
		}

		got := Schedule(catalog, stats, 5, nil)
		assertOrder(t, got, "c", "b", "d", "e", "a")
	})

	t.Run("ties keep catalog order", func(t *testing.T) {
		got := Schedule(catalog, map[string]domain.TemplateStat{}, 5, nil)
		assertOrder(t, got, "a", "b", "c", "d", "e")
	})

	t.Run("result is bounded by take", func(t *testing.T) {
		stats := map[string]domain.TemplateStat{
			"e": {TemplateID: "e", Attempts: 1, Correct: 0}, // failed
		}

		got := Schedule(catalog, stats, 2, nil)
		assertOrder(t, got, "e", "a")
	})

	t.Run("take larger than catalog returns whole catalog", func(t *testing.T) {
		got := Schedule(catalog, nil, 50, nil)
		if len(got) != len(catalog) {
			t.Errorf("Expected %d templates, got %d", len(catalog), len(got))
		}
	})

	t.Run("non-positive take falls back to default", func(t *testing.T) {
		got := Schedule(makeCatalog("a", "b", "c", "d", "e", "f", "g"), nil, 0, nil)
		if len(got) != NewDefaultParams().DefaultTake {
			t.Errorf("Expected default take %d, got %d", NewDefaultParams().DefaultTake, len(got))
		}
	})

	t.Run("input catalog is not reordered", func(t *testing.T) {
		stats := map[string]domain.TemplateStat{
			"a": {TemplateID: "a", Attempts: 1, Correct: 1}, // mastered, sorts last
		}

		Schedule(catalog, stats, 5, nil)
		assertOrder(t, catalog, "a", "b", "c", "d", "e")
	})
}

func TestTruncate(t *testing.T) {
	t.Parallel()
	catalog := makeCatalog("a", "b", "c")

	t.Run("keeps catalog order", func(t *testing.T) {
		got := Truncate(catalog, 2, nil)
		assertOrder(t, got, "a", "b")
	})

	t.Run("take larger than catalog returns whole catalog", func(t *testing.T) {
		got := Truncate(catalog, 10, nil)
		assertOrder(t, got, "a", "b", "c")
	})

	t.Run("non-positive take falls back to default", func(t *testing.T) {
		got := Truncate(makeCatalog("a", "b", "c", "d", "e", "f"), -1, nil)
		if len(got) != NewDefaultParams().DefaultTake {
			t.Errorf("Expected default take %d, got %d", NewDefaultParams().DefaultTake, len(got))
		}
	})
}
