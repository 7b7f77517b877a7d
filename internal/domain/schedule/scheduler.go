// Package schedule implements the priority scheduler that ranks scenario
// templates by pedagogical need and returns a bounded, ordered playlist.
//
// The model is deliberately simpler than a full spaced-repetition algorithm:
// templates the learner has attempted but never answered correctly come
// first, unseen templates next, and templates with at least one recorded
// success last. Ties preserve catalog order, which is pedagogically
// sequenced.
package schedule

import (
	"sort"

	"github.com/creditclimb/engine/internal/domain"
)

// NeedScore computes the review-priority score for a single template stat.
// A missing stat is treated as unseen.
func NeedScore(stat domain.TemplateStat, params *Params) int {
	if params == nil {
		params = NewDefaultParams()
	}

	switch {
	case stat.Attempts == 0:
		return params.UnseenScore
	case stat.Correct == 0:
		return params.FailedScore
	default:
		return params.MasteredScore
	}
}

// Schedule ranks the catalog by need score, descending, and returns the first
// take templates. The sort is stable: templates with equal scores keep their
// catalog order. The result length is min(take, len(catalog)); take <= 0
// falls back to params.DefaultTake.
//
// Schedule never fails. When historical stats are unavailable the caller
// passes an empty map, which ranks every template as unseen and therefore
// degrades to catalog order.
func Schedule(
	catalog []domain.ScenarioTemplate,
	stats map[string]domain.TemplateStat,
	take int,
	params *Params,
) []domain.ScenarioTemplate {
	if params == nil {
		params = NewDefaultParams()
	}
	if take <= 0 {
		take = params.DefaultTake
	}

	ranked := make([]domain.ScenarioTemplate, len(catalog))
	copy(ranked, catalog)

	sort.SliceStable(ranked, func(i, j int) bool {
		return NeedScore(stats[ranked[i].ID], params) > NeedScore(stats[ranked[j].ID], params)
	})

	if take > len(ranked) {
		take = len(ranked)
	}
	return ranked[:take]
}

// Truncate returns the catalog unmodified, truncated to take. This is the
// fallback ordering used when historical stats cannot be fetched at all: the
// session must never block on a stats failure.
func Truncate(catalog []domain.ScenarioTemplate, take int, params *Params) []domain.ScenarioTemplate {
	if params == nil {
		params = NewDefaultParams()
	}
	if take <= 0 {
		take = params.DefaultTake
	}
	if take > len(catalog) {
		take = len(catalog)
	}

	out := make([]domain.ScenarioTemplate, take)
	copy(out, catalog[:take])
	return out
}
