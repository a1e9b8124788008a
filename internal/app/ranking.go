package app

import (
	"sort"

	"fitfinder-quiz-service/internal/domain"
)

// Rank produces the deterministic total order over the catalog: score
// descending, ties broken by catalog position (first-listed wins). Entries
// are seeded from dataset order and sorted stably, so the tie-break never
// depends on score-map iteration order.
func Rank(session *Session, dataset domain.Dataset) []domain.RankedShoe {
	scores := session.Scores()
	ranked := make([]domain.RankedShoe, 0, len(dataset.Shoes))
	for _, shoe := range dataset.Shoes {
		ranked = append(ranked, domain.RankedShoe{Shoe: shoe, Score: scores[shoe.ID]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// SelectResults splits a ranking into the recommended shoe (rank 0) and up to
// two similar alternatives (ranks 1-2). Pure function of the ranked slice.
func SelectResults(ranked []domain.RankedShoe) domain.Results {
	results := domain.Results{Similar: []domain.RankedShoe{}}
	if len(ranked) == 0 {
		return results
	}
	recommended := ranked[0]
	results.Recommended = &recommended

	end := len(ranked)
	if end > 3 {
		end = 3
	}
	results.Similar = append(results.Similar, ranked[1:end]...)
	return results
}
