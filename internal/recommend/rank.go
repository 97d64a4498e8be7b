package recommend

import (
	"fmt"
	"sort"

	"bookrec/internal/catalog"
	"bookrec/pkg/models"
)

const (
	// DefaultLimit is the recommended number of results.
	DefaultLimit = 5
	// MaxLimit caps how many results one request may ask for.
	MaxLimit = 20
)

// Recommendation pairs a candidate book with its score against the
// reference and the score normalized to [0, 1]. Callers multiply
// MatchRatio by 100 for percentage display.
type Recommendation struct {
	Book       models.Book `json:"book"`
	Score      int         `json:"score"`
	MatchRatio float64     `json:"match_ratio"`
}

// Rank scores every catalog entry against the reference title and
// returns the top-limit candidates. The reference book itself is never
// scored and never appears in the result. Ties keep catalog order.
//
// Returns catalog.ErrNotFound (wrapped) when the title is absent, and
// an empty slice (not an error) when the catalog holds nothing besides
// the reference.
func Rank(cat *catalog.Catalog, referenceTitle string, limit int) ([]Recommendation, error) {
	reference, ok := cat.ByTitle(referenceTitle)
	if !ok {
		return nil, fmt.Errorf("rank %q: %w", referenceTitle, catalog.ErrNotFound)
	}

	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	maxScore := MaxScore(reference)
	denom := maxScore
	if denom < 1 {
		denom = 1
	}

	var ranked []Recommendation
	for _, b := range cat.Books() {
		if b.Title == reference.Title {
			continue
		}
		s := Score(reference, b)
		ranked = append(ranked, Recommendation{
			Book:       b,
			Score:      s,
			MatchRatio: float64(s) / float64(denom),
		})
	}

	// Stable sort keeps catalog order among equal scores.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
