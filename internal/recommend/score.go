package recommend

import (
	"strings"

	"bookrec/internal/catalog"
	"bookrec/pkg/models"
)

// Score computes the similarity between a reference book and a
// candidate:
//
//   - +1 for each reference category tag contained in the candidate's
//     categories string. Substring containment is deliberate (it matches
//     the original scoring behavior): the tag "Fiction" also hits
//     "Science Fiction". Each tag contributes at most 1.
//   - +2 when the authors fields are exactly equal.
//
// Scores are transient per request and never written back onto shared
// catalog state.
func Score(reference, candidate models.Book) int {
	score := 0
	for _, tag := range catalog.Tokenize(reference.Categories) {
		if strings.Contains(candidate.Categories, tag) {
			score++
		}
	}
	if candidate.Authors == reference.Authors {
		score += 2
	}
	return score
}

// MaxScore is the highest score any candidate can reach against the
// given reference: one point per reference tag plus the author bonus.
func MaxScore(reference models.Book) int {
	return len(catalog.Tokenize(reference.Categories)) + 2
}
