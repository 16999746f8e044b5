package appraisal

import (
	"strconv"
	"strings"

	"appraisal/internal/domain/templates"
)

const ratingCeiling = 5

// Score computes the weighted score of one submission. Rules per item type:
//
//   - rating-1-5: a response parsing to an integer in [1,5] contributes
//     rating x weight to score and 5 x weight to maxScore. Out-of-range or
//     unparseable ratings are excluded from both sums, not zeroed.
//   - text and multiple-choice: any non-empty (post-trim) response counts as
//     full marks, 5 x weight to both sums. Unanswered contributes nothing.
//
// Template weight validity is a save-time invariant; Score never re-checks it.
func Score(responses map[string]string, items []templates.Item) (score, maxScore float64) {
	for _, item := range items {
		raw, ok := responses[item.ID]
		value := strings.TrimSpace(raw)
		if !ok || value == "" {
			continue
		}

		switch item.Type {
		case templates.ItemTypeRating:
			rating, err := strconv.Atoi(value)
			if err != nil || rating < 1 || rating > ratingCeiling {
				continue
			}
			score += float64(rating) * item.Weight
			maxScore += ratingCeiling * item.Weight
		case templates.ItemTypeText, templates.ItemTypeChoice:
			score += ratingCeiling * item.Weight
			maxScore += ratingCeiling * item.Weight
		}
	}
	return score, maxScore
}

// Percentage is 100 x score / maxScore, and 0 when maxScore is 0. An empty
// template cannot be scored meaningfully; it is never a division error.
func Percentage(score, maxScore float64) float64 {
	if maxScore <= 0 {
		return 0
	}
	return 100 * score / maxScore
}

// MissingRequired lists required items with no non-empty response, in item
// order.
func MissingRequired(responses map[string]string, items []templates.Item) []string {
	var missing []string
	for _, item := range items {
		if !item.Required {
			continue
		}
		if strings.TrimSpace(responses[item.ID]) == "" {
			missing = append(missing, item.ID)
		}
	}
	return missing
}
