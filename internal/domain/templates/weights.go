package templates

import (
	"fmt"
	"math"
)

// WeightTolerance is the absolute slack allowed on the 100-point weight sum,
// covering float drift from editors that produce values like 33.33 x 3.
const WeightTolerance = 0.01

// ValidateWeights enforces the save-time invariant: the weights of every item
// across all categories must sum to 100 within WeightTolerance. Scoring never
// re-checks this.
func ValidateWeights(categories []Category) error {
	sum := 0.0
	for _, category := range categories {
		for _, item := range category.Items {
			sum += item.Weight
		}
	}
	if math.Abs(sum-100) > WeightTolerance {
		return fmt.Errorf("%w: got %.2f", ErrWeightSum, sum)
	}
	return nil
}

// Validate checks everything required before a template may be persisted.
func Validate(t Template) error {
	valid := false
	for _, tplType := range TemplateTypes {
		if t.Type == tplType {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: %q", ErrInvalidType, t.Type)
	}

	for _, category := range t.Categories {
		for _, item := range category.Items {
			switch item.Type {
			case ItemTypeRating, ItemTypeText, ItemTypeChoice:
			default:
				return fmt.Errorf("%w: item %s has type %q", ErrInvalidItemType, item.ID, item.Type)
			}
		}
	}

	return ValidateWeights(t.Categories)
}
