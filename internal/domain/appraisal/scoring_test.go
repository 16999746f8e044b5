package appraisal

import (
	"math"
	"testing"

	"appraisal/internal/domain/templates"
)

func ratingItem(id string, weight float64) templates.Item {
	return templates.Item{ID: id, Type: templates.ItemTypeRating, Weight: weight}
}

func TestScoreRatingRange(t *testing.T) {
	items := []templates.Item{ratingItem("r", 10)}

	tests := []struct {
		name      string
		value     string
		wantScore float64
		wantMax   float64
	}{
		{name: "minimum", value: "1", wantScore: 10, wantMax: 50},
		{name: "maximum", value: "5", wantScore: 50, wantMax: 50},
		{name: "middle", value: "3", wantScore: 30, wantMax: 50},
		{name: "zero excluded", value: "0"},
		{name: "six excluded", value: "6"},
		{name: "negative excluded", value: "-2"},
		{name: "non numeric excluded", value: "great"},
		{name: "empty excluded", value: ""},
		{name: "whitespace trimmed", value: " 4 ", wantScore: 40, wantMax: 50},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			score, maxScore := Score(map[string]string{"r": tc.value}, items)
			if score != tc.wantScore || maxScore != tc.wantMax {
				t.Fatalf("got %v/%v, want %v/%v", score, maxScore, tc.wantScore, tc.wantMax)
			}
		})
	}
}

func TestScoreTextAndChoice(t *testing.T) {
	items := []templates.Item{
		{ID: "t", Type: templates.ItemTypeText, Weight: 20},
		{ID: "c", Type: templates.ItemTypeChoice, Weight: 30},
	}

	score, maxScore := Score(map[string]string{"t": "solid work", "c": "option-b"}, items)
	if score != 250 || maxScore != 250 {
		t.Fatalf("answered text/choice should be full marks, got %v/%v", score, maxScore)
	}

	score, maxScore = Score(map[string]string{"t": "   ", "c": ""}, items)
	if score != 0 || maxScore != 0 {
		t.Fatalf("blank responses must contribute nothing, got %v/%v", score, maxScore)
	}
}

func TestScoreMixedTemplate(t *testing.T) {
	// Category A: one rating item weight 60 answered "4".
	// Category B: one text item weight 40 answered "good job".
	items := []templates.Item{
		ratingItem("a1", 60),
		{ID: "b1", Type: templates.ItemTypeText, Weight: 40},
	}
	responses := map[string]string{"a1": "4", "b1": "good job"}

	score, maxScore := Score(responses, items)
	if score != 440 {
		t.Fatalf("expected score 440, got %v", score)
	}
	if maxScore != 500 {
		t.Fatalf("expected maxScore 500, got %v", maxScore)
	}
	if pct := Percentage(score, maxScore); math.Abs(pct-88) > 1e-9 {
		t.Fatalf("expected 88%%, got %v", pct)
	}
}

func TestPercentageZeroMax(t *testing.T) {
	if pct := Percentage(0, 0); pct != 0 {
		t.Fatalf("expected 0 for empty template, got %v", pct)
	}
}

func TestMissingRequired(t *testing.T) {
	items := []templates.Item{
		{ID: "r1", Type: templates.ItemTypeRating, Weight: 50, Required: true},
		{ID: "t1", Type: templates.ItemTypeText, Weight: 30, Required: true},
		{ID: "c1", Type: templates.ItemTypeChoice, Weight: 20},
	}

	missing := MissingRequired(map[string]string{"r1": "3", "t1": "  "}, items)
	if len(missing) != 1 || missing[0] != "t1" {
		t.Fatalf("expected [t1], got %v", missing)
	}

	if missing := MissingRequired(map[string]string{"r1": "3", "t1": "ok"}, items); missing != nil {
		t.Fatalf("expected none missing, got %v", missing)
	}
}
