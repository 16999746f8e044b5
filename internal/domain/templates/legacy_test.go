package templates

import "testing"

func TestCanonicalizeModernShape(t *testing.T) {
	raw := []byte(`{"categories":[{"id":"c1","name":"Quality","items":[{"id":"i1","type":"rating-1-5","weight":100}]}]}`)

	categories, err := Canonicalize(raw)
	if err != nil {
		t.Fatalf("canonicalize: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "Quality" {
		t.Fatalf("unexpected categories: %+v", categories)
	}
}

func TestCanonicalizeLegacyQuestions(t *testing.T) {
	raw := []byte(`{"questions":[{"id":"q1","type":"text","weight":50},{"id":"q2","type":"rating-1-5","weight":50}]}`)

	categories, err := Canonicalize(raw)
	if err != nil {
		t.Fatalf("canonicalize: %v", err)
	}
	if len(categories) != 1 {
		t.Fatalf("expected one synthetic category, got %d", len(categories))
	}
	if categories[0].Name != legacyCategoryName {
		t.Fatalf("expected %q category, got %q", legacyCategoryName, categories[0].Name)
	}
	if len(categories[0].Items) != 2 || categories[0].Items[1].ID != "q2" {
		t.Fatalf("questions not carried over: %+v", categories[0].Items)
	}
}

func TestCanonicalizePrefersCategoriesOverQuestions(t *testing.T) {
	raw := []byte(`{"categories":[{"id":"c1","items":[{"id":"i1","weight":100}]}],"questions":[{"id":"q1","weight":100}]}`)

	categories, err := Canonicalize(raw)
	if err != nil {
		t.Fatalf("canonicalize: %v", err)
	}
	if len(categories) != 1 || categories[0].ID != "c1" {
		t.Fatalf("expected categories shape to win: %+v", categories)
	}
}

func TestMarshalCategoriesRoundTrip(t *testing.T) {
	in := []Category{{ID: "c1", Name: "General", Items: []Item{{ID: "i1", Type: ItemTypeText, Weight: 100}}}}

	raw, err := MarshalCategories(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out, err := Canonicalize(raw)
	if err != nil {
		t.Fatalf("canonicalize: %v", err)
	}
	if len(out) != 1 || out[0].Items[0].ID != "i1" {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}
