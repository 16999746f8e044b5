package templates

import "encoding/json"

// templateDoc is the persisted JSON document. Older rows carry a flat
// "questions" array instead of "categories"; Canonicalize migrates those to
// the categories shape exactly once, at read time, so nothing downstream ever
// branches on the legacy layout.
type templateDoc struct {
	Categories []Category `json:"categories"`
	Questions  []Item     `json:"questions"`
}

const legacyCategoryName = "General"

func Canonicalize(raw []byte) ([]Category, error) {
	var doc templateDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	if len(doc.Categories) > 0 {
		return doc.Categories, nil
	}
	if len(doc.Questions) == 0 {
		return nil, nil
	}

	return []Category{{
		ID:    "general",
		Name:  legacyCategoryName,
		Items: doc.Questions,
	}}, nil
}

func MarshalCategories(categories []Category) ([]byte, error) {
	return json.Marshal(templateDoc{Categories: categories})
}
