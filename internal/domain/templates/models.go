package templates

import "time"

type Item struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Weight   float64  `json:"weight"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Template is the reusable weighted question set an appraisal form is
// rendered from. Categories is always the canonical shape in memory; legacy
// flat-question documents are migrated on read (see Canonicalize).
type Template struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	Categories []Category `json:"categories"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (t Template) Items() []Item {
	var items []Item
	for _, category := range t.Categories {
		items = append(items, category.Items...)
	}
	return items
}
