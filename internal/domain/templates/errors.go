package templates

import "errors"

var (
	ErrNotFound        = errors.New("templates: not found")
	ErrWeightSum       = errors.New("templates: item weights must sum to 100")
	ErrInvalidItemType = errors.New("templates: invalid item type")
	ErrInvalidType     = errors.New("templates: invalid template type")
)
