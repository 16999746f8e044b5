package assignment

import "errors"

var (
	ErrNotFound        = errors.New("assignment: not found")
	ErrMissingTemplate = errors.New("assignment: missing template selection")
	ErrLinkNotFound    = errors.New("assignment: link not found")
	ErrLinkUsed        = errors.New("assignment: link already used")
	ErrLinkExpired     = errors.New("assignment: link expired")
	ErrInvalidStatus   = errors.New("assignment: invalid status")
)
