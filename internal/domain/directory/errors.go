package directory

import "errors"

var (
	ErrNotFound      = errors.New("directory: not found")
	ErrInvalidLevel  = errors.New("directory: invalid hierarchy level")
	ErrInvalidStatus = errors.New("directory: invalid status")
)
