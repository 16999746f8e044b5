package appraisal

import "errors"

var (
	ErrNotFound         = errors.New("appraisal: not found")
	ErrAlreadySubmitted = errors.New("appraisal: assignment already completed")
	ErrMissingResponses = errors.New("appraisal: required items unanswered")
)
