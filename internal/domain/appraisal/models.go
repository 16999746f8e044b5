package appraisal

import "time"

// Appraisal is an immutable completed submission. Score and MaxScore are
// computed once at submit time and never recomputed.
type Appraisal struct {
	ID           string            `json:"id"`
	AssignmentID string            `json:"assignmentId"`
	TemplateID   string            `json:"templateId"`
	PeriodID     string            `json:"reviewPeriodId"`
	AppraiserID  string            `json:"appraiserId"`
	EmployeeID   string            `json:"employeeId"`
	Responses    map[string]string `json:"responses"`
	Score        float64           `json:"score"`
	MaxScore     float64           `json:"maxScore"`
	CompletedAt  time.Time         `json:"completedAt"`
}

type ListFilter struct {
	PeriodID    string
	EmployeeID  string
	AppraiserID string
}
