package assignment

import "time"

type Assignment struct {
	ID            string     `json:"id"`
	PeriodID      string     `json:"reviewPeriodId"`
	PeriodName    string     `json:"reviewPeriodName"`
	AppraiserID   string     `json:"appraiserId"`
	AppraiserName string     `json:"appraiserName"`
	EmployeeID    string     `json:"employeeId"`
	EmployeeName  string     `json:"employeeName"`
	TemplateID    string     `json:"templateId"`
	Relationship  string     `json:"relationship"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// Link is a single-use manual assignment addressed by an opaque token.
type Link struct {
	ID           string     `json:"id"`
	Token        string     `json:"token"`
	AssignmentID string     `json:"assignmentId"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	Used         bool       `json:"used"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type Pair struct {
	AppraiserID   string `json:"appraiserId"`
	AppraiserName string `json:"appraiserName"`
	EmployeeID    string `json:"employeeId"`
	EmployeeName  string `json:"employeeName"`
}

// Toggles selects which relationship categories the engine derives.
type Toggles struct {
	LeaderToMember bool `json:"includeLeaderToMember"`
	MemberToLeader bool `json:"includeMemberToLeader"`
	LeaderToLeader bool `json:"includeLeaderToLeader"`
	MemberToMember bool `json:"includeMemberToMember"`
	ExecToLeader   bool `json:"includeExecToLeader"`
	HRToAll        bool `json:"includeHrToAll"`
}

func (t Toggles) enabled(category string) bool {
	switch category {
	case CategoryLeaderToMember:
		return t.LeaderToMember
	case CategoryMemberToLeader:
		return t.MemberToLeader
	case CategoryLeaderToLeader:
		return t.LeaderToLeader
	case CategoryMemberToMember:
		return t.MemberToMember
	case CategoryExecToLeader:
		return t.ExecToLeader
	case CategoryHRToAll:
		return t.HRToAll
	default:
		return false
	}
}

type CategoryPairs struct {
	Category string `json:"category"`
	Enabled  bool   `json:"enabled"`
	Pairs    []Pair `json:"pairs"`
}

// Preview groups candidate pairs by category in CategoryOrder. It is the pure
// output of BuildPreview; nothing is persisted until BuildAssignments.
type Preview struct {
	PeriodID   string          `json:"reviewPeriodId"`
	Categories []CategoryPairs `json:"categories"`
	Warnings   []string        `json:"warnings"`
}

func (p Preview) Category(name string) (CategoryPairs, bool) {
	for _, c := range p.Categories {
		if c.Category == name {
			return c, true
		}
	}
	return CategoryPairs{}, false
}

// TemplateMapping assigns a template id to each relationship category.
type TemplateMapping map[string]string

type ListFilter struct {
	PeriodID    string
	AppraiserID string
	EmployeeID  string
	Status      string
}

type PeriodCounts struct {
	Total     int            `json:"total"`
	ByStatus  map[string]int `json:"byStatus"`
	AutoBuilt int            `json:"autoBuilt"`
}
