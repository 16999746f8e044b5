package directory

const (
	LevelChairman  = "chairman"
	LevelExecutive = "executive"
	LevelLeader    = "leader"
	LevelMember    = "member"
	LevelHR        = "hr"

	StatusActive     = "active"
	StatusTerminated = "terminated"
	StatusResigned   = "resigned"

	PeriodTypeQuarter = "quarter"
	PeriodTypeHalf    = "half"
	PeriodTypeAnnual  = "annual"
	PeriodTypeCustom  = "custom"

	PeriodStatusPlanning  = "planning"
	PeriodStatusActive    = "active"
	PeriodStatusCompleted = "completed"
	PeriodStatusArchived  = "archived"
)

var Levels = []string{LevelChairman, LevelExecutive, LevelLeader, LevelMember, LevelHR}

var PeriodTypes = []string{PeriodTypeQuarter, PeriodTypeHalf, PeriodTypeAnnual, PeriodTypeCustom}

var PeriodStatuses = []string{PeriodStatusPlanning, PeriodStatusActive, PeriodStatusCompleted, PeriodStatusArchived}

// NormalizeLevel maps accepted input aliases onto the canonical level set.
// "department-leader" is a legacy alias of "leader".
func NormalizeLevel(level string) string {
	switch level {
	case "department-leader", "department_leader":
		return LevelLeader
	default:
		return level
	}
}
