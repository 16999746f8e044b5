package notifications

const (
	TypeAppraisalAssigned  = "appraisal_assigned"
	TypeAppraisalSubmitted = "appraisal_submitted"
	TypeDueReminder        = "due_reminder"
	TypePeriodActivated    = "period_activated"
	TypeLinkIssued         = "link_issued"
)
