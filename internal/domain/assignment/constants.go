package assignment

import "appraisal/internal/domain/templates"

const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"

	TypeAuto   = "auto"
	TypeManual = "manual"
)

var Statuses = []string{StatusPending, StatusInProgress, StatusCompleted}

// Relationship categories share the template type vocabulary: a template of
// type X renders appraisals for pairs in category X.
const (
	CategoryLeaderToMember = templates.TypeLeaderToMember
	CategoryMemberToLeader = templates.TypeMemberToLeader
	CategoryLeaderToLeader = templates.TypeLeaderToLeader
	CategoryMemberToMember = templates.TypeMemberToMember
	CategoryExecToLeader   = templates.TypeExecToLeader
	CategoryHRToAll        = templates.TypeHRToAll
)

// CategoryOrder fixes the order categories appear in previews and builds.
var CategoryOrder = []string{
	CategoryLeaderToMember,
	CategoryMemberToLeader,
	CategoryLeaderToLeader,
	CategoryMemberToMember,
	CategoryExecToLeader,
	CategoryHRToAll,
}
