package templates

const (
	ItemTypeRating = "rating-1-5"
	ItemTypeText   = "text"
	ItemTypeChoice = "multiple-choice"

	TypeLeaderToMember = "leader-to-member"
	TypeMemberToLeader = "member-to-leader"
	TypeLeaderToLeader = "leader-to-leader"
	TypeMemberToMember = "member-to-member"
	TypeExecToLeader   = "exec-to-leader"
	TypeHRToAll        = "hr-to-all"
)

var ItemTypes = []string{ItemTypeRating, ItemTypeText, ItemTypeChoice}

var TemplateTypes = []string{
	TypeLeaderToMember,
	TypeMemberToLeader,
	TypeLeaderToLeader,
	TypeMemberToMember,
	TypeExecToLeader,
	TypeHRToAll,
}
