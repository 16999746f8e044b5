package assignment

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"appraisal/internal/domain/directory"
)

// rosterIndex precomputes the lookups the pairing rules need so each rule is
// a single pass over the roster instead of repeated scans.
type rosterIndex struct {
	byID          map[string]directory.Employee
	members       []directory.Employee
	leaders       []directory.Employee
	executives    []directory.Employee
	hr            []directory.Employee
	nonHR         []directory.Employee
	membersByTeam map[string][]directory.Employee
	leadsByTeam   map[string][]directory.Employee
	teamOrder     []string
}

func buildIndex(employees []directory.Employee) rosterIndex {
	idx := rosterIndex{
		byID:          make(map[string]directory.Employee, len(employees)),
		membersByTeam: map[string][]directory.Employee{},
		leadsByTeam:   map[string][]directory.Employee{},
	}
	for _, e := range employees {
		if e.Status != directory.StatusActive {
			continue
		}
		idx.byID[e.ID] = e
		switch e.Level {
		case directory.LevelMember:
			idx.members = append(idx.members, e)
		case directory.LevelLeader:
			idx.leaders = append(idx.leaders, e)
		case directory.LevelExecutive:
			idx.executives = append(idx.executives, e)
		case directory.LevelHR:
			idx.hr = append(idx.hr, e)
		}
		if e.Level != directory.LevelHR {
			idx.nonHR = append(idx.nonHR, e)
		}
		if e.TeamID != "" {
			if e.Level == directory.LevelMember {
				if _, seen := idx.membersByTeam[e.TeamID]; !seen {
					idx.teamOrder = append(idx.teamOrder, e.TeamID)
				}
				idx.membersByTeam[e.TeamID] = append(idx.membersByTeam[e.TeamID], e)
			}
			switch e.Level {
			case directory.LevelLeader, directory.LevelExecutive, directory.LevelHR:
				idx.leadsByTeam[e.TeamID] = append(idx.leadsByTeam[e.TeamID], e)
			}
		}
	}
	return idx
}

// resolveManager returns the appraiser for a member: the reports-to target
// when it resolves to an active employee, otherwise the first active
// leader-class employee on the same team.
func (idx rosterIndex) resolveManager(member directory.Employee) (directory.Employee, bool, bool) {
	unresolvedRef := false
	if member.ManagerID != "" {
		if manager, ok := idx.byID[member.ManagerID]; ok && manager.ID != member.ID {
			return manager, true, false
		}
		unresolvedRef = true
	}
	for _, lead := range idx.leadsByTeam[member.TeamID] {
		if lead.ID != member.ID {
			return lead, true, unresolvedRef
		}
	}
	return directory.Employee{}, false, unresolvedRef
}

func pairOf(appraiser, employee directory.Employee) Pair {
	return Pair{
		AppraiserID:   appraiser.ID,
		AppraiserName: appraiser.Name,
		EmployeeID:    employee.ID,
		EmployeeName:  employee.Name,
	}
}

// BuildPreview derives the candidate appraiser/appraisee pairs for every
// enabled relationship category. It is a pure function of its inputs: no
// persistence, no clock, and identical inputs yield identical output.
func BuildPreview(employees []directory.Employee, periodID string, cfg Toggles) Preview {
	idx := buildIndex(employees)
	preview := Preview{PeriodID: periodID}
	var warnings []string

	var leaderToMember, memberToLeader []Pair
	unresolvedRefs := 0
	unmanaged := 0
	managerHasReport := map[string]bool{}
	if cfg.LeaderToMember || cfg.MemberToLeader {
		for _, member := range idx.members {
			manager, ok, unresolvedRef := idx.resolveManager(member)
			if unresolvedRef {
				unresolvedRefs++
			}
			if !ok {
				unmanaged++
				continue
			}
			managerHasReport[manager.ID] = true
			if cfg.LeaderToMember {
				leaderToMember = append(leaderToMember, pairOf(manager, member))
			}
			if cfg.MemberToLeader {
				memberToLeader = append(memberToLeader, pairOf(member, manager))
			}
		}
		if unresolvedRefs > 0 {
			warnings = append(warnings, fmt.Sprintf("%d employees reference a manager that is missing or inactive", unresolvedRefs))
		}
		if unmanaged > 0 {
			warnings = append(warnings, fmt.Sprintf("%d members have no resolvable manager and were skipped", unmanaged))
		}
		leadersWithoutReports := 0
		for _, leader := range idx.leaders {
			if !managerHasReport[leader.ID] {
				leadersWithoutReports++
			}
		}
		if leadersWithoutReports > 0 {
			warnings = append(warnings, fmt.Sprintf("%d leaders have no reports", leadersWithoutReports))
		}
	}

	var leaderToLeader []Pair
	if cfg.LeaderToLeader {
		for _, appraiser := range idx.leaders {
			for _, other := range idx.leaders {
				if appraiser.ID == other.ID {
					continue
				}
				leaderToLeader = append(leaderToLeader, pairOf(appraiser, other))
			}
		}
	}

	var memberToMember []Pair
	if cfg.MemberToMember {
		teamless := 0
		for _, member := range idx.members {
			if member.TeamID == "" {
				teamless++
			}
		}
		for _, teamID := range idx.teamOrder {
			teamMembers := idx.membersByTeam[teamID]
			for _, appraiser := range teamMembers {
				for _, other := range teamMembers {
					if appraiser.ID == other.ID {
						continue
					}
					memberToMember = append(memberToMember, pairOf(appraiser, other))
				}
			}
		}
		if teamless > 0 {
			warnings = append(warnings, fmt.Sprintf("%d members belong to no team and were excluded from member-to-member", teamless))
		}
	}

	var execToLeader []Pair
	if cfg.ExecToLeader {
		for _, exec := range idx.executives {
			for _, leader := range idx.leaders {
				execToLeader = append(execToLeader, pairOf(exec, leader))
			}
		}
	}

	var hrToAll []Pair
	if cfg.HRToAll {
		if len(idx.hr) == 0 {
			warnings = append(warnings, "hr-to-all is enabled but no active HR employee exists")
		}
		for _, hr := range idx.hr {
			for _, employee := range idx.nonHR {
				hrToAll = append(hrToAll, pairOf(hr, employee))
			}
		}
	}

	pairsByCategory := map[string][]Pair{
		CategoryLeaderToMember: leaderToMember,
		CategoryMemberToLeader: memberToLeader,
		CategoryLeaderToLeader: leaderToLeader,
		CategoryMemberToMember: memberToMember,
		CategoryExecToLeader:   execToLeader,
		CategoryHRToAll:        hrToAll,
	}
	for _, category := range CategoryOrder {
		preview.Categories = append(preview.Categories, CategoryPairs{
			Category: category,
			Enabled:  cfg.enabled(category),
			Pairs:    pairsByCategory[category],
		})
	}
	preview.Warnings = warnings
	return preview
}

// BuildAssignments materializes a preview into assignment records. Every
// enabled category with at least one pair must have a template id in mapping;
// otherwise it fails naming the category and produces nothing. Display names
// are taken from the preview pairs, not re-resolved. The operation is
// additive: re-running it for the same period creates new records.
func BuildAssignments(preview Preview, mapping TemplateMapping, periodID, periodName string, dueDate *time.Time) ([]Assignment, error) {
	for _, category := range preview.Categories {
		if !category.Enabled || len(category.Pairs) == 0 {
			continue
		}
		if mapping[category.Category] == "" {
			return nil, fmt.Errorf("%w: category %s", ErrMissingTemplate, category.Category)
		}
	}

	var out []Assignment
	for _, category := range preview.Categories {
		if !category.Enabled {
			continue
		}
		templateID := mapping[category.Category]
		for _, pair := range category.Pairs {
			out = append(out, Assignment{
				ID:            uuid.NewString(),
				PeriodID:      periodID,
				PeriodName:    periodName,
				AppraiserID:   pair.AppraiserID,
				AppraiserName: pair.AppraiserName,
				EmployeeID:    pair.EmployeeID,
				EmployeeName:  pair.EmployeeName,
				TemplateID:    templateID,
				Relationship:  category.Category,
				Type:          TypeAuto,
				Status:        StatusPending,
				DueDate:       dueDate,
			})
		}
	}
	return out, nil
}
