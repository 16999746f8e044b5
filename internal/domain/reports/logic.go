package reports

import (
	"fmt"
	"sort"

	"appraisal/internal/domain/appraisal"
)

// AppraisalStat is one completed appraisal flattened for aggregation.
type AppraisalStat struct {
	EmployeeID   string  `json:"employeeId"`
	EmployeeName string  `json:"employeeName"`
	Score        float64 `json:"score"`
	MaxScore     float64 `json:"maxScore"`
}

type Dashboard struct {
	PeriodID          string         `json:"reviewPeriodId"`
	AssignmentsTotal  int            `json:"assignmentsTotal"`
	AssignmentsByStat map[string]int `json:"assignmentsByStatus"`
	AppraisalsTotal   int            `json:"appraisalsTotal"`
	CompletionRate    float64        `json:"completionRate"`
	AveragePercentage float64        `json:"averagePercentage"`
}

type Ranking struct {
	Rank              int     `json:"rank"`
	EmployeeID        string  `json:"employeeId"`
	EmployeeName      string  `json:"employeeName"`
	AppraisalCount    int     `json:"appraisalCount"`
	AveragePercentage float64 `json:"averagePercentage"`
}

// BuildDashboard aggregates a period's assignment counts and appraisal stats
// into the numbers the dashboard page renders.
func BuildDashboard(periodID string, assignmentsTotal int, byStatus map[string]int, stats []AppraisalStat) Dashboard {
	d := Dashboard{
		PeriodID:          periodID,
		AssignmentsTotal:  assignmentsTotal,
		AssignmentsByStat: byStatus,
		AppraisalsTotal:   len(stats),
	}
	if d.AssignmentsByStat == nil {
		d.AssignmentsByStat = map[string]int{}
	}
	if assignmentsTotal > 0 {
		d.CompletionRate = float64(byStatus["completed"]) / float64(assignmentsTotal)
	}

	sum := 0.0
	counted := 0
	for _, stat := range stats {
		pct := appraisal.Percentage(stat.Score, stat.MaxScore)
		if stat.MaxScore > 0 {
			sum += pct
			counted++
		}
	}
	if counted > 0 {
		d.AveragePercentage = sum / float64(counted)
	}
	return d
}

// BuildRankings orders employees by their average appraisal percentage,
// descending. Employees with fewer than minAppraisals completed appraisals
// are left out. Ties resolve by name then id so output is stable.
func BuildRankings(stats []AppraisalStat, minAppraisals int) []Ranking {
	if minAppraisals < 1 {
		minAppraisals = 1
	}

	type bucket struct {
		name  string
		sum   float64
		count int
	}
	buckets := map[string]*bucket{}
	for _, stat := range stats {
		if stat.MaxScore <= 0 {
			continue
		}
		b, ok := buckets[stat.EmployeeID]
		if !ok {
			b = &bucket{name: stat.EmployeeName}
			buckets[stat.EmployeeID] = b
		}
		b.sum += appraisal.Percentage(stat.Score, stat.MaxScore)
		b.count++
	}

	var rankings []Ranking
	for id, b := range buckets {
		if b.count < minAppraisals {
			continue
		}
		rankings = append(rankings, Ranking{
			EmployeeID:        id,
			EmployeeName:      b.name,
			AppraisalCount:    b.count,
			AveragePercentage: b.sum / float64(b.count),
		})
	}
	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].AveragePercentage != rankings[j].AveragePercentage {
			return rankings[i].AveragePercentage > rankings[j].AveragePercentage
		}
		if rankings[i].EmployeeName != rankings[j].EmployeeName {
			return rankings[i].EmployeeName < rankings[j].EmployeeName
		}
		return rankings[i].EmployeeID < rankings[j].EmployeeID
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
	}
	return rankings
}

// NarrativeSummary assembles the sentence shown on an employee's period
// summary card.
func NarrativeSummary(employeeName, periodName string, averagePercentage float64, appraisalCount int) string {
	if appraisalCount == 0 {
		return fmt.Sprintf("%s has no completed appraisals in %s yet.", employeeName, periodName)
	}

	band := "needs significant improvement"
	switch {
	case averagePercentage >= 90:
		band = "an outstanding result"
	case averagePercentage >= 75:
		band = "a strong result"
	case averagePercentage >= 60:
		band = "a solid result"
	case averagePercentage >= 40:
		band = "room for improvement"
	}

	plural := "appraisals"
	if appraisalCount == 1 {
		plural = "appraisal"
	}
	return fmt.Sprintf("%s averaged %.1f%% across %d %s in %s, %s.",
		employeeName, averagePercentage, appraisalCount, plural, periodName, band)
}
