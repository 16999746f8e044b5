package reports

import (
	"context"

	"appraisal/internal/domain/assignment"
	"appraisal/internal/domain/directory"
)

// DefaultMinAppraisals is the smallest number of completed appraisals an
// employee needs before appearing in rankings.
const DefaultMinAppraisals = 1

type StatsAPI interface {
	StatsByPeriod(ctx context.Context, periodID string) ([]AppraisalStat, error)
	StatsByEmployee(ctx context.Context, periodID, employeeID string) ([]AppraisalStat, error)
}

type CountsAPI interface {
	CountsByPeriod(ctx context.Context, periodID string) (assignment.PeriodCounts, error)
}

type PeriodAPI interface {
	GetPeriod(ctx context.Context, id string) (directory.ReviewPeriod, error)
	GetEmployee(ctx context.Context, id string) (directory.Employee, error)
}

type Service struct {
	stats   StatsAPI
	counts  CountsAPI
	periods PeriodAPI
}

func NewService(stats StatsAPI, counts CountsAPI, periods PeriodAPI) *Service {
	return &Service{stats: stats, counts: counts, periods: periods}
}

func (s *Service) Dashboard(ctx context.Context, periodID string) (Dashboard, error) {
	period, err := s.periods.GetPeriod(ctx, periodID)
	if err != nil {
		return Dashboard{}, err
	}
	counts, err := s.counts.CountsByPeriod(ctx, period.ID)
	if err != nil {
		return Dashboard{}, err
	}
	stats, err := s.stats.StatsByPeriod(ctx, period.ID)
	if err != nil {
		return Dashboard{}, err
	}
	return BuildDashboard(period.ID, counts.Total, counts.ByStatus, stats), nil
}

func (s *Service) Rankings(ctx context.Context, periodID string, minAppraisals int) ([]Ranking, error) {
	period, err := s.periods.GetPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}
	stats, err := s.stats.StatsByPeriod(ctx, period.ID)
	if err != nil {
		return nil, err
	}
	if minAppraisals < 1 {
		minAppraisals = DefaultMinAppraisals
	}
	return BuildRankings(stats, minAppraisals), nil
}

// Summary is the per-employee period report, rendered as JSON or PDF.
type Summary struct {
	EmployeeID        string          `json:"employeeId"`
	EmployeeName      string          `json:"employeeName"`
	PeriodID          string          `json:"reviewPeriodId"`
	PeriodName        string          `json:"reviewPeriodName"`
	AppraisalCount    int             `json:"appraisalCount"`
	AveragePercentage float64         `json:"averagePercentage"`
	Narrative         string          `json:"narrative"`
	Appraisals        []AppraisalStat `json:"appraisals"`
}

func (s *Service) Summary(ctx context.Context, periodID, employeeID string) (Summary, error) {
	period, err := s.periods.GetPeriod(ctx, periodID)
	if err != nil {
		return Summary{}, err
	}
	employee, err := s.periods.GetEmployee(ctx, employeeID)
	if err != nil {
		return Summary{}, err
	}
	stats, err := s.stats.StatsByEmployee(ctx, period.ID, employee.ID)
	if err != nil {
		return Summary{}, err
	}

	rankings := BuildRankings(stats, 1)
	avg := 0.0
	count := 0
	if len(rankings) == 1 {
		avg = rankings[0].AveragePercentage
		count = rankings[0].AppraisalCount
	}
	return Summary{
		EmployeeID:        employee.ID,
		EmployeeName:      employee.Name,
		PeriodID:          period.ID,
		PeriodName:        period.Name,
		AppraisalCount:    count,
		AveragePercentage: avg,
		Narrative:         NarrativeSummary(employee.Name, period.Name, avg, count),
		Appraisals:        stats,
	}, nil
}
