package reports

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Store struct {
	DB Querier
}

// StatsByPeriod returns one row per completed appraisal in the period,
// joined to the appraisee's name so aggregations can render without a
// second lookup.
func (s *Store) StatsByPeriod(ctx context.Context, periodID string) ([]AppraisalStat, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT a.employee_id, e.name, a.score, a.max_score
    FROM appraisals a
    JOIN employees e ON e.id = a.employee_id
    WHERE a.period_id = $1
    ORDER BY a.completed_at
  `, periodID)
	if err != nil {
		return nil, fmt.Errorf("query appraisal stats: %w", err)
	}
	defer rows.Close()

	var stats []AppraisalStat
	for rows.Next() {
		var st AppraisalStat
		if err := rows.Scan(&st.EmployeeID, &st.EmployeeName, &st.Score, &st.MaxScore); err != nil {
			return nil, fmt.Errorf("scan appraisal stat: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// StatsByEmployee returns the employee's completed appraisals in the period.
func (s *Store) StatsByEmployee(ctx context.Context, periodID, employeeID string) ([]AppraisalStat, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT a.employee_id, e.name, a.score, a.max_score
    FROM appraisals a
    JOIN employees e ON e.id = a.employee_id
    WHERE a.period_id = $1 AND a.employee_id = $2
    ORDER BY a.completed_at
  `, periodID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("query employee stats: %w", err)
	}
	defer rows.Close()

	var stats []AppraisalStat
	for rows.Next() {
		var st AppraisalStat
		if err := rows.Scan(&st.EmployeeID, &st.EmployeeName, &st.Score, &st.MaxScore); err != nil {
			return nil, fmt.Errorf("scan employee stat: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}
