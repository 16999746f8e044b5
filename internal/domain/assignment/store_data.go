package assignment

import (
	"context"
	"errors"
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

func NewStore(db Querier) *Store {
	return &Store{DB: db}
}

const assignmentColumns = `
  id, period_id, period_name, appraiser_id, appraiser_name,
  employee_id, employee_name, template_id, relationship,
  assignment_type, status, due_date, created_at
`

func (s *Store) SaveBatch(ctx context.Context, assignments []Assignment) error {
	for _, a := range assignments {
		if _, err := s.DB.Exec(ctx, `
      INSERT INTO assignments (id, period_id, period_name, appraiser_id, appraiser_name, employee_id, employee_name, template_id, relationship, assignment_type, status, due_date)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
    `, a.ID, a.PeriodID, a.PeriodName, a.AppraiserID, a.AppraiserName, a.EmployeeID, a.EmployeeName, a.TemplateID, a.Relationship, a.Type, a.Status, a.DueDate); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) CreateManual(ctx context.Context, a Assignment) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO assignments (period_id, period_name, appraiser_id, appraiser_name, employee_id, employee_name, template_id, relationship, assignment_type, status, due_date)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
    RETURNING id
  `, a.PeriodID, a.PeriodName, a.AppraiserID, a.AppraiserName, a.EmployeeID, a.EmployeeName, a.TemplateID, a.Relationship, TypeManual, StatusPending, a.DueDate).Scan(&id)
	return id, err
}

func (s *Store) List(ctx context.Context, filter ListFilter) ([]Assignment, error) {
	query := "SELECT " + assignmentColumns + " FROM assignments WHERE 1=1"
	var args []any
	if filter.PeriodID != "" {
		args = append(args, filter.PeriodID)
		query += fmt.Sprintf(" AND period_id = $%d", len(args))
	}
	if filter.AppraiserID != "" {
		args = append(args, filter.AppraiserID)
		query += fmt.Sprintf(" AND appraiser_id = $%d", len(args))
	}
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Assignment, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+assignmentColumns+" FROM assignments WHERE id = $1", id)
	a, err := scanAssignment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Assignment{}, ErrNotFound
	}
	return a, err
}

func scanAssignment(row pgx.Row) (Assignment, error) {
	var a Assignment
	err := row.Scan(&a.ID, &a.PeriodID, &a.PeriodName, &a.AppraiserID, &a.AppraiserName,
		&a.EmployeeID, &a.EmployeeName, &a.TemplateID, &a.Relationship,
		&a.Type, &a.Status, &a.DueDate, &a.CreatedAt)
	return a, err
}

func (s *Store) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE assignments SET status = $2 WHERE id = $1", id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) CountsByPeriod(ctx context.Context, periodID string) (PeriodCounts, error) {
	counts := PeriodCounts{ByStatus: map[string]int{}}
	rows, err := s.DB.Query(ctx, `
    SELECT status, assignment_type, COUNT(1)
    FROM assignments
    WHERE period_id = $1
    GROUP BY status, assignment_type
  `, periodID)
	if err != nil {
		return counts, err
	}
	defer rows.Close()

	for rows.Next() {
		var status, assignmentType string
		var count int
		if err := rows.Scan(&status, &assignmentType, &count); err != nil {
			return counts, err
		}
		counts.Total += count
		counts.ByStatus[status] += count
		if assignmentType == TypeAuto {
			counts.AutoBuilt += count
		}
	}
	return counts, rows.Err()
}

func (s *Store) CreateLink(ctx context.Context, link Link) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO appraisal_links (token, assignment_id, expires_at)
    VALUES ($1, $2, $3)
    RETURNING id
  `, link.Token, link.AssignmentID, link.ExpiresAt).Scan(&id)
	return id, err
}

func (s *Store) LinkByToken(ctx context.Context, token string) (Link, error) {
	var link Link
	err := s.DB.QueryRow(ctx, `
    SELECT id, token, assignment_id, expires_at, used, created_at
    FROM appraisal_links
    WHERE token = $1
  `, token).Scan(&link.ID, &link.Token, &link.AssignmentID, &link.ExpiresAt, &link.Used, &link.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Link{}, ErrLinkNotFound
	}
	return link, err
}

func (s *Store) MarkLinkUsed(ctx context.Context, linkID string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE appraisal_links SET used = true WHERE id = $1", linkID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrLinkNotFound
	}
	return nil
}

func (s *Store) MarkLinkUsedByAssignment(ctx context.Context, assignmentID string) error {
	_, err := s.DB.Exec(ctx, "UPDATE appraisal_links SET used = true WHERE assignment_id = $1", assignmentID)
	return err
}
