package appraisal

import (
	"context"
	"encoding/json"
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

func (s *Store) Create(ctx context.Context, a Appraisal) (string, error) {
	responses, err := json.Marshal(a.Responses)
	if err != nil {
		return "", err
	}
	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO appraisals (assignment_id, template_id, period_id, appraiser_id, employee_id, responses, score, max_score, completed_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    RETURNING id
  `, a.AssignmentID, a.TemplateID, a.PeriodID, a.AppraiserID, a.EmployeeID, responses, a.Score, a.MaxScore, a.CompletedAt).Scan(&id)
	return id, err
}

func (s *Store) Get(ctx context.Context, id string) (Appraisal, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, assignment_id, template_id, period_id, appraiser_id, employee_id, responses, score, max_score, completed_at
    FROM appraisals
    WHERE id = $1
  `, id)
	a, err := scanAppraisal(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Appraisal{}, ErrNotFound
	}
	return a, err
}

func (s *Store) List(ctx context.Context, filter ListFilter) ([]Appraisal, error) {
	query := `
    SELECT id, assignment_id, template_id, period_id, appraiser_id, employee_id, responses, score, max_score, completed_at
    FROM appraisals
    WHERE 1=1
  `
	var args []any
	if filter.PeriodID != "" {
		args = append(args, filter.PeriodID)
		query += fmt.Sprintf(" AND period_id = $%d", len(args))
	}
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if filter.AppraiserID != "" {
		args = append(args, filter.AppraiserID)
		query += fmt.Sprintf(" AND appraiser_id = $%d", len(args))
	}
	query += " ORDER BY completed_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Appraisal
	for rows.Next() {
		a, err := scanAppraisal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAppraisal(row pgx.Row) (Appraisal, error) {
	var a Appraisal
	var responses []byte
	err := row.Scan(&a.ID, &a.AssignmentID, &a.TemplateID, &a.PeriodID, &a.AppraiserID, &a.EmployeeID, &responses, &a.Score, &a.MaxScore, &a.CompletedAt)
	if err != nil {
		return Appraisal{}, err
	}
	if len(responses) > 0 {
		if err := json.Unmarshal(responses, &a.Responses); err != nil {
			return Appraisal{}, err
		}
	}
	return a, nil
}
