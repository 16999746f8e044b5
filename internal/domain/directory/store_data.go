package directory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the slice of pgxpool.Pool the store needs; pgxmock satisfies it
// in tests.
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

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func (s *Store) ListEmployees(ctx context.Context, activeOnly bool) ([]Employee, error) {
	query := `
    SELECT id, name, email, role_title, level, COALESCE(manager_id::text, ''), COALESCE(team_id::text, ''), status, created_at, updated_at
    FROM employees
  `
	if activeOnly {
		query += " WHERE status = 'active'"
	}
	query += " ORDER BY name"

	rows, err := s.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.RoleTitle, &e.Level, &e.ManagerID, &e.TeamID, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (s *Store) GetEmployee(ctx context.Context, id string) (Employee, error) {
	var e Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, email, role_title, level, COALESCE(manager_id::text, ''), COALESCE(team_id::text, ''), status, created_at, updated_at
    FROM employees
    WHERE id = $1
  `, id).Scan(&e.ID, &e.Name, &e.Email, &e.RoleTitle, &e.Level, &e.ManagerID, &e.TeamID, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return e, err
}

func (s *Store) CreateEmployee(ctx context.Context, e Employee) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (name, email, role_title, level, manager_id, team_id, status)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING id
  `, e.Name, e.Email, e.RoleTitle, e.Level, nullIfEmpty(e.ManagerID), nullIfEmpty(e.TeamID), e.Status).Scan(&id)
	return id, err
}

func (s *Store) UpdateEmployee(ctx context.Context, e Employee) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET name = $2, email = $3, role_title = $4, level = $5, manager_id = $6, team_id = $7, status = $8, updated_at = now()
    WHERE id = $1
  `, e.ID, e.Name, e.Email, e.RoleTitle, e.Level, nullIfEmpty(e.ManagerID), nullIfEmpty(e.TeamID), e.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListTeams(ctx context.Context) ([]Team, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, COALESCE(description, ''), COALESCE(leader_ids, '{}'), created_at
    FROM teams
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.LeaderIDs, &t.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (s *Store) GetTeam(ctx context.Context, id string) (Team, error) {
	var t Team
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, COALESCE(description, ''), COALESCE(leader_ids, '{}'), created_at
    FROM teams
    WHERE id = $1
  `, id).Scan(&t.ID, &t.Name, &t.Description, &t.LeaderIDs, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Team{}, ErrNotFound
	}
	return t, err
}

func (s *Store) CreateTeam(ctx context.Context, t Team) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO teams (name, description, leader_ids)
    VALUES ($1, $2, $3)
    RETURNING id
  `, t.Name, nullIfEmpty(t.Description), t.LeaderIDs).Scan(&id)
	return id, err
}

func (s *Store) UpdateTeam(ctx context.Context, t Team) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE teams
    SET name = $2, description = $3, leader_ids = $4
    WHERE id = $1
  `, t.ID, nullIfEmpty(t.Description), t.LeaderIDs)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) GetProfile(ctx context.Context, employeeID string) (Profile, error) {
	var p Profile
	err := s.DB.QueryRow(ctx, `
    SELECT employee_id, COALESCE(photo_url, ''), COALESCE(bio, ''), COALESCE(skills, '{}'), updated_at
    FROM employee_profiles
    WHERE employee_id = $1
  `, employeeID).Scan(&p.EmployeeID, &p.PhotoURL, &p.Bio, &p.Skills, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	return p, err
}

func (s *Store) UpsertProfile(ctx context.Context, p Profile) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO employee_profiles (employee_id, photo_url, bio, skills, updated_at)
    VALUES ($1, $2, $3, $4, now())
    ON CONFLICT (employee_id)
    DO UPDATE SET photo_url = EXCLUDED.photo_url, bio = EXCLUDED.bio, skills = EXCLUDED.skills, updated_at = now()
  `, p.EmployeeID, nullIfEmpty(p.PhotoURL), nullIfEmpty(p.Bio), p.Skills)
	return err
}

func (s *Store) ListPeriods(ctx context.Context) ([]ReviewPeriod, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, year, type, start_date, end_date, status, created_at
    FROM review_periods
    ORDER BY start_date DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []ReviewPeriod
	for rows.Next() {
		var p ReviewPeriod
		if err := rows.Scan(&p.ID, &p.Name, &p.Year, &p.Type, &p.StartDate, &p.EndDate, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

func (s *Store) GetPeriod(ctx context.Context, id string) (ReviewPeriod, error) {
	var p ReviewPeriod
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, year, type, start_date, end_date, status, created_at
    FROM review_periods
    WHERE id = $1
  `, id).Scan(&p.ID, &p.Name, &p.Year, &p.Type, &p.StartDate, &p.EndDate, &p.Status, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ReviewPeriod{}, ErrNotFound
	}
	return p, err
}

func (s *Store) CreatePeriod(ctx context.Context, p ReviewPeriod) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO review_periods (name, year, type, start_date, end_date, status)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING id
  `, p.Name, p.Year, p.Type, p.StartDate, p.EndDate, p.Status).Scan(&id)
	return id, err
}

func (s *Store) UpdatePeriod(ctx context.Context, p ReviewPeriod) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE review_periods
    SET name = $2, year = $3, type = $4, start_date = $5, end_date = $6, status = $7
    WHERE id = $1
  `, p.ID, p.Name, p.Year, p.Type, p.StartDate, p.EndDate, p.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
