package directory

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) ListEmployees(ctx context.Context, activeOnly bool) ([]Employee, error) {
	return s.store.ListEmployees(ctx, activeOnly)
}

func (s *Service) GetEmployee(ctx context.Context, id string) (Employee, error) {
	return s.store.GetEmployee(ctx, id)
}

func (s *Service) CreateEmployee(ctx context.Context, e Employee) (string, error) {
	normalized, err := normalizeEmployee(e)
	if err != nil {
		return "", err
	}
	return s.store.CreateEmployee(ctx, normalized)
}

func (s *Service) UpdateEmployee(ctx context.Context, e Employee) error {
	normalized, err := normalizeEmployee(e)
	if err != nil {
		return err
	}
	normalized.ID = e.ID
	return s.store.UpdateEmployee(ctx, normalized)
}

func normalizeEmployee(e Employee) (Employee, error) {
	e.Name = strings.TrimSpace(e.Name)
	e.Email = strings.ToLower(strings.TrimSpace(e.Email))
	e.Level = NormalizeLevel(strings.ToLower(strings.TrimSpace(e.Level)))

	valid := false
	for _, level := range Levels {
		if e.Level == level {
			valid = true
			break
		}
	}
	if !valid {
		return Employee{}, fmt.Errorf("%w: %q", ErrInvalidLevel, e.Level)
	}

	if e.Status == "" {
		e.Status = StatusActive
	}
	switch e.Status {
	case StatusActive, StatusTerminated, StatusResigned:
	default:
		return Employee{}, fmt.Errorf("%w: %q", ErrInvalidStatus, e.Status)
	}
	return e, nil
}

func (s *Service) ListTeams(ctx context.Context) ([]Team, error) {
	return s.store.ListTeams(ctx)
}

func (s *Service) GetTeam(ctx context.Context, id string) (Team, error) {
	return s.store.GetTeam(ctx, id)
}

func (s *Service) CreateTeam(ctx context.Context, t Team) (string, error) {
	t.Name = strings.TrimSpace(t.Name)
	return s.store.CreateTeam(ctx, t)
}

func (s *Service) UpdateTeam(ctx context.Context, t Team) error {
	t.Name = strings.TrimSpace(t.Name)
	return s.store.UpdateTeam(ctx, t)
}

func (s *Service) GetProfile(ctx context.Context, employeeID string) (Profile, error) {
	return s.store.GetProfile(ctx, employeeID)
}

func (s *Service) UpsertProfile(ctx context.Context, p Profile) error {
	return s.store.UpsertProfile(ctx, p)
}

func (s *Service) ListPeriods(ctx context.Context) ([]ReviewPeriod, error) {
	return s.store.ListPeriods(ctx)
}

func (s *Service) GetPeriod(ctx context.Context, id string) (ReviewPeriod, error) {
	return s.store.GetPeriod(ctx, id)
}

func (s *Service) CreatePeriod(ctx context.Context, p ReviewPeriod) (string, error) {
	if p.Status == "" {
		p.Status = PeriodStatusPlanning
	}
	return s.store.CreatePeriod(ctx, p)
}

func (s *Service) UpdatePeriod(ctx context.Context, p ReviewPeriod) error {
	return s.store.UpdatePeriod(ctx, p)
}
