package directory

import "context"

type StoreAPI interface {
	ListEmployees(ctx context.Context, activeOnly bool) ([]Employee, error)
	GetEmployee(ctx context.Context, id string) (Employee, error)
	CreateEmployee(ctx context.Context, e Employee) (string, error)
	UpdateEmployee(ctx context.Context, e Employee) error

	ListTeams(ctx context.Context) ([]Team, error)
	GetTeam(ctx context.Context, id string) (Team, error)
	CreateTeam(ctx context.Context, t Team) (string, error)
	UpdateTeam(ctx context.Context, t Team) error

	GetProfile(ctx context.Context, employeeID string) (Profile, error)
	UpsertProfile(ctx context.Context, p Profile) error

	ListPeriods(ctx context.Context) ([]ReviewPeriod, error)
	GetPeriod(ctx context.Context, id string) (ReviewPeriod, error)
	CreatePeriod(ctx context.Context, p ReviewPeriod) (string, error)
	UpdatePeriod(ctx context.Context, p ReviewPeriod) error
}
