package assignment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"appraisal/internal/domain/directory"
)

// RosterAPI is the slice of the directory service the engine needs.
type RosterAPI interface {
	ListEmployees(ctx context.Context, activeOnly bool) ([]directory.Employee, error)
	GetEmployee(ctx context.Context, id string) (directory.Employee, error)
	GetPeriod(ctx context.Context, id string) (directory.ReviewPeriod, error)
}

type Service struct {
	store  StoreAPI
	roster RosterAPI
}

func NewService(store StoreAPI, roster RosterAPI) *Service {
	return &Service{store: store, roster: roster}
}

// Preview loads the active roster and derives candidate pairs. Nothing is
// persisted.
func (s *Service) Preview(ctx context.Context, periodID string, cfg Toggles) (Preview, error) {
	if _, err := s.roster.GetPeriod(ctx, periodID); err != nil {
		return Preview{}, err
	}
	employees, err := s.roster.ListEmployees(ctx, true)
	if err != nil {
		return Preview{}, err
	}
	return BuildPreview(employees, periodID, cfg), nil
}

// Build materializes and persists a preview. Persisting is additive: prior
// runs for the same period are never deduplicated here; callers check
// CountsByPeriod first when they want to warn about existing assignments.
func (s *Service) Build(ctx context.Context, preview Preview, mapping TemplateMapping, dueDate *time.Time) ([]Assignment, error) {
	period, err := s.roster.GetPeriod(ctx, preview.PeriodID)
	if err != nil {
		return nil, err
	}
	assignments, err := BuildAssignments(preview, mapping, period.ID, period.Name, dueDate)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveBatch(ctx, assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Assignment, error) {
	return s.store.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id string) (Assignment, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) error {
	valid := false
	for _, candidate := range Statuses {
		if status == candidate {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.store.UpdateStatus(ctx, id, status)
}

func (s *Service) CountsByPeriod(ctx context.Context, periodID string) (PeriodCounts, error) {
	return s.store.CountsByPeriod(ctx, periodID)
}

type LinkRequest struct {
	AppraiserID  string
	EmployeeID   string
	TemplateID   string
	PeriodID     string
	Relationship string
	DueDate      *time.Time
	ExpiresAt    *time.Time
}

// CreateLink creates a manual assignment plus its single-use token.
func (s *Service) CreateLink(ctx context.Context, req LinkRequest) (Link, Assignment, error) {
	period, err := s.roster.GetPeriod(ctx, req.PeriodID)
	if err != nil {
		return Link{}, Assignment{}, err
	}
	appraiser, err := s.roster.GetEmployee(ctx, req.AppraiserID)
	if err != nil {
		return Link{}, Assignment{}, err
	}
	employee, err := s.roster.GetEmployee(ctx, req.EmployeeID)
	if err != nil {
		return Link{}, Assignment{}, err
	}

	a := Assignment{
		PeriodID:      period.ID,
		PeriodName:    period.Name,
		AppraiserID:   appraiser.ID,
		AppraiserName: appraiser.Name,
		EmployeeID:    employee.ID,
		EmployeeName:  employee.Name,
		TemplateID:    req.TemplateID,
		Relationship:  req.Relationship,
		Type:          TypeManual,
		Status:        StatusPending,
		DueDate:       req.DueDate,
	}
	assignmentID, err := s.store.CreateManual(ctx, a)
	if err != nil {
		return Link{}, Assignment{}, err
	}
	a.ID = assignmentID

	link := Link{
		Token:        uuid.NewString(),
		AssignmentID: assignmentID,
		ExpiresAt:    req.ExpiresAt,
	}
	linkID, err := s.store.CreateLink(ctx, link)
	if err != nil {
		return Link{}, Assignment{}, err
	}
	link.ID = linkID
	return link, a, nil
}

// ResolveLink returns the assignment behind a token, rejecting used or
// expired links.
func (s *Service) ResolveLink(ctx context.Context, token string, now time.Time) (Assignment, error) {
	link, err := s.store.LinkByToken(ctx, token)
	if err != nil {
		return Assignment{}, err
	}
	if link.Used {
		return Assignment{}, ErrLinkUsed
	}
	if link.ExpiresAt != nil && now.After(*link.ExpiresAt) {
		return Assignment{}, ErrLinkExpired
	}
	return s.store.Get(ctx, link.AssignmentID)
}

// ConsumeLink marks every link on the assignment used; called on submission.
func (s *Service) ConsumeLink(ctx context.Context, assignmentID string) error {
	return s.store.MarkLinkUsedByAssignment(ctx, assignmentID)
}
