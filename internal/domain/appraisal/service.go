package appraisal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"appraisal/internal/domain/assignment"
	"appraisal/internal/domain/templates"
)

type AssignmentAPI interface {
	Get(ctx context.Context, id string) (assignment.Assignment, error)
	UpdateStatus(ctx context.Context, id, status string) error
	ConsumeLink(ctx context.Context, assignmentID string) error
}

type TemplateAPI interface {
	Get(ctx context.Context, id string) (templates.Template, error)
}

type Service struct {
	store       StoreAPI
	assignments AssignmentAPI
	templates   TemplateAPI
	now         func() time.Time
}

func NewService(store StoreAPI, assignments AssignmentAPI, tpl TemplateAPI) *Service {
	return &Service{store: store, assignments: assignments, templates: tpl, now: time.Now}
}

// Submit validates the responses against the assignment's template, scores
// them, persists the immutable appraisal and completes the assignment. Any
// link pointing at the assignment is consumed.
func (s *Service) Submit(ctx context.Context, assignmentID string, responses map[string]string) (Appraisal, error) {
	asgn, err := s.assignments.Get(ctx, assignmentID)
	if err != nil {
		return Appraisal{}, err
	}
	if asgn.Status == assignment.StatusCompleted {
		return Appraisal{}, ErrAlreadySubmitted
	}

	tpl, err := s.templates.Get(ctx, asgn.TemplateID)
	if err != nil {
		return Appraisal{}, err
	}
	items := tpl.Items()

	if missing := MissingRequired(responses, items); len(missing) > 0 {
		return Appraisal{}, fmt.Errorf("%w: %s", ErrMissingResponses, strings.Join(missing, ", "))
	}

	score, maxScore := Score(responses, items)
	result := Appraisal{
		AssignmentID: asgn.ID,
		TemplateID:   tpl.ID,
		PeriodID:     asgn.PeriodID,
		AppraiserID:  asgn.AppraiserID,
		EmployeeID:   asgn.EmployeeID,
		Responses:    responses,
		Score:        score,
		MaxScore:     maxScore,
		CompletedAt:  s.now().UTC(),
	}

	id, err := s.store.Create(ctx, result)
	if err != nil {
		return Appraisal{}, err
	}
	result.ID = id

	if err := s.assignments.UpdateStatus(ctx, asgn.ID, assignment.StatusCompleted); err != nil {
		return Appraisal{}, err
	}
	if err := s.assignments.ConsumeLink(ctx, asgn.ID); err != nil {
		return Appraisal{}, err
	}
	return result, nil
}

func (s *Service) Get(ctx context.Context, id string) (Appraisal, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Appraisal, error) {
	return s.store.List(ctx, filter)
}
