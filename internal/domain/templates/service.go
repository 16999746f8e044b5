package templates

import (
	"context"
	"strings"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context) ([]Template, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Template, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, t Template) (string, error) {
	t.Name = strings.TrimSpace(t.Name)
	if err := Validate(t); err != nil {
		return "", err
	}
	return s.store.Create(ctx, t)
}

func (s *Service) Update(ctx context.Context, t Template) error {
	t.Name = strings.TrimSpace(t.Name)
	if err := Validate(t); err != nil {
		return err
	}
	return s.store.Update(ctx, t)
}
