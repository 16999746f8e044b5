package templates

import "context"

type StoreAPI interface {
	List(ctx context.Context) ([]Template, error)
	Get(ctx context.Context, id string) (Template, error)
	Create(ctx context.Context, t Template) (string, error)
	Update(ctx context.Context, t Template) error
}
