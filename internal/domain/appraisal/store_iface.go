package appraisal

import "context"

type StoreAPI interface {
	Create(ctx context.Context, a Appraisal) (string, error)
	Get(ctx context.Context, id string) (Appraisal, error)
	List(ctx context.Context, filter ListFilter) ([]Appraisal, error)
}
