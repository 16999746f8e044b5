package assignment

import "context"

type StoreAPI interface {
	SaveBatch(ctx context.Context, assignments []Assignment) error
	CreateManual(ctx context.Context, a Assignment) (string, error)
	List(ctx context.Context, filter ListFilter) ([]Assignment, error)
	Get(ctx context.Context, id string) (Assignment, error)
	UpdateStatus(ctx context.Context, id, status string) error
	CountsByPeriod(ctx context.Context, periodID string) (PeriodCounts, error)

	CreateLink(ctx context.Context, link Link) (string, error)
	LinkByToken(ctx context.Context, token string) (Link, error)
	MarkLinkUsed(ctx context.Context, linkID string) error
	MarkLinkUsedByAssignment(ctx context.Context, assignmentID string) error
}
