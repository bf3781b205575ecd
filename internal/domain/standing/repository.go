package standing

import "context"

type Repository interface {
	Upsert(ctx context.Context, record Standing) error
	ListBySeason(ctx context.Context, seasonID int64) ([]Standing, error)
}
