package league

import "context"

type Repository interface {
	Upsert(ctx context.Context, record League) error
	// GetByID returns nil without error when the league is unknown.
	GetByID(ctx context.Context, id int64) (*League, error)
	List(ctx context.Context, filter Filter) ([]League, error)
}
