package fixture

import "context"

type Repository interface {
	Upsert(ctx context.Context, record Fixture) error
	// GetByID returns nil without error when the fixture is unknown.
	GetByID(ctx context.Context, id int64) (*Fixture, error)
	List(ctx context.Context, filter Filter) ([]Fixture, error)
}
