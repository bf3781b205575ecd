package country

import "context"

type Repository interface {
	Upsert(ctx context.Context, record Country) error
	List(ctx context.Context) ([]Country, error)
}
