package favorite

import "context"

type Repository interface {
	Create(ctx context.Context, record Favorite) error
	ListByUser(ctx context.Context, userID string) ([]Favorite, error)
	Delete(ctx context.Context, userID, id string) error
}
