package selection

import "context"

type Repository interface {
	Create(ctx context.Context, sel Selection) error
	GetByID(ctx context.Context, userID, id string) (*Selection, error)
	ListByUser(ctx context.Context, userID string) ([]Selection, error)
	Update(ctx context.Context, sel Selection) error
	Delete(ctx context.Context, userID, id string) error
}
