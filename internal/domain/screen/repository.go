package screen

import "context"

type Repository interface {
	Create(ctx context.Context, record Screen) error
	GetByID(ctx context.Context, userID, id string) (*Screen, error)
	ListByUser(ctx context.Context, userID string) ([]Screen, error)
	Update(ctx context.Context, record Screen) error
	Delete(ctx context.Context, userID, id string) error
}
