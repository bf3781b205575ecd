package note

import "context"

type Repository interface {
	Create(ctx context.Context, record Note) error
	GetByID(ctx context.Context, userID, id string) (*Note, error)
	ListByUser(ctx context.Context, userID string) ([]Note, error)
	Update(ctx context.Context, record Note) error
	Delete(ctx context.Context, userID, id string) error
}
