package user

import "context"

type Repository interface {
	Create(ctx context.Context, record User) error
	// GetByEmail and GetByID return nil without error when no account exists.
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, record User) error
}
