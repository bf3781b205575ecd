package alert

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, record Alert) error
	ListByUser(ctx context.Context, userID string) ([]Alert, error)
	ListActive(ctx context.Context) ([]Alert, error)
	MarkTriggered(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, userID, id string) error
}
