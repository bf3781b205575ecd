package team

import "context"

type Repository interface {
	Upsert(ctx context.Context, record Team) error
	GetByID(ctx context.Context, id int64) (*Team, error)
	ListByLeague(ctx context.Context, leagueID int64) ([]Team, error)
}
