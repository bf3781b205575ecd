package season

import "context"

type Repository interface {
	Upsert(ctx context.Context, record Season) error
	ListByLeague(ctx context.Context, leagueID int64) ([]Season, error)
	// FindByLeagueYear returns nil without error when the season has not been
	// synced yet; callers turn that into a structured sync failure.
	FindByLeagueYear(ctx context.Context, leagueID int64, year int) (*Season, error)
}
