package odds

import "context"

type SnapshotRepository interface {
	// Insert persists a new snapshot and returns its storage ID. IsClosing is
	// always false at creation.
	Insert(ctx context.Context, snapshot Snapshot) (int64, error)
	// ListByFixture returns snapshots ordered by capture time ascending.
	ListByFixture(ctx context.Context, fixtureID int64) ([]Snapshot, error)
	// LatestPerMarket returns the most recent snapshot per distinct
	// (bookmaker, market) pair of the fixture.
	LatestPerMarket(ctx context.Context, fixtureID int64) ([]Snapshot, error)
	// MarkClosing sets is_closing on the given rows. Re-marking already
	// closing rows is a no-op in effect.
	MarkClosing(ctx context.Context, ids []int64) error
}
