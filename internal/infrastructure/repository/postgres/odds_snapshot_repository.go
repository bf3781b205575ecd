package postgres

import (
	"context"
	"fmt"

	"github.com/giladtamam/football-insights-sub001/internal/domain/odds"
	qb "github.com/giladtamam/football-insights-sub001/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

// OddsSnapshotRepository stores the odds time series. There is deliberately
// no uniqueness on (fixture, bookmaker, market, captured_at): repeated syncs
// append rows.
type OddsSnapshotRepository struct {
	db *sqlx.DB
}

func NewOddsSnapshotRepository(db *sqlx.DB) *OddsSnapshotRepository {
	return &OddsSnapshotRepository{db: db}
}

func (r *OddsSnapshotRepository) Insert(ctx context.Context, record odds.Snapshot) (int64, error) {
	model := oddsSnapshotInsertModel{
		FixtureID:  record.FixtureID,
		Bookmaker:  record.Bookmaker,
		Market:     record.Market,
		HomePrice:  record.HomePrice,
		DrawPrice:  record.DrawPrice,
		AwayPrice:  record.AwayPrice,
		OverPrice:  record.OverPrice,
		UnderPrice: record.UnderPrice,
		Line:       record.Line,
		IsOpening:  record.IsOpening,
		IsClosing:  record.IsClosing,
		CapturedAt: record.CapturedAt.UTC(),
	}

	query, args, err := qb.InsertModel("odds_snapshots", model, "RETURNING id")
	if err != nil {
		return 0, fmt.Errorf("build insert odds snapshot query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("insert odds snapshot: %w", err)
	}
	return id, nil
}

func (r *OddsSnapshotRepository) ListByFixture(ctx context.Context, fixtureID int64) ([]odds.Snapshot, error) {
	query, args, err := qb.Select("*").From("odds_snapshots").
		Where(qb.Eq("fixture_id", fixtureID)).
		OrderBy("captured_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select odds snapshots query: %w", err)
	}

	var rows []oddsSnapshotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select odds snapshots: %w", err)
	}

	out := make([]odds.Snapshot, 0, len(rows))
	for _, row := range rows {
		out = append(out, snapshotFromRow(row))
	}
	return out, nil
}

// LatestPerMarket picks the most recent row per (bookmaker, market) pair of
// the fixture; ties on captured_at break on the higher id.
func (r *OddsSnapshotRepository) LatestPerMarket(ctx context.Context, fixtureID int64) ([]odds.Snapshot, error) {
	query, args, err := qb.Select("DISTINCT ON (bookmaker, market) *").From("odds_snapshots").
		Where(qb.Eq("fixture_id", fixtureID)).
		OrderBy("bookmaker", "market", "captured_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select latest odds snapshots query: %w", err)
	}

	var rows []oddsSnapshotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select latest odds snapshots: %w", err)
	}

	out := make([]odds.Snapshot, 0, len(rows))
	for _, row := range rows {
		out = append(out, snapshotFromRow(row))
	}
	return out, nil
}

func (r *OddsSnapshotRepository) MarkClosing(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	values := make([]any, len(ids))
	for i, id := range ids {
		values[i] = id
	}

	query, args, err := qb.Update("odds_snapshots").
		Set("is_closing", true).
		Where(qb.In("id", values)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark closing query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark closing snapshots: %w", err)
	}
	return nil
}

func snapshotFromRow(row oddsSnapshotTableModel) odds.Snapshot {
	return odds.Snapshot{
		ID:         row.ID,
		FixtureID:  row.FixtureID,
		Bookmaker:  row.Bookmaker,
		Market:     row.Market,
		HomePrice:  row.HomePrice,
		DrawPrice:  row.DrawPrice,
		AwayPrice:  row.AwayPrice,
		OverPrice:  row.OverPrice,
		UnderPrice: row.UnderPrice,
		Line:       row.Line,
		IsOpening:  row.IsOpening,
		IsClosing:  row.IsClosing,
		CapturedAt: row.CapturedAt,
	}
}
