package postgres

import (
	"context"
	"fmt"

	"github.com/giladtamam/football-insights-sub001/internal/domain/season"
	qb "github.com/giladtamam/football-insights-sub001/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) Upsert(ctx context.Context, record season.Season) error {
	model := seasonInsertModel{
		ID:       record.ID,
		LeagueID: record.LeagueID,
		Year:     record.Year,
		StartsAt: record.StartsAt,
		EndsAt:   record.EndsAt,
		Current:  record.Current,
	}

	query, args, err := qb.InsertModel("seasons", model, `ON CONFLICT (id)
DO UPDATE SET
    league_id = EXCLUDED.league_id,
    year = EXCLUDED.year,
    starts_at = EXCLUDED.starts_at,
    ends_at = EXCLUDED.ends_at,
    current = EXCLUDED.current,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert season query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert season: %w", err)
	}
	return nil
}

func (r *SeasonRepository) ListByLeague(ctx context.Context, leagueID int64) ([]season.Season, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("year").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select seasons: %w", err)
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, seasonFromRow(row))
	}
	return out, nil
}

func (r *SeasonRepository) FindByLeagueYear(ctx context.Context, leagueID int64, year int) (*season.Season, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("year", year),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build find season query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find season: %w", err)
	}

	record := seasonFromRow(row)
	return &record, nil
}

func seasonFromRow(row seasonTableModel) season.Season {
	return season.Season{
		ID:       row.ID,
		LeagueID: row.LeagueID,
		Year:     row.Year,
		StartsAt: row.StartsAt,
		EndsAt:   row.EndsAt,
		Current:  row.Current,
	}
}
