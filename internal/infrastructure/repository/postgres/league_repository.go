package postgres

import (
	"context"
	"fmt"

	"github.com/giladtamam/football-insights-sub001/internal/domain/league"
	qb "github.com/giladtamam/football-insights-sub001/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) Upsert(ctx context.Context, record league.League) error {
	model := leagueInsertModel{
		ID:        record.ID,
		CountryID: record.CountryID,
		Name:      record.Name,
		Type:      record.Type,
		Logo:      record.Logo,
	}

	query, args, err := qb.InsertModel("leagues", model, `ON CONFLICT (id)
DO UPDATE SET
    country_id = EXCLUDED.country_id,
    name = EXCLUDED.name,
    type = EXCLUDED.type,
    logo = EXCLUDED.logo,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert league query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert league: %w", err)
	}
	return nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, id int64) (*league.League, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get league by id query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get league by id: %w", err)
	}

	record := leagueFromRow(row)
	return &record, nil
}

func (r *LeagueRepository) List(ctx context.Context, filter league.Filter) ([]league.League, error) {
	conditions := make([]qb.Condition, 0, 2)
	if filter.CountryID != nil {
		conditions = append(conditions, qb.Eq("country_id", *filter.CountryID))
	}
	if filter.Name != nil {
		conditions = append(conditions, qb.Expr("name ILIKE ?", "%"+*filter.Name+"%"))
	}

	query, args, err := qb.Select("*").From("leagues").
		Where(conditions...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueFromRow(row))
	}
	return out, nil
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:        row.ID,
		CountryID: row.CountryID,
		Name:      row.Name,
		Type:      row.Type,
		Logo:      row.Logo,
	}
}
