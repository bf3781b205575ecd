package postgres

import (
	"context"
	"fmt"

	"github.com/giladtamam/football-insights-sub001/internal/domain/team"
	qb "github.com/giladtamam/football-insights-sub001/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Upsert(ctx context.Context, record team.Team) error {
	model := teamInsertModel{
		ID:       record.ID,
		LeagueID: record.LeagueID,
		Name:     record.Name,
		Code:     record.Code,
		Country:  record.Country,
		Logo:     record.Logo,
		Founded:  record.Founded,
		Venue:    record.Venue,
	}

	query, args, err := qb.InsertModel("teams", model, `ON CONFLICT (id)
DO UPDATE SET
    league_id = EXCLUDED.league_id,
    name = EXCLUDED.name,
    code = EXCLUDED.code,
    country = EXCLUDED.country,
    logo = EXCLUDED.logo,
    founded = EXCLUDED.founded,
    venue = EXCLUDED.venue,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert team: %w", err)
	}
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (*team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get team by id: %w", err)
	}

	record := teamFromRow(row)
	return &record, nil
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID int64) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by league query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by league: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func teamFromRow(row teamTableModel) team.Team {
	record := team.Team{
		ID:       row.ID,
		LeagueID: row.LeagueID,
		Name:     row.Name,
		Code:     row.Code,
		Country:  row.Country,
		Logo:     row.Logo,
		Venue:    row.Venue,
	}
	if row.Founded.Valid {
		founded := int(row.Founded.Int64)
		record.Founded = &founded
	}
	return record
}
