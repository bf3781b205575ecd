package postgres

import (
	"context"
	"fmt"

	"github.com/giladtamam/football-insights-sub001/internal/domain/standing"
	qb "github.com/giladtamam/football-insights-sub001/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) Upsert(ctx context.Context, record standing.Standing) error {
	model := standingInsertModel{
		SeasonID:     record.SeasonID,
		TeamID:       record.TeamID,
		TeamName:     record.TeamName,
		Rank:         record.Rank,
		Points:       record.Points,
		Played:       record.Played,
		Won:          record.Won,
		Draw:         record.Draw,
		Lost:         record.Lost,
		GoalsFor:     record.GoalsFor,
		GoalsAgainst: record.GoalsAgainst,
		GoalsDiff:    record.GoalsDiff,
		GroupName:    record.GroupName,
		Form:         record.Form,
		Description:  record.Description,
	}

	query, args, err := qb.InsertModel("standings", model, `ON CONFLICT (season_id, team_id)
DO UPDATE SET
    team_name = EXCLUDED.team_name,
    rank = EXCLUDED.rank,
    points = EXCLUDED.points,
    played = EXCLUDED.played,
    won = EXCLUDED.won,
    draw = EXCLUDED.draw,
    lost = EXCLUDED.lost,
    goals_for = EXCLUDED.goals_for,
    goals_against = EXCLUDED.goals_against,
    goals_diff = EXCLUDED.goals_diff,
    group_name = EXCLUDED.group_name,
    form = EXCLUDED.form,
    description = EXCLUDED.description,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert standing query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert standing: %w", err)
	}
	return nil
}

func (r *StandingRepository) ListBySeason(ctx context.Context, seasonID int64) ([]standing.Standing, error) {
	query, args, err := qb.Select("*").From("standings").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("group_name", "rank").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select standings query: %w", err)
	}

	var rows []standingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select standings: %w", err)
	}

	out := make([]standing.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, standing.Standing{
			SeasonID:     row.SeasonID,
			TeamID:       row.TeamID,
			TeamName:     row.TeamName,
			Rank:         row.Rank,
			Points:       row.Points,
			Played:       row.Played,
			Won:          row.Won,
			Draw:         row.Draw,
			Lost:         row.Lost,
			GoalsFor:     row.GoalsFor,
			GoalsAgainst: row.GoalsAgainst,
			GoalsDiff:    row.GoalsDiff,
			GroupName:    row.GroupName,
			Form:         row.Form,
			Description:  row.Description,
		})
	}
	return out, nil
}
