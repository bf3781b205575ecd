package postgres

import (
	"context"
	"fmt"

	"github.com/giladtamam/football-insights-sub001/internal/domain/fixture"
	qb "github.com/giladtamam/football-insights-sub001/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) Upsert(ctx context.Context, record fixture.Fixture) error {
	model := fixtureInsertModel{
		ID:           record.ID,
		LeagueID:     record.LeagueID,
		SeasonYear:   record.SeasonYear,
		Date:         record.Date.UTC(),
		Status:       fixture.NormalizeStatus(record.Status),
		HomeTeamID:   record.HomeTeamID,
		AwayTeamID:   record.AwayTeamID,
		HomeTeamName: record.HomeTeamName,
		AwayTeamName: record.AwayTeamName,
		HomeGoals:    record.HomeGoals,
		AwayGoals:    record.AwayGoals,
		Venue:        record.Venue,
		Referee:      record.Referee,
	}

	query, args, err := qb.InsertModel("fixtures", model, `ON CONFLICT (id)
DO UPDATE SET
    league_id = EXCLUDED.league_id,
    season_year = EXCLUDED.season_year,
    date = EXCLUDED.date,
    status = EXCLUDED.status,
    home_team_id = EXCLUDED.home_team_id,
    away_team_id = EXCLUDED.away_team_id,
    home_team_name = EXCLUDED.home_team_name,
    away_team_name = EXCLUDED.away_team_name,
    home_goals = EXCLUDED.home_goals,
    away_goals = EXCLUDED.away_goals,
    venue = EXCLUDED.venue,
    referee = EXCLUDED.referee,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert fixture query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert fixture: %w", err)
	}
	return nil
}

func (r *FixtureRepository) GetByID(ctx context.Context, id int64) (*fixture.Fixture, error) {
	query, args, err := qb.Select("*").From("fixtures").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get fixture by id query: %w", err)
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fixture by id: %w", err)
	}

	record := fixtureFromRow(row)
	return &record, nil
}

func (r *FixtureRepository) List(ctx context.Context, filter fixture.Filter) ([]fixture.Fixture, error) {
	conditions := make([]qb.Condition, 0, 5)
	if filter.LeagueID > 0 {
		conditions = append(conditions, qb.Eq("league_id", filter.LeagueID))
	}
	if filter.SeasonYear > 0 {
		conditions = append(conditions, qb.Eq("season_year", filter.SeasonYear))
	}
	if condition, ok := bucketCondition(filter.Bucket); ok {
		conditions = append(conditions, condition)
	}
	if filter.From != nil {
		conditions = append(conditions, qb.Expr("date >= ?", filter.From.UTC()))
	}
	if filter.To != nil {
		conditions = append(conditions, qb.Expr("date <= ?", filter.To.UTC()))
	}

	builder := qb.Select("*").From("fixtures").
		Where(conditions...).
		OrderBy("date", "id")
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		builder = builder.Offset(filter.Offset)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixtures: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixtureFromRow(row))
	}
	return out, nil
}

// bucketCondition maps a status bucket onto the fixed code-membership lists.
// Upcoming is everything outside the live and finished lists.
func bucketCondition(bucket string) (qb.Condition, bool) {
	toAny := func(codes []string) []any {
		out := make([]any, len(codes))
		for i, code := range codes {
			out[i] = code
		}
		return out
	}

	switch bucket {
	case fixture.BucketLive:
		return qb.In("status", toAny(fixture.LiveStatusCodes())), true
	case fixture.BucketFinished:
		return qb.In("status", toAny(fixture.FinishedStatusCodes())), true
	case fixture.BucketUpcoming:
		known := append(fixture.LiveStatusCodes(), fixture.FinishedStatusCodes()...)
		placeholders := ""
		args := make([]any, 0, len(known))
		for i, code := range known {
			if i > 0 {
				placeholders += ", "
			}
			placeholders += "?"
			args = append(args, code)
		}
		return qb.Expr("status NOT IN ("+placeholders+")", args...), true
	default:
		return nil, false
	}
}

func fixtureFromRow(row fixtureTableModel) fixture.Fixture {
	record := fixture.Fixture{
		ID:           row.ID,
		LeagueID:     row.LeagueID,
		SeasonYear:   row.SeasonYear,
		Date:         row.Date,
		Status:       row.Status,
		HomeTeamID:   row.HomeTeamID,
		AwayTeamID:   row.AwayTeamID,
		HomeTeamName: row.HomeTeamName,
		AwayTeamName: row.AwayTeamName,
		Venue:        row.Venue,
		Referee:      row.Referee,
	}
	if row.HomeGoals.Valid {
		goals := int(row.HomeGoals.Int64)
		record.HomeGoals = &goals
	}
	if row.AwayGoals.Valid {
		goals := int(row.AwayGoals.Int64)
		record.AwayGoals = &goals
	}
	return record
}
