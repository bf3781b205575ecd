package postgres

import (
	"database/sql"
	"time"
)

type fixtureTableModel struct {
	ID           int64         `db:"id"`
	LeagueID     int64         `db:"league_id"`
	SeasonYear   int           `db:"season_year"`
	Date         time.Time     `db:"date"`
	Status       string        `db:"status"`
	HomeTeamID   int64         `db:"home_team_id"`
	AwayTeamID   int64         `db:"away_team_id"`
	HomeTeamName string        `db:"home_team_name"`
	AwayTeamName string        `db:"away_team_name"`
	HomeGoals    sql.NullInt64 `db:"home_goals"`
	AwayGoals    sql.NullInt64 `db:"away_goals"`
	Venue        string        `db:"venue"`
	Referee      string        `db:"referee"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
}

type fixtureInsertModel struct {
	ID           int64     `db:"id"`
	LeagueID     int64     `db:"league_id"`
	SeasonYear   int       `db:"season_year"`
	Date         time.Time `db:"date"`
	Status       string    `db:"status"`
	HomeTeamID   int64     `db:"home_team_id"`
	AwayTeamID   int64     `db:"away_team_id"`
	HomeTeamName string    `db:"home_team_name"`
	AwayTeamName string    `db:"away_team_name"`
	HomeGoals    *int      `db:"home_goals"`
	AwayGoals    *int      `db:"away_goals"`
	Venue        string    `db:"venue"`
	Referee      string    `db:"referee"`
}
