package postgres

import "time"

type standingTableModel struct {
	SeasonID     int64     `db:"season_id"`
	TeamID       int64     `db:"team_id"`
	TeamName     string    `db:"team_name"`
	Rank         int       `db:"rank"`
	Points       int       `db:"points"`
	Played       int       `db:"played"`
	Won          int       `db:"won"`
	Draw         int       `db:"draw"`
	Lost         int       `db:"lost"`
	GoalsFor     int       `db:"goals_for"`
	GoalsAgainst int       `db:"goals_against"`
	GoalsDiff    int       `db:"goals_diff"`
	GroupName    string    `db:"group_name"`
	Form         string    `db:"form"`
	Description  string    `db:"description"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type standingInsertModel struct {
	SeasonID     int64  `db:"season_id"`
	TeamID       int64  `db:"team_id"`
	TeamName     string `db:"team_name"`
	Rank         int    `db:"rank"`
	Points       int    `db:"points"`
	Played       int    `db:"played"`
	Won          int    `db:"won"`
	Draw         int    `db:"draw"`
	Lost         int    `db:"lost"`
	GoalsFor     int    `db:"goals_for"`
	GoalsAgainst int    `db:"goals_against"`
	GoalsDiff    int    `db:"goals_diff"`
	GroupName    string `db:"group_name"`
	Form         string `db:"form"`
	Description  string `db:"description"`
}
