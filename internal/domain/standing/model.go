package standing

import "time"

// Standing is one league-table row, keyed by the (season, team) composite:
// the stats provider assigns standings no ID of their own.
type Standing struct {
	SeasonID     int64
	TeamID       int64
	TeamName     string
	Rank         int
	Points       int
	Played       int
	Won          int
	Draw         int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
	GoalsDiff    int
	GroupName    string
	Form         string
	Description  string
	UpdatedAt    *time.Time
}
