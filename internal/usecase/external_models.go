package usecase

import (
	"context"
	"time"
)

// StatsProvider is the upstream reference-data API seen from the sync
// services. Implemented by external/apifootball.
type StatsProvider interface {
	FetchLeagues(ctx context.Context, countryName string) ([]ExternalLeague, error)
	FetchTeams(ctx context.Context, leagueID int64, seasonYear int) ([]ExternalTeam, error)
	FetchFixtures(ctx context.Context, leagueID int64, seasonYear int) ([]ExternalFixture, error)
	FetchStandings(ctx context.Context, leagueID int64, seasonYear int) ([]ExternalStanding, error)
}

// OddsProvider is the upstream odds API seen from the odds services.
// Implemented by external/oddsapi; the returned bookmaker list already
// includes the synthetic consensus entry.
type OddsProvider interface {
	FetchEvents(ctx context.Context, sportKey string) ([]ExternalOddsEvent, error)
}

type ExternalLeague struct {
	ID          int64
	Name        string
	Type        string
	Logo        string
	CountryName string
	CountryCode string
	CountryFlag string
	Seasons     []ExternalSeason
}

type ExternalSeason struct {
	ID       int64
	Year     int
	StartsAt *time.Time
	EndsAt   *time.Time
	Current  bool
}

type ExternalTeam struct {
	ID      int64
	Name    string
	Code    string
	Country string
	Logo    string
	Founded *int
	Venue   string
}

type ExternalFixture struct {
	ID           int64
	LeagueID     int64
	SeasonYear   int
	Date         time.Time
	Status       string
	HomeTeamID   int64
	AwayTeamID   int64
	HomeTeamName string
	AwayTeamName string
	HomeGoals    *int
	AwayGoals    *int
	Venue        string
	Referee      string
}

type ExternalStanding struct {
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
}

type ExternalOddsEvent struct {
	ID           string
	HomeTeam     string
	AwayTeam     string
	CommenceTime time.Time
	Bookmakers   []ExternalBookmakerOdds
}

type ExternalBookmakerOdds struct {
	Key       string
	Title     string
	Moneyline *ExternalMoneyline
	Totals    *ExternalTotals
}

type ExternalMoneyline struct {
	Home float64
	Draw float64
	Away float64
}

type ExternalTotals struct {
	Over  float64
	Under float64
	Line  float64
}
