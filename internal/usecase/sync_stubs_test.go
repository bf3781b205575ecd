package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/giladtamam/football-insights-sub001/internal/domain/country"
	"github.com/giladtamam/football-insights-sub001/internal/domain/fixture"
	"github.com/giladtamam/football-insights-sub001/internal/domain/league"
	"github.com/giladtamam/football-insights-sub001/internal/domain/odds"
	"github.com/giladtamam/football-insights-sub001/internal/domain/season"
	"github.com/giladtamam/football-insights-sub001/internal/domain/standing"
	"github.com/giladtamam/football-insights-sub001/internal/domain/team"
)

type stubStatsProvider struct {
	leagues   []ExternalLeague
	teams     []ExternalTeam
	fixtures  []ExternalFixture
	standings []ExternalStanding
	err       error
}

func (p *stubStatsProvider) FetchLeagues(context.Context, string) ([]ExternalLeague, error) {
	return p.leagues, p.err
}

func (p *stubStatsProvider) FetchTeams(context.Context, int64, int) ([]ExternalTeam, error) {
	return p.teams, p.err
}

func (p *stubStatsProvider) FetchFixtures(context.Context, int64, int) ([]ExternalFixture, error) {
	return p.fixtures, p.err
}

func (p *stubStatsProvider) FetchStandings(context.Context, int64, int) ([]ExternalStanding, error) {
	return p.standings, p.err
}

type stubOddsProvider struct {
	events []ExternalOddsEvent
	err    error
}

func (p *stubOddsProvider) FetchEvents(context.Context, string) ([]ExternalOddsEvent, error) {
	return p.events, p.err
}

type stubCountryRepository struct {
	byID map[int64]country.Country
}

func (r *stubCountryRepository) Upsert(_ context.Context, record country.Country) error {
	if r.byID == nil {
		r.byID = map[int64]country.Country{}
	}
	r.byID[record.ID] = record
	return nil
}

func (r *stubCountryRepository) List(context.Context) ([]country.Country, error) {
	out := make([]country.Country, 0, len(r.byID))
	for _, item := range r.byID {
		out = append(out, item)
	}
	return out, nil
}

type stubLeagueRepository struct {
	byID map[int64]league.League
}

func (r *stubLeagueRepository) Upsert(_ context.Context, record league.League) error {
	if r.byID == nil {
		r.byID = map[int64]league.League{}
	}
	r.byID[record.ID] = record
	return nil
}

func (r *stubLeagueRepository) GetByID(_ context.Context, id int64) (*league.League, error) {
	record, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (r *stubLeagueRepository) List(context.Context, league.Filter) ([]league.League, error) {
	out := make([]league.League, 0, len(r.byID))
	for _, item := range r.byID {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubSeasonRepository struct {
	byID map[int64]season.Season
}

func (r *stubSeasonRepository) Upsert(_ context.Context, record season.Season) error {
	if r.byID == nil {
		r.byID = map[int64]season.Season{}
	}
	r.byID[record.ID] = record
	return nil
}

func (r *stubSeasonRepository) ListByLeague(_ context.Context, leagueID int64) ([]season.Season, error) {
	out := make([]season.Season, 0)
	for _, item := range r.byID {
		if item.LeagueID == leagueID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

func (r *stubSeasonRepository) FindByLeagueYear(_ context.Context, leagueID int64, year int) (*season.Season, error) {
	for _, item := range r.byID {
		if item.LeagueID == leagueID && item.Year == year {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}

type stubTeamRepository struct {
	byID map[int64]team.Team
}

func (r *stubTeamRepository) Upsert(_ context.Context, record team.Team) error {
	if r.byID == nil {
		r.byID = map[int64]team.Team{}
	}
	r.byID[record.ID] = record
	return nil
}

func (r *stubTeamRepository) GetByID(_ context.Context, id int64) (*team.Team, error) {
	record, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (r *stubTeamRepository) ListByLeague(_ context.Context, leagueID int64) ([]team.Team, error) {
	out := make([]team.Team, 0)
	for _, item := range r.byID {
		if item.LeagueID == leagueID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubFixtureRepository struct {
	byID map[int64]fixture.Fixture
}

func (r *stubFixtureRepository) Upsert(_ context.Context, record fixture.Fixture) error {
	if r.byID == nil {
		r.byID = map[int64]fixture.Fixture{}
	}
	r.byID[record.ID] = record
	return nil
}

func (r *stubFixtureRepository) GetByID(_ context.Context, id int64) (*fixture.Fixture, error) {
	record, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (r *stubFixtureRepository) List(_ context.Context, filter fixture.Filter) ([]fixture.Fixture, error) {
	out := make([]fixture.Fixture, 0)
	for _, item := range r.byID {
		if filter.LeagueID > 0 && item.LeagueID != filter.LeagueID {
			continue
		}
		if filter.Bucket != "" && fixture.Bucket(item.Status) != filter.Bucket {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubStandingRepository struct {
	rows map[string]standing.Standing
}

func standingStubKey(seasonID, teamID int64) string {
	return fmt.Sprintf("%d:%d", seasonID, teamID)
}

func (r *stubStandingRepository) Upsert(_ context.Context, record standing.Standing) error {
	if r.rows == nil {
		r.rows = map[string]standing.Standing{}
	}
	r.rows[standingStubKey(record.SeasonID, record.TeamID)] = record
	return nil
}

func (r *stubStandingRepository) ListBySeason(_ context.Context, seasonID int64) ([]standing.Standing, error) {
	out := make([]standing.Standing, 0)
	for _, item := range r.rows {
		if item.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out, nil
}

type stubSnapshotRepository struct {
	nextID int64
	rows   []odds.Snapshot
}

func (r *stubSnapshotRepository) Insert(_ context.Context, record odds.Snapshot) (int64, error) {
	r.nextID++
	record.ID = r.nextID
	r.rows = append(r.rows, record)
	return record.ID, nil
}

func (r *stubSnapshotRepository) ListByFixture(_ context.Context, fixtureID int64) ([]odds.Snapshot, error) {
	out := make([]odds.Snapshot, 0)
	for _, item := range r.rows {
		if item.FixtureID == fixtureID {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CapturedAt.Before(out[j].CapturedAt) })
	return out, nil
}

func (r *stubSnapshotRepository) LatestPerMarket(_ context.Context, fixtureID int64) ([]odds.Snapshot, error) {
	latest := map[string]odds.Snapshot{}
	for _, item := range r.rows {
		if item.FixtureID != fixtureID {
			continue
		}
		key := item.Bookmaker + "|" + item.Market
		current, ok := latest[key]
		if !ok || item.CapturedAt.After(current.CapturedAt) ||
			(item.CapturedAt.Equal(current.CapturedAt) && item.ID > current.ID) {
			latest[key] = item
		}
	}

	out := make([]odds.Snapshot, 0, len(latest))
	for _, item := range latest {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubSnapshotRepository) MarkClosing(_ context.Context, ids []int64) error {
	wanted := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	for i := range r.rows {
		if _, ok := wanted[r.rows[i].ID]; ok {
			r.rows[i].IsClosing = true
		}
	}
	return nil
}

func upcomingFixture(id, leagueID int64, home, away string) fixture.Fixture {
	return fixture.Fixture{
		ID:           id,
		LeagueID:     leagueID,
		SeasonYear:   2025,
		Date:         time.Now().Add(24 * time.Hour).UTC(),
		Status:       "NS",
		HomeTeamName: home,
		AwayTeamName: away,
	}
}
