package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/giladtamam/football-insights-sub001/internal/domain/season"
)

func englandLeaguesPayload() []ExternalLeague {
	start := time.Date(2025, 8, 9, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 5, 24, 0, 0, 0, 0, time.UTC)
	return []ExternalLeague{
		{
			ID:          39,
			Name:        "Premier League",
			Type:        "League",
			CountryName: "England",
			CountryCode: "GB",
			Seasons: []ExternalSeason{
				{ID: 390000 + 2025, Year: 2025, StartsAt: &start, EndsAt: &end, Current: true},
			},
		},
		{
			ID:          40,
			Name:        "Championship",
			Type:        "League",
			CountryName: "England",
			CountryCode: "GB",
			Seasons: []ExternalSeason{
				{ID: 400000 + 2025, Year: 2025, Current: true},
			},
		},
	}
}

func newReferenceSyncFixture(provider *stubStatsProvider) (*ReferenceSyncService, *stubCountryRepository, *stubLeagueRepository, *stubSeasonRepository, *stubFixtureRepository) {
	countryRepo := &stubCountryRepository{}
	leagueRepo := &stubLeagueRepository{}
	seasonRepo := &stubSeasonRepository{}
	teamRepo := &stubTeamRepository{}
	fixtureRepo := &stubFixtureRepository{}
	standingRepo := &stubStandingRepository{}

	service := NewReferenceSyncService(provider, countryRepo, leagueRepo, seasonRepo, teamRepo, fixtureRepo, standingRepo, nil)
	return service, countryRepo, leagueRepo, seasonRepo, fixtureRepo
}

func TestReferenceSyncService_SyncLeagues_TwiceIsIdempotent(t *testing.T) {
	t.Parallel()

	provider := &stubStatsProvider{leagues: englandLeaguesPayload()}
	service, countryRepo, leagueRepo, seasonRepo, _ := newReferenceSyncFixture(provider)

	for i := 0; i < 2; i++ {
		result, err := service.SyncLeagues(context.Background(), "England")
		if err != nil {
			t.Fatalf("SyncLeagues run %d error: %v", i+1, err)
		}
		if !result.Success {
			t.Fatalf("SyncLeagues run %d failed: %q", i+1, result.Message)
		}
	}

	if len(countryRepo.byID) != 1 {
		t.Fatalf("expected 1 country after repeated sync, got %d", len(countryRepo.byID))
	}
	if len(leagueRepo.byID) != 2 {
		t.Fatalf("expected 2 leagues after repeated sync, got %d", len(leagueRepo.byID))
	}
	if len(seasonRepo.byID) != 2 {
		t.Fatalf("expected 2 seasons after repeated sync, got %d", len(seasonRepo.byID))
	}

	record, ok := leagueRepo.byID[39]
	if !ok {
		t.Fatal("league 39 missing")
	}
	countryRecord, ok := countryRepo.byID[record.CountryID]
	if !ok || countryRecord.Name != "England" {
		t.Fatalf("league 39 points at wrong country: %+v", countryRecord)
	}
}

func TestReferenceSyncService_CountryIDDeterministic(t *testing.T) {
	t.Parallel()

	provider := &stubStatsProvider{leagues: englandLeaguesPayload()}

	serviceA, countryRepoA, _, _, _ := newReferenceSyncFixture(provider)
	serviceB, countryRepoB, _, _, _ := newReferenceSyncFixture(provider)

	if _, err := serviceA.SyncLeagues(context.Background(), "England"); err != nil {
		t.Fatalf("SyncLeagues A: %v", err)
	}
	if _, err := serviceB.SyncLeagues(context.Background(), "England"); err != nil {
		t.Fatalf("SyncLeagues B: %v", err)
	}

	for id := range countryRepoA.byID {
		if _, ok := countryRepoB.byID[id]; !ok {
			t.Fatalf("country id %d differs between independent syncs", id)
		}
	}
}

func TestReferenceSyncService_SyncFixtures_MissingSeason(t *testing.T) {
	t.Parallel()

	provider := &stubStatsProvider{fixtures: []ExternalFixture{{ID: 1, HomeTeamName: "A", AwayTeamName: "B"}}}
	service, _, _, _, fixtureRepo := newReferenceSyncFixture(provider)

	result, err := service.SyncFixtures(context.Background(), 39, 2025)
	if err != nil {
		t.Fatalf("missing season must be a structured failure, not an error: %v", err)
	}
	if result.Success {
		t.Fatal("expected failure when the season is not synced")
	}
	if !strings.Contains(result.Message, "sync leagues first") {
		t.Fatalf("unexpected message: %q", result.Message)
	}
	if len(fixtureRepo.byID) != 0 {
		t.Fatalf("no fixtures may be written without a season, got %d", len(fixtureRepo.byID))
	}
}

func TestReferenceSyncService_SyncFixtures_TwiceIsIdempotent(t *testing.T) {
	t.Parallel()

	goals := 2
	provider := &stubStatsProvider{fixtures: []ExternalFixture{
		{ID: 1001, Date: time.Date(2025, 8, 16, 15, 0, 0, 0, time.UTC), Status: "ft", HomeTeamName: "Arsenal", AwayTeamName: "Chelsea", HomeGoals: &goals},
		{ID: 1002, Date: time.Date(2025, 8, 17, 15, 0, 0, 0, time.UTC), Status: "NS", HomeTeamName: "Liverpool", AwayTeamName: "Everton"},
	}}
	service, _, _, seasonRepo, fixtureRepo := newReferenceSyncFixture(provider)
	if err := seasonRepo.Upsert(context.Background(), season.Season{ID: 392025, LeagueID: 39, Year: 2025, Current: true}); err != nil {
		t.Fatalf("seed season: %v", err)
	}

	for i := 0; i < 2; i++ {
		result, err := service.SyncFixtures(context.Background(), 39, 2025)
		if err != nil {
			t.Fatalf("SyncFixtures run %d error: %v", i+1, err)
		}
		if !result.Success || result.Records != 2 {
			t.Fatalf("SyncFixtures run %d: %+v", i+1, result)
		}
	}

	if len(fixtureRepo.byID) != 2 {
		t.Fatalf("expected 2 fixtures after repeated sync, got %d", len(fixtureRepo.byID))
	}
	if got := fixtureRepo.byID[1001].Status; got != "FT" {
		t.Fatalf("status must be stored normalized, got %q", got)
	}
}

func TestReferenceSyncService_SyncTeams_FetchFailureIsStructured(t *testing.T) {
	t.Parallel()

	provider := &stubStatsProvider{err: errors.New("upstream 500")}
	service, _, _, _, _ := newReferenceSyncFixture(provider)

	result, err := service.SyncTeams(context.Background(), 39, 2025)
	if err != nil {
		t.Fatalf("provider failure must not surface as error: %v", err)
	}
	if result.Success {
		t.Fatal("expected structured failure")
	}
	if !strings.Contains(result.Message, "upstream 500") {
		t.Fatalf("message should carry the cause: %q", result.Message)
	}
}

func TestReferenceSyncService_SyncTeams_RejectsInvalidInput(t *testing.T) {
	t.Parallel()

	service, _, _, _, _ := newReferenceSyncFixture(&stubStatsProvider{})

	if _, err := service.SyncTeams(context.Background(), 0, 2025); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for league id, got %v", err)
	}
	if _, err := service.SyncTeams(context.Background(), 39, 10); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for season year, got %v", err)
	}
}
