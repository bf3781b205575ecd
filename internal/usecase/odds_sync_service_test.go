package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/giladtamam/football-insights-sub001/internal/domain/fixture"
	"github.com/giladtamam/football-insights-sub001/internal/domain/odds"
)

func moneylineBook(key string, home, draw, away float64) ExternalBookmakerOdds {
	return ExternalBookmakerOdds{
		Key:       key,
		Title:     key,
		Moneyline: &ExternalMoneyline{Home: home, Draw: draw, Away: away},
	}
}

func TestOddsSyncService_SyncOdds_SnapshotPerBookmakerPerMarket(t *testing.T) {
	t.Parallel()

	fixtureRepo := &stubFixtureRepository{byID: map[int64]fixture.Fixture{
		100: upcomingFixture(100, 39, "Arsenal FC", "Chelsea FC"),
	}}
	snapshotRepo := &stubSnapshotRepository{}
	provider := &stubOddsProvider{events: []ExternalOddsEvent{
		{
			ID:       "evt-1",
			HomeTeam: "Arsenal",
			AwayTeam: "Chelsea",
			Bookmakers: []ExternalBookmakerOdds{
				{
					Key:       "pinnacle",
					Moneyline: &ExternalMoneyline{Home: 2.1, Draw: 3.4, Away: 3.5},
					Totals:    &ExternalTotals{Over: 1.9, Under: 1.95, Line: 2.5},
				},
				moneylineBook("consensus", 2.05, 3.45, 3.6),
			},
		},
		{
			ID:         "evt-unmatched",
			HomeTeam:   "Real Madrid",
			AwayTeam:   "Barcelona",
			Bookmakers: []ExternalBookmakerOdds{moneylineBook("pinnacle", 1.9, 3.6, 4.0)},
		},
	}}

	service := NewOddsSyncService(provider, fixtureRepo, snapshotRepo, map[int64]string{39: "soccer_epl"}, nil)

	result, err := service.SyncOdds(context.Background(), 39, true)
	if err != nil {
		t.Fatalf("SyncOdds error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got message %q", result.Message)
	}
	if result.EventsMatched != 1 {
		t.Fatalf("expected 1 matched event, got %d", result.EventsMatched)
	}
	if result.SnapshotsCreated != 3 {
		t.Fatalf("expected 3 snapshots (1X2 + totals + consensus 1X2), got %d", result.SnapshotsCreated)
	}

	markets := map[string]int{}
	for _, row := range snapshotRepo.rows {
		if row.FixtureID != 100 {
			t.Fatalf("snapshot recorded against fixture %d", row.FixtureID)
		}
		if !row.IsOpening {
			t.Fatalf("expected opening flag on %s %s", row.Bookmaker, row.Market)
		}
		if row.IsClosing {
			t.Fatalf("is_closing must be false at creation")
		}
		markets[row.Bookmaker+"|"+row.Market]++
	}
	if markets["pinnacle|"+odds.MarketMoneyline] != 1 {
		t.Fatalf("missing pinnacle moneyline snapshot: %v", markets)
	}
	if markets["pinnacle|O/U 2.5"] != 1 {
		t.Fatalf("missing pinnacle totals snapshot: %v", markets)
	}
	if markets[odds.BookmakerConsensus+"|"+odds.MarketMoneyline] != 1 {
		t.Fatalf("missing consensus snapshot: %v", markets)
	}
}

func TestOddsSyncService_SyncOdds_RepeatedCallsAccumulate(t *testing.T) {
	t.Parallel()

	fixtureRepo := &stubFixtureRepository{byID: map[int64]fixture.Fixture{
		100: upcomingFixture(100, 39, "Arsenal", "Chelsea"),
	}}
	snapshotRepo := &stubSnapshotRepository{}
	provider := &stubOddsProvider{events: []ExternalOddsEvent{
		{
			ID:         "evt-1",
			HomeTeam:   "Arsenal",
			AwayTeam:   "Chelsea",
			Bookmakers: []ExternalBookmakerOdds{moneylineBook("pinnacle", 2.1, 3.4, 3.5)},
		},
	}}

	service := NewOddsSyncService(provider, fixtureRepo, snapshotRepo, map[int64]string{39: "soccer_epl"}, nil)

	for i := 0; i < 2; i++ {
		if _, err := service.SyncOdds(context.Background(), 39, false); err != nil {
			t.Fatalf("SyncOdds run %d error: %v", i+1, err)
		}
	}

	if len(snapshotRepo.rows) != 2 {
		t.Fatalf("expected identical payloads to accumulate as 2 rows, got %d", len(snapshotRepo.rows))
	}
}

func TestOddsSyncService_MarkClosing_FlipsLatestAndIsIdempotent(t *testing.T) {
	t.Parallel()

	fixtureRepo := &stubFixtureRepository{byID: map[int64]fixture.Fixture{
		100: upcomingFixture(100, 39, "Arsenal", "Chelsea"),
	}}
	snapshotRepo := &stubSnapshotRepository{}

	base := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	price := func(v float64) *float64 { return &v }
	seed := []odds.Snapshot{
		{FixtureID: 100, Bookmaker: "pinnacle", Market: odds.MarketMoneyline, HomePrice: price(2.2), CapturedAt: base},
		{FixtureID: 100, Bookmaker: "pinnacle", Market: odds.MarketMoneyline, HomePrice: price(2.1), CapturedAt: base.Add(time.Hour)},
		{FixtureID: 100, Bookmaker: "bet365", Market: odds.MarketMoneyline, HomePrice: price(2.15), CapturedAt: base},
		{FixtureID: 100, Bookmaker: "pinnacle", Market: "O/U 2.5", OverPrice: price(1.9), CapturedAt: base.Add(30 * time.Minute)},
	}
	for _, row := range seed {
		if _, err := snapshotRepo.Insert(context.Background(), row); err != nil {
			t.Fatalf("seed insert: %v", err)
		}
	}

	service := NewOddsSyncService(&stubOddsProvider{}, fixtureRepo, snapshotRepo, map[int64]string{39: "soccer_epl"}, nil)

	first, err := service.MarkClosing(context.Background(), 100)
	if err != nil {
		t.Fatalf("MarkClosing error: %v", err)
	}
	if !first.Success || first.Records != 3 {
		t.Fatalf("expected 3 closing rows, got %+v", first)
	}

	second, err := service.MarkClosing(context.Background(), 100)
	if err != nil {
		t.Fatalf("second MarkClosing error: %v", err)
	}
	if !second.Success {
		t.Fatalf("second MarkClosing failed: %+v", second)
	}
	if len(snapshotRepo.rows) != len(seed) {
		t.Fatalf("MarkClosing must never create rows: got %d", len(snapshotRepo.rows))
	}

	closing := map[string]bool{}
	for _, row := range snapshotRepo.rows {
		if row.IsClosing {
			closing[row.Bookmaker+"|"+row.Market] = true
		}
	}
	if len(closing) != 3 {
		t.Fatalf("expected closing on 3 distinct (bookmaker, market) pairs, got %v", closing)
	}
	for _, row := range snapshotRepo.rows {
		if row.ID == 1 && row.IsClosing {
			t.Fatal("older pinnacle moneyline snapshot must stay open")
		}
	}
}

func TestOddsSyncService_SyncOdds_UnmappedLeague(t *testing.T) {
	t.Parallel()

	service := NewOddsSyncService(
		&stubOddsProvider{},
		&stubFixtureRepository{},
		&stubSnapshotRepository{},
		map[int64]string{39: "soccer_epl"},
		nil,
	)

	_, err := service.SyncOdds(context.Background(), 999, false)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "999") {
		t.Fatalf("error should name the league: %v", err)
	}
}

func TestOddsSyncService_SyncOdds_FetchFailureIsStructured(t *testing.T) {
	t.Parallel()

	fixtureRepo := &stubFixtureRepository{byID: map[int64]fixture.Fixture{
		100: upcomingFixture(100, 39, "Arsenal", "Chelsea"),
	}}
	provider := &stubOddsProvider{err: errors.New("upstream 503")}

	service := NewOddsSyncService(provider, fixtureRepo, &stubSnapshotRepository{}, map[int64]string{39: "soccer_epl"}, nil)

	result, err := service.SyncOdds(context.Background(), 39, false)
	if err != nil {
		t.Fatalf("provider failure must not surface as error: %v", err)
	}
	if result.Success {
		t.Fatal("expected structured failure")
	}
	if !strings.Contains(result.Message, "upstream 503") {
		t.Fatalf("message should carry the cause: %q", result.Message)
	}
}
