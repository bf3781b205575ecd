package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/giladtamam/football-insights-sub001/internal/domain/season"
)

func newBulkSyncService(provider *stubStatsProvider, seasonRepo *stubSeasonRepository) *BulkSyncService {
	refSync := NewReferenceSyncService(
		provider,
		&stubCountryRepository{},
		&stubLeagueRepository{},
		seasonRepo,
		&stubTeamRepository{},
		&stubFixtureRepository{},
		&stubStandingRepository{},
		nil,
	)
	return NewBulkSyncService(refSync, nil, nil)
}

func seededSeasonRepo(years map[int64]int) *stubSeasonRepository {
	repo := &stubSeasonRepository{}
	for leagueID, year := range years {
		_ = repo.Upsert(context.Background(), season.Season{
			ID:       leagueID*10000 + int64(year),
			LeagueID: leagueID,
			Year:     year,
			Current:  true,
		})
	}
	return repo
}

func TestBulkSyncService_Resync_InputValidation(t *testing.T) {
	t.Parallel()

	service := newBulkSyncService(&stubStatsProvider{}, &stubSeasonRepository{})

	cases := []struct {
		name  string
		input ResyncInput
	}{
		{name: "missing sync data", input: ResyncInput{LeagueIDs: []int64{39}, SeasonYear: 2025}},
		{name: "blank sync data entries", input: ResyncInput{LeagueIDs: []int64{39}, SeasonYear: 2025, SyncData: []string{" ", ""}}},
		{name: "unsupported sync data", input: ResyncInput{LeagueIDs: []int64{39}, SeasonYear: 2025, SyncData: []string{"lineups"}}},
		{name: "missing league ids", input: ResyncInput{SeasonYear: 2025, SyncData: []string{"teams"}}},
		{name: "missing season year", input: ResyncInput{LeagueIDs: []int64{39}, SyncData: []string{"teams"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := service.Resync(context.Background(), tc.input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestBulkSyncService_Resync_FansOutPerLeaguePerKind(t *testing.T) {
	t.Parallel()

	provider := &stubStatsProvider{
		teams: []ExternalTeam{{ID: 33, Name: "Manchester United"}, {ID: 40, Name: "Liverpool"}},
		fixtures: []ExternalFixture{
			{ID: 1001, Date: time.Now().Add(48 * time.Hour).UTC(), Status: "NS", HomeTeamName: "Manchester United", AwayTeamName: "Liverpool"},
		},
		standings: []ExternalStanding{{TeamID: 40, TeamName: "Liverpool", Rank: 1, Points: 9}},
	}
	service := newBulkSyncService(provider, seededSeasonRepo(map[int64]int{39: 2025, 40: 2025}))

	result, err := service.Resync(context.Background(), ResyncInput{
		LeagueIDs:  []int64{40, 39, 39},
		SeasonYear: 2025,
		SyncData:   []string{"odds", "teams", "fixtures", "standings", "teams"},
		MaxWorkers: 16,
	})
	if err != nil {
		t.Fatalf("Resync: %v", err)
	}

	if result.LeagueCount != 2 {
		t.Fatalf("LeagueCount = %d, want 2", result.LeagueCount)
	}
	if result.TaskCount != 8 || len(result.Tasks) != 8 {
		t.Fatalf("TaskCount = %d, len(Tasks) = %d, want 8", result.TaskCount, len(result.Tasks))
	}
	if result.WorkerCount != 4 {
		t.Fatalf("WorkerCount = %d, want cap of 4", result.WorkerCount)
	}

	wantOrder := []struct {
		leagueID int64
		kind     string
	}{
		{39, "teams"}, {39, "fixtures"}, {39, "standings"}, {39, "odds"},
		{40, "teams"}, {40, "fixtures"}, {40, "standings"}, {40, "odds"},
	}
	for i, want := range wantOrder {
		row := result.Tasks[i]
		if row.LeagueID != want.leagueID || row.SyncData != want.kind {
			t.Fatalf("task %d = league=%d kind=%s, want league=%d kind=%s", i, row.LeagueID, row.SyncData, want.leagueID, want.kind)
		}
	}

	// Odds sync is not configured for this service, so the odds tasks are
	// reported as skipped rather than failed.
	if result.SuccessCount != 6 || result.SkippedCount != 2 || result.FailedCount != 0 {
		t.Fatalf("counts success=%d skipped=%d failed=%d, want 6/2/0", result.SuccessCount, result.SkippedCount, result.FailedCount)
	}
	for _, row := range result.Tasks {
		if row.SyncData == "odds" && row.Status != resyncStatusSkipped {
			t.Fatalf("odds task for league %d has status %q, want skipped", row.LeagueID, row.Status)
		}
	}
}

func TestBulkSyncService_Resync_EmptyProviderResponseIsSkipped(t *testing.T) {
	t.Parallel()

	service := newBulkSyncService(&stubStatsProvider{}, seededSeasonRepo(map[int64]int{39: 2025}))

	result, err := service.Resync(context.Background(), ResyncInput{
		LeagueIDs:  []int64{39},
		SeasonYear: 2025,
		SyncData:   []string{"teams"},
	})
	if err != nil {
		t.Fatalf("Resync: %v", err)
	}
	if result.SkippedCount != 1 || result.SuccessCount != 0 {
		t.Fatalf("counts success=%d skipped=%d, want 0/1", result.SuccessCount, result.SkippedCount)
	}
	if result.Tasks[0].Message == "" {
		t.Fatal("skipped task should carry a message")
	}
}

func TestBulkSyncService_Resync_ProviderFailureMarksTaskFailed(t *testing.T) {
	t.Parallel()

	provider := &stubStatsProvider{err: errors.New("upstream 500")}
	service := newBulkSyncService(provider, seededSeasonRepo(map[int64]int{39: 2025}))

	result, err := service.Resync(context.Background(), ResyncInput{
		LeagueIDs:  []int64{39},
		SeasonYear: 2025,
		SyncData:   []string{"teams"},
	})
	if err != nil {
		t.Fatalf("Resync: %v", err)
	}
	if result.FailedCount != 1 {
		t.Fatalf("FailedCount = %d, want 1", result.FailedCount)
	}
	if row := result.Tasks[0]; row.Status != resyncStatusFailed || row.Message == "" {
		t.Fatalf("task = %+v, want failed with message", row)
	}
}

func TestNormalizeResyncKinds_DedupesAndOrders(t *testing.T) {
	t.Parallel()

	kinds, requested, err := normalizeResyncKinds([]string{"Odds", "teams", "TEAMS", "fixture", "standings"})
	if err != nil {
		t.Fatalf("normalizeResyncKinds: %v", err)
	}

	want := []resyncDataKind{resyncDataTeams, resyncDataFixtures, resyncDataStandings, resyncDataOdds}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds[%d] = %s, want %s", i, kinds[i], want[i])
		}
	}
	if len(requested) != 4 {
		t.Fatalf("requested = %v, want 4 entries", requested)
	}
}

func TestNormalizeResyncWorkerCount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value, tasks, want int
	}{
		{value: 0, tasks: 8, want: 1},
		{value: -3, tasks: 8, want: 1},
		{value: 2, tasks: 8, want: 2},
		{value: 10, tasks: 8, want: 4},
		{value: 4, tasks: 2, want: 2},
		{value: 4, tasks: 0, want: 1},
	}
	for _, tc := range cases {
		if got := normalizeResyncWorkerCount(tc.value, tc.tasks); got != tc.want {
			t.Fatalf("normalizeResyncWorkerCount(%d, %d) = %d, want %d", tc.value, tc.tasks, got, tc.want)
		}
	}
}
