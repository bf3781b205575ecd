package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/giladtamam/football-insights-sub001/internal/platform/logging"
	"github.com/panjf2000/ants/v2"
)

// ResyncInput selects which leagues and data kinds a bulk sync covers.
type ResyncInput struct {
	LeagueIDs  []int64
	SeasonYear int
	SyncData   []string
	MaxWorkers int
}

type ResyncResult struct {
	LeagueCount   int                `json:"league_count"`
	TaskCount     int                `json:"task_count"`
	SuccessCount  int                `json:"success_count"`
	FailedCount   int                `json:"failed_count"`
	SkippedCount  int                `json:"skipped_count"`
	WorkerCount   int                `json:"worker_count"`
	Tasks         []ResyncTaskResult `json:"tasks"`
	RequestedData []string           `json:"requested_data"`
}

type ResyncTaskResult struct {
	LeagueID   int64  `json:"league_id"`
	SeasonYear int    `json:"season_year"`
	SyncData   string `json:"sync_data"`
	Status     string `json:"status"`
	Records    int    `json:"records"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

type resyncDataKind string

const (
	resyncStatusSuccess = "success"
	resyncStatusFailed  = "failed"
	resyncStatusSkipped = "skipped"

	resyncDataTeams     resyncDataKind = "teams"
	resyncDataFixtures  resyncDataKind = "fixtures"
	resyncDataStandings resyncDataKind = "standings"
	resyncDataOdds      resyncDataKind = "odds"
)

// syncKindOrder keeps teams ahead of fixtures and fixtures ahead of odds so
// a full resync satisfies its own prerequisites within one league.
var syncKindOrder = map[resyncDataKind]int{
	resyncDataTeams:     0,
	resyncDataFixtures:  1,
	resyncDataStandings: 2,
	resyncDataOdds:      3,
}

type resyncTask struct {
	leagueID int64
	kind     resyncDataKind
}

// BulkSyncService fans a league-by-league resync out over a bounded worker
// pool. Each task delegates to the single-league sync services; a task that
// fails never aborts its siblings.
type BulkSyncService struct {
	refSync  *ReferenceSyncService
	oddsSync *OddsSyncService
	logger   *logging.Logger
}

func NewBulkSyncService(refSync *ReferenceSyncService, oddsSync *OddsSyncService, logger *logging.Logger) *BulkSyncService {
	if logger == nil {
		logger = logging.Default()
	}

	return &BulkSyncService{refSync: refSync, oddsSync: oddsSync, logger: logger}
}

func (s *BulkSyncService) Resync(ctx context.Context, input ResyncInput) (ResyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BulkSyncService.Resync")
	defer span.End()

	kinds, rawKinds, err := normalizeResyncKinds(input.SyncData)
	if err != nil {
		return ResyncResult{}, err
	}
	if len(input.LeagueIDs) == 0 {
		return ResyncResult{}, fmt.Errorf("%w: league_ids is required", ErrInvalidInput)
	}
	if input.SeasonYear <= 0 {
		return ResyncResult{}, fmt.Errorf("%w: season_year is required", ErrInvalidInput)
	}

	leagues := dedupeLeagueIDs(input.LeagueIDs)
	tasks := make([]resyncTask, 0, len(leagues)*len(kinds))
	for _, leagueID := range leagues {
		for _, kind := range kinds {
			tasks = append(tasks, resyncTask{leagueID: leagueID, kind: kind})
		}
	}

	workerCount := normalizeResyncWorkerCount(input.MaxWorkers, len(tasks))
	result := ResyncResult{
		LeagueCount:   len(leagues),
		TaskCount:     len(tasks),
		WorkerCount:   workerCount,
		RequestedData: rawKinds,
		Tasks:         make([]ResyncTaskResult, 0, len(tasks)),
	}
	if len(tasks) == 0 {
		return result, nil
	}

	results := make(chan ResyncTaskResult, len(tasks))

	var successCount atomic.Int32
	var failedCount atomic.Int32
	var skippedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return ResyncResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, task := range tasks {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := ResyncTaskResult{
				LeagueID:   task.leagueID,
				SeasonYear: input.SeasonYear,
				SyncData:   string(task.kind),
			}

			records, status, message := s.runResyncTask(ctx, task.leagueID, input.SeasonYear, task.kind)
			row.Records = records
			row.Status = status
			row.Message = message
			row.DurationMs = time.Since(start).Milliseconds()

			switch status {
			case resyncStatusSuccess:
				successCount.Add(1)
			case resyncStatusSkipped:
				skippedCount.Add(1)
			default:
				failedCount.Add(1)
			}

			results <- row
		}); err != nil {
			workers.Done()
			return ResyncResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}

	sort.SliceStable(result.Tasks, func(i, j int) bool {
		if result.Tasks[i].LeagueID != result.Tasks[j].LeagueID {
			return result.Tasks[i].LeagueID < result.Tasks[j].LeagueID
		}
		return syncKindOrder[resyncDataKind(result.Tasks[i].SyncData)] < syncKindOrder[resyncDataKind(result.Tasks[j].SyncData)]
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.SkippedCount = int(skippedCount.Load())
	return result, nil
}

func (s *BulkSyncService) runResyncTask(ctx context.Context, leagueID int64, seasonYear int, kind resyncDataKind) (int, string, string) {
	switch kind {
	case resyncDataTeams:
		return resyncOutcome(s.refSync.SyncTeams(ctx, leagueID, seasonYear))
	case resyncDataFixtures:
		return resyncOutcome(s.refSync.SyncFixtures(ctx, leagueID, seasonYear))
	case resyncDataStandings:
		return resyncOutcome(s.refSync.SyncStandings(ctx, leagueID, seasonYear))
	case resyncDataOdds:
		if s.oddsSync == nil {
			return 0, resyncStatusSkipped, "odds sync is not configured"
		}
		outcome, err := s.oddsSync.SyncOdds(ctx, leagueID, false)
		if err != nil {
			return 0, resyncStatusFailed, err.Error()
		}
		if !outcome.Success {
			return outcome.SnapshotsCreated, resyncStatusFailed, outcome.Message
		}
		if outcome.SnapshotsCreated == 0 {
			return 0, resyncStatusSkipped, "no odds events matched stored fixtures"
		}
		return outcome.SnapshotsCreated, resyncStatusSuccess, ""
	default:
		return 0, resyncStatusSkipped, "unsupported sync_data"
	}
}

func resyncOutcome(outcome SyncResult, err error) (int, string, string) {
	if err != nil {
		return 0, resyncStatusFailed, err.Error()
	}
	if !outcome.Success {
		return outcome.Records, resyncStatusFailed, outcome.Message
	}
	if outcome.Records == 0 {
		return 0, resyncStatusSkipped, "no records returned by provider"
	}
	return outcome.Records, resyncStatusSuccess, ""
}

func normalizeResyncKinds(raw []string) ([]resyncDataKind, []string, error) {
	if len(raw) == 0 {
		return nil, nil, fmt.Errorf("%w: sync_data is required", ErrInvalidInput)
	}

	seen := make(map[resyncDataKind]struct{}, len(raw))
	kinds := make([]resyncDataKind, 0, len(raw))
	requested := make([]string, 0, len(raw))
	for _, item := range raw {
		normalized := normalizeResyncKey(item)
		if normalized == "" {
			continue
		}
		kind, ok := toResyncDataKind(normalized)
		if !ok {
			return nil, nil, fmt.Errorf("%w: unsupported sync_data=%s", ErrInvalidInput, item)
		}
		if _, exists := seen[kind]; exists {
			continue
		}
		seen[kind] = struct{}{}
		kinds = append(kinds, kind)
		requested = append(requested, normalized)
	}
	if len(kinds) == 0 {
		return nil, nil, fmt.Errorf("%w: sync_data is required", ErrInvalidInput)
	}

	sort.SliceStable(kinds, func(i, j int) bool {
		return syncKindOrder[kinds[i]] < syncKindOrder[kinds[j]]
	})
	return kinds, requested, nil
}

func toResyncDataKind(value string) (resyncDataKind, bool) {
	switch value {
	case "team", "teams":
		return resyncDataTeams, true
	case "fixtures", "fixture":
		return resyncDataFixtures, true
	case "standing", "standings":
		return resyncDataStandings, true
	case "odds", "odd":
		return resyncDataOdds, true
	default:
		return "", false
	}
}

func normalizeResyncKey(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return ""
	}
	value = strings.ReplaceAll(value, "-", "_")
	value = strings.ReplaceAll(value, " ", "_")
	return value
}

func normalizeResyncWorkerCount(value int, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 1
	}
	if value > 4 {
		value = 4
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}

func dedupeLeagueIDs(input []int64) []int64 {
	seen := make(map[int64]struct{}, len(input))
	out := make([]int64, 0, len(input))
	for _, id := range input {
		if id <= 0 {
			continue
		}
		if _, exists := seen[id]; exists {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
