package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/giladtamam/football-insights-sub001/internal/domain/fixture"
	"github.com/giladtamam/football-insights-sub001/internal/domain/jobscheduler"
	"github.com/giladtamam/football-insights-sub001/internal/domain/league"
	"github.com/giladtamam/football-insights-sub001/internal/platform/logging"
	"go.opentelemetry.io/otel/trace"
)

type JobQueue interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

type noopJobQueue struct{}

func (noopJobQueue) Enqueue(_ context.Context, _ string, _ any, _ time.Duration, _ string) error {
	return nil
}

func NewNoopJobQueue() JobQueue {
	return noopJobQueue{}
}

type JobOrchestratorConfig struct {
	ScheduleInterval time.Duration
	LiveInterval     time.Duration
	PreKickoffLead   time.Duration
}

type JobSyncInput struct {
	LeagueID int64
	Force    bool
}

type JobSyncResult struct {
	Mode             string   `json:"mode"`
	LeagueCount      int      `json:"league_count"`
	LiveLeagueCount  int      `json:"live_league_count"`
	QueuedCount      int      `json:"queued_count"`
	QueuedOperations []string `json:"queued_operations"`
}

// LeagueDataSyncer runs the actual provider sync for one league. Schedule
// sync refreshes reference data; live sync refreshes fixtures and odds and
// sweeps alerts afterwards.
type LeagueDataSyncer interface {
	SyncSchedule(ctx context.Context, league league.League) error
	SyncLive(ctx context.Context, league league.League) error
}

// JobOrchestratorService decides, per league, whether the next sync should
// run on the slow schedule cadence or the fast live cadence, and enqueues
// the follow-up job accordingly. Dispatches are deduplicated by a time-slot
// key so overlapping triggers collapse into one queued job.
type JobOrchestratorService struct {
	leagueRepo   league.Repository
	fixtureRepo  fixture.Repository
	leagueSyncer LeagueDataSyncer
	queue        JobQueue
	dispatchRepo jobscheduler.Repository
	cfg          JobOrchestratorConfig
	logger       *logging.Logger
	now          func() time.Time
}

var dedupUnsafeCharRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func NewJobOrchestratorService(
	leagueRepo league.Repository,
	fixtureRepo fixture.Repository,
	leagueSyncer LeagueDataSyncer,
	queue JobQueue,
	dispatchRepo jobscheduler.Repository,
	cfg JobOrchestratorConfig,
	logger *logging.Logger,
) *JobOrchestratorService {
	if queue == nil {
		queue = NewNoopJobQueue()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.ScheduleInterval <= 0 {
		cfg.ScheduleInterval = 15 * time.Minute
	}
	if cfg.LiveInterval <= 0 {
		cfg.LiveInterval = 5 * time.Minute
	}
	if cfg.PreKickoffLead <= 0 {
		cfg.PreKickoffLead = 15 * time.Minute
	}

	return &JobOrchestratorService{
		leagueRepo:   leagueRepo,
		fixtureRepo:  fixtureRepo,
		leagueSyncer: leagueSyncer,
		queue:        queue,
		dispatchRepo: dispatchRepo,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *JobOrchestratorService) RunScheduleSync(ctx context.Context, input JobSyncInput) (JobSyncResult, error) {
	return s.run(ctx, "schedule", input, false, true)
}

func (s *JobOrchestratorService) RunLiveSync(ctx context.Context, input JobSyncInput) (JobSyncResult, error) {
	return s.run(ctx, "live", input, true, true)
}

func (s *JobOrchestratorService) RunScheduleSyncDirect(ctx context.Context, input JobSyncInput) (JobSyncResult, error) {
	return s.run(ctx, "schedule-direct", input, false, false)
}

// Bootstrap seeds the job chain: one immediate schedule sync per league.
func (s *JobOrchestratorService) Bootstrap(ctx context.Context, input JobSyncInput) (JobSyncResult, error) {
	leagues, err := s.pickLeagues(ctx, input.LeagueID)
	if err != nil {
		return JobSyncResult{}, err
	}

	now := s.now().UTC()
	result := JobSyncResult{
		Mode:             "bootstrap",
		LeagueCount:      len(leagues),
		QueuedOperations: make([]string, 0, len(leagues)),
	}

	for _, item := range leagues {
		if err := s.enqueueSchedule(ctx, item.ID, 0, now); err != nil {
			return JobSyncResult{}, err
		}
		result.QueuedCount++
		result.QueuedOperations = append(result.QueuedOperations, "sync-schedule:"+strconv.FormatInt(item.ID, 10))
	}

	return result, nil
}

func (s *JobOrchestratorService) run(ctx context.Context, mode string, input JobSyncInput, live bool, enqueueNext bool) (JobSyncResult, error) {
	leagues, err := s.pickLeagues(ctx, input.LeagueID)
	if err != nil {
		return JobSyncResult{}, err
	}

	now := s.now().UTC()
	capacity := len(leagues) * 2
	if !enqueueNext {
		capacity = 0
	}
	result := JobSyncResult{
		Mode:             mode,
		LeagueCount:      len(leagues),
		QueuedOperations: make([]string, 0, capacity),
	}

	for _, item := range leagues {
		if s.leagueSyncer != nil {
			if live {
				if err := s.leagueSyncer.SyncLive(ctx, item); err != nil {
					return JobSyncResult{}, fmt.Errorf("sync live data from provider league=%d: %w", item.ID, err)
				}
			} else {
				if err := s.leagueSyncer.SyncSchedule(ctx, item); err != nil {
					return JobSyncResult{}, fmt.Errorf("sync schedule data from provider league=%d: %w", item.ID, err)
				}
			}
		}
		if !enqueueNext {
			continue
		}

		fixtures, err := s.fixtureRepo.List(ctx, fixture.Filter{LeagueID: item.ID})
		if err != nil {
			return JobSyncResult{}, fmt.Errorf("list fixtures for league=%d: %w", item.ID, err)
		}

		hasLive, nearestUpcoming := analyzeFixtures(fixtures, now)
		if hasLive {
			result.LiveLeagueCount++
			if err := s.enqueueLive(ctx, item.ID, s.cfg.LiveInterval, now); err != nil {
				return JobSyncResult{}, err
			}
			result.QueuedCount++
			result.QueuedOperations = append(result.QueuedOperations, "sync-live:"+strconv.FormatInt(item.ID, 10))
		} else if nearestUpcoming != nil {
			liveAt := nearestUpcoming.Add(-s.cfg.PreKickoffLead)
			delay := liveAt.Sub(now)
			if input.Force {
				delay = 0
			} else if delay <= 0 {
				delay = s.cfg.LiveInterval
			}
			if err := s.enqueueLive(ctx, item.ID, delay, now); err != nil {
				return JobSyncResult{}, err
			}
			result.QueuedCount++
			result.QueuedOperations = append(result.QueuedOperations, "sync-live:"+strconv.FormatInt(item.ID, 10))
		}

		scheduleDelay := s.nextScheduleDelay(now, hasLive, nearestUpcoming)
		if err := s.enqueueSchedule(ctx, item.ID, scheduleDelay, now); err != nil {
			return JobSyncResult{}, err
		}
		result.QueuedCount++
		result.QueuedOperations = append(result.QueuedOperations, "sync-schedule:"+strconv.FormatInt(item.ID, 10))
	}

	return result, nil
}

func (s *JobOrchestratorService) pickLeagues(ctx context.Context, leagueID int64) ([]league.League, error) {
	if leagueID <= 0 {
		items, err := s.leagueRepo.List(ctx, league.Filter{})
		if err != nil {
			return nil, fmt.Errorf("list leagues for jobs: %w", err)
		}
		return items, nil
	}

	item, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get league for jobs: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: league=%d", ErrNotFound, leagueID)
	}

	return []league.League{*item}, nil
}

func (s *JobOrchestratorService) enqueueSchedule(ctx context.Context, leagueID int64, delay time.Duration, now time.Time) error {
	return s.enqueueJob(ctx, "sync-schedule", "/v1/internal/jobs/sync-schedule", leagueID, delay, s.cfg.ScheduleInterval, now)
}

func (s *JobOrchestratorService) enqueueLive(ctx context.Context, leagueID int64, delay time.Duration, now time.Time) error {
	return s.enqueueJob(ctx, "sync-live", "/v1/internal/jobs/sync-live", leagueID, delay, s.cfg.LiveInterval, now)
}

func (s *JobOrchestratorService) enqueueJob(ctx context.Context, jobName, jobPath string, leagueID int64, delay, bucket time.Duration, now time.Time) error {
	dedupID := dedupKey(jobName, leagueID, now.Add(delay), bucket)
	payload := map[string]any{
		"league_id":   leagueID,
		"dispatch_id": dedupID,
	}
	if err := s.queue.Enqueue(ctx, jobPath, payload, delay, dedupID); err != nil {
		s.recordDispatchEvent(ctx, jobscheduler.DispatchEvent{
			DispatchID:   dedupID,
			JobName:      jobName,
			JobPath:      jobPath,
			LeagueID:     leagueID,
			Status:       jobscheduler.StatusFailed,
			Payload:      payload,
			ErrorMessage: err.Error(),
			OccurredAt:   now.UTC(),
		})
		return fmt.Errorf("enqueue %s league=%d: %w", jobName, leagueID, err)
	}
	s.recordDispatchEvent(ctx, jobscheduler.DispatchEvent{
		DispatchID: dedupID,
		JobName:    jobName,
		JobPath:    jobPath,
		LeagueID:   leagueID,
		Status:     jobscheduler.StatusSent,
		Payload:    payload,
		OccurredAt: now.UTC(),
	})
	return nil
}

func dedupKey(prefix string, leagueID int64, at time.Time, bucket time.Duration) string {
	if bucket <= 0 {
		bucket = time.Minute
	}
	slot := at.UTC().Truncate(bucket).Format("20060102T150405Z")
	prefix = sanitizeDedupSegment(prefix)
	return prefix + "-" + strconv.FormatInt(leagueID, 10) + "-" + slot
}

func sanitizeDedupSegment(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return dedupUnsafeCharRegex.ReplaceAllString(value, "-")
}

func (s *JobOrchestratorService) recordDispatchEvent(ctx context.Context, event jobscheduler.DispatchEvent) {
	if s.dispatchRepo == nil || strings.TrimSpace(event.DispatchID) == "" {
		return
	}
	traceID, spanID := traceMetaFromContext(ctx)
	event.TraceID = traceID
	event.SpanID = spanID
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now().UTC()
	}
	if err := s.dispatchRepo.UpsertEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "record job dispatch event failed",
			"dispatch_id", event.DispatchID,
			"status", event.Status,
			"error", err,
		)
	}
}

func traceMetaFromContext(ctx context.Context) (string, string) {
	spanContext := trace.SpanFromContext(ctx).SpanContext()
	if !spanContext.IsValid() {
		return "", ""
	}
	return spanContext.TraceID().String(), spanContext.SpanID().String()
}

func analyzeFixtures(items []fixture.Fixture, now time.Time) (bool, *time.Time) {
	var nearestUpcoming *time.Time
	hasLive := false
	for _, item := range items {
		status := fixture.NormalizeStatus(item.Status)
		if fixture.IsLiveStatus(status) {
			hasLive = true
		}

		if item.Date.IsZero() {
			continue
		}
		if item.Date.Before(now) {
			continue
		}
		if fixture.IsFinishedStatus(status) {
			continue
		}
		if nearestUpcoming == nil || item.Date.Before(*nearestUpcoming) {
			next := item.Date
			nearestUpcoming = &next
		}
	}

	return hasLive, nearestUpcoming
}

func (s *JobOrchestratorService) nextScheduleDelay(now time.Time, hasLive bool, nearestUpcoming *time.Time) time.Duration {
	minDelay := time.Minute
	if hasLive {
		return maxDuration(s.cfg.LiveInterval, minDelay)
	}

	if nearestUpcoming != nil {
		liveAt := nearestUpcoming.Add(-s.cfg.PreKickoffLead)
		delay := liveAt.Sub(now)
		if delay <= 0 {
			return maxDuration(s.cfg.LiveInterval, minDelay)
		}
		return maxDuration(delay, minDelay)
	}

	// No upcoming fixture nearby, poll on a relaxed cadence.
	return maxDuration(s.cfg.ScheduleInterval, 6*time.Hour)
}

func maxDuration(left, right time.Duration) time.Duration {
	if left > right {
		return left
	}
	return right
}
