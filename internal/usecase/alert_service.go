package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/giladtamam/football-insights-sub001/internal/domain/alert"
	"github.com/giladtamam/football-insights-sub001/internal/domain/fixture"
	idgen "github.com/giladtamam/football-insights-sub001/internal/platform/id"
	"github.com/giladtamam/football-insights-sub001/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const alertSweepConcurrency = 8

// AlertEvaluation summarizes one sweep over active alerts.
type AlertEvaluation struct {
	Evaluated int `json:"evaluated"`
	Triggered int `json:"triggered"`
}

// AlertService registers fixture alerts and evaluates them against the
// current fixture state. The sweep runs after fixture sync, not on a clock
// of its own.
type AlertService struct {
	alertRepo   alert.Repository
	fixtureRepo fixture.Repository
	ids         idgen.Generator
	logger      *logging.Logger
}

func NewAlertService(
	alertRepo alert.Repository,
	fixtureRepo fixture.Repository,
	ids idgen.Generator,
	logger *logging.Logger,
) *AlertService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AlertService{
		alertRepo:   alertRepo,
		fixtureRepo: fixtureRepo,
		ids:         ids,
		logger:      logger,
	}
}

func (s *AlertService) Create(ctx context.Context, userID string, fixtureID int64, kind string) (alert.Alert, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AlertService.Create")
	defer span.End()

	kind = strings.ToLower(strings.TrimSpace(kind))
	if !alert.ValidKind(kind) {
		return alert.Alert{}, fmt.Errorf("%w: unknown alert kind %q", ErrInvalidInput, kind)
	}

	record, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		return alert.Alert{}, fmt.Errorf("get fixture: %w", err)
	}
	if record == nil {
		return alert.Alert{}, fmt.Errorf("%w: fixture=%d", ErrNotFound, fixtureID)
	}

	id, err := s.ids.NewID()
	if err != nil {
		return alert.Alert{}, fmt.Errorf("generate alert id: %w", err)
	}

	created := alert.Alert{
		ID:        id,
		UserID:    userID,
		FixtureID: fixtureID,
		Kind:      kind,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.alertRepo.Create(ctx, created); err != nil {
		return alert.Alert{}, fmt.Errorf("create alert: %w", err)
	}
	return created, nil
}

func (s *AlertService) ListByUser(ctx context.Context, userID string) ([]alert.Alert, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AlertService.ListByUser")
	defer span.End()

	return s.alertRepo.ListByUser(ctx, userID)
}

func (s *AlertService) Delete(ctx context.Context, userID, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AlertService.Delete")
	defer span.End()

	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: alert id is required", ErrInvalidInput)
	}
	return s.alertRepo.Delete(ctx, userID, id)
}

// EvaluateDueAlerts sweeps every active alert against the stored fixture
// state and marks the satisfied ones as triggered. Fixtures are fetched once
// per distinct fixture, then alerts are settled concurrently.
func (s *AlertService) EvaluateDueAlerts(ctx context.Context) (AlertEvaluation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AlertService.EvaluateDueAlerts")
	defer span.End()

	active, err := s.alertRepo.ListActive(ctx)
	if err != nil {
		return AlertEvaluation{}, fmt.Errorf("list active alerts: %w", err)
	}
	if len(active) == 0 {
		return AlertEvaluation{}, nil
	}

	fixtures := make(map[int64]*fixture.Fixture, len(active))
	for _, item := range active {
		if _, seen := fixtures[item.FixtureID]; seen {
			continue
		}
		record, err := s.fixtureRepo.GetByID(ctx, item.FixtureID)
		if err != nil {
			return AlertEvaluation{}, fmt.Errorf("get fixture %d: %w", item.FixtureID, err)
		}
		fixtures[item.FixtureID] = record
	}

	now := time.Now().UTC()
	var (
		mu        sync.Mutex
		triggered int
	)

	workers := pool.New().WithContext(ctx).WithMaxGoroutines(alertSweepConcurrency)
	for _, item := range active {
		workers.Go(func(ctx context.Context) error {
			record := fixtures[item.FixtureID]
			if record == nil || !alertSatisfied(item, *record, now) {
				return nil
			}
			if err := s.alertRepo.MarkTriggered(ctx, item.ID, now); err != nil {
				return fmt.Errorf("mark alert %s triggered: %w", item.ID, err)
			}
			mu.Lock()
			triggered++
			mu.Unlock()
			s.logger.InfoContext(ctx, "alert triggered",
				"alert_id", item.ID,
				"fixture_id", item.FixtureID,
				"kind", item.Kind,
			)
			return nil
		})
	}
	if err := workers.Wait(); err != nil {
		return AlertEvaluation{Evaluated: len(active), Triggered: triggered}, err
	}

	return AlertEvaluation{Evaluated: len(active), Triggered: triggered}, nil
}

func alertSatisfied(item alert.Alert, record fixture.Fixture, now time.Time) bool {
	switch item.Kind {
	case alert.KindKickoff:
		if fixture.Bucket(record.Status) != fixture.BucketUpcoming {
			return true
		}
		return !record.Date.IsZero() && !record.Date.After(now)
	case alert.KindFinished:
		return fixture.Bucket(record.Status) == fixture.BucketFinished
	default:
		return false
	}
}
