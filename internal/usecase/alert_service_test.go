package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/giladtamam/football-insights-sub001/internal/domain/alert"
	"github.com/giladtamam/football-insights-sub001/internal/domain/fixture"
)

type seqIDGenerator struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%03d", g.n), nil
}

type stubAlertRepository struct {
	mu   sync.Mutex
	byID map[string]alert.Alert
}

func (r *stubAlertRepository) Create(_ context.Context, record alert.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byID == nil {
		r.byID = map[string]alert.Alert{}
	}
	r.byID[record.ID] = record
	return nil
}

func (r *stubAlertRepository) ListByUser(_ context.Context, userID string) ([]alert.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]alert.Alert, 0)
	for _, item := range r.byID {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubAlertRepository) ListActive(context.Context) ([]alert.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]alert.Alert, 0)
	for _, item := range r.byID {
		if item.Active {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubAlertRepository) MarkTriggered(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("alert %s not found", id)
	}
	record.Active = false
	record.TriggeredAt = &at
	r.byID[id] = record
	return nil
}

func (r *stubAlertRepository) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.byID[id]
	if ok && record.UserID == userID {
		delete(r.byID, id)
	}
	return nil
}

func newAlertFixture(fixtures ...fixture.Fixture) (*AlertService, *stubAlertRepository) {
	fixtureRepo := &stubFixtureRepository{byID: map[int64]fixture.Fixture{}}
	for _, item := range fixtures {
		fixtureRepo.byID[item.ID] = item
	}
	alertRepo := &stubAlertRepository{}
	service := NewAlertService(alertRepo, fixtureRepo, &seqIDGenerator{}, nil)
	return service, alertRepo
}

func TestAlertService_Create_RejectsUnknownKind(t *testing.T) {
	t.Parallel()

	service, _ := newAlertFixture(upcomingFixture(1001, 39, "Arsenal", "Chelsea"))

	_, err := service.Create(context.Background(), "user-1", 1001, "halftime")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAlertService_Create_UnknownFixture(t *testing.T) {
	t.Parallel()

	service, _ := newAlertFixture()

	_, err := service.Create(context.Background(), "user-1", 9999, alert.KindKickoff)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAlertService_Create_NormalizesKindAndActivates(t *testing.T) {
	t.Parallel()

	service, alertRepo := newAlertFixture(upcomingFixture(1001, 39, "Arsenal", "Chelsea"))

	created, err := service.Create(context.Background(), "user-1", 1001, "  Kickoff ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Kind != alert.KindKickoff {
		t.Fatalf("Kind = %q, want %q", created.Kind, alert.KindKickoff)
	}
	if !created.Active || created.ID == "" {
		t.Fatalf("created alert not active or missing id: %+v", created)
	}
	if _, ok := alertRepo.byID[created.ID]; !ok {
		t.Fatal("alert not persisted")
	}
}

func TestAlertService_EvaluateDueAlerts_KickoffTriggers(t *testing.T) {
	t.Parallel()

	past := upcomingFixture(1001, 39, "Arsenal", "Chelsea")
	past.Date = time.Now().Add(-5 * time.Minute).UTC()
	future := upcomingFixture(1002, 39, "Leeds", "Everton")

	live := upcomingFixture(1003, 39, "Fulham", "Brentford")
	live.Status = "1H"

	service, alertRepo := newAlertFixture(past, future, live)
	ctx := context.Background()

	for _, fixtureID := range []int64{1001, 1002, 1003} {
		if _, err := service.Create(ctx, "user-1", fixtureID, alert.KindKickoff); err != nil {
			t.Fatalf("Create alert for %d: %v", fixtureID, err)
		}
	}

	outcome, err := service.EvaluateDueAlerts(ctx)
	if err != nil {
		t.Fatalf("EvaluateDueAlerts: %v", err)
	}
	if outcome.Evaluated != 3 || outcome.Triggered != 2 {
		t.Fatalf("outcome = %+v, want evaluated=3 triggered=2", outcome)
	}

	active, err := alertRepo.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 1 || active[0].FixtureID != 1002 {
		t.Fatalf("remaining active alerts = %+v, want only fixture 1002", active)
	}
}

func TestAlertService_EvaluateDueAlerts_FinishedTriggersOnFullTime(t *testing.T) {
	t.Parallel()

	playing := upcomingFixture(1001, 39, "Arsenal", "Chelsea")
	playing.Status = "HT"
	done := upcomingFixture(1002, 39, "Leeds", "Everton")
	done.Status = "FT"

	service, alertRepo := newAlertFixture(playing, done)
	ctx := context.Background()

	first, err := service.Create(ctx, "user-1", 1001, alert.KindFinished)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := service.Create(ctx, "user-1", 1002, alert.KindFinished)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	outcome, err := service.EvaluateDueAlerts(ctx)
	if err != nil {
		t.Fatalf("EvaluateDueAlerts: %v", err)
	}
	if outcome.Evaluated != 2 || outcome.Triggered != 1 {
		t.Fatalf("outcome = %+v, want evaluated=2 triggered=1", outcome)
	}

	if alertRepo.byID[first.ID].TriggeredAt != nil {
		t.Fatal("half-time alert should not have triggered")
	}
	triggered := alertRepo.byID[second.ID]
	if triggered.Active || triggered.TriggeredAt == nil {
		t.Fatalf("full-time alert not marked triggered: %+v", triggered)
	}
}

func TestAlertService_EvaluateDueAlerts_NoActiveAlerts(t *testing.T) {
	t.Parallel()

	service, _ := newAlertFixture()

	outcome, err := service.EvaluateDueAlerts(context.Background())
	if err != nil {
		t.Fatalf("EvaluateDueAlerts: %v", err)
	}
	if outcome.Evaluated != 0 || outcome.Triggered != 0 {
		t.Fatalf("outcome = %+v, want zero sweep", outcome)
	}
}
