package usecase

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/giladtamam/football-insights-sub001/internal/domain/fixture"
	"github.com/giladtamam/football-insights-sub001/internal/domain/selection"
)

type stubSelectionRepository struct {
	byID map[string]selection.Selection
}

func (r *stubSelectionRepository) Create(_ context.Context, sel selection.Selection) error {
	if r.byID == nil {
		r.byID = map[string]selection.Selection{}
	}
	r.byID[sel.ID] = sel
	return nil
}

func (r *stubSelectionRepository) GetByID(_ context.Context, userID, id string) (*selection.Selection, error) {
	sel, ok := r.byID[id]
	if !ok || sel.UserID != userID {
		return nil, nil
	}
	return &sel, nil
}

func (r *stubSelectionRepository) ListByUser(_ context.Context, userID string) ([]selection.Selection, error) {
	out := make([]selection.Selection, 0)
	for _, sel := range r.byID {
		if sel.UserID == userID {
			out = append(out, sel)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubSelectionRepository) Update(_ context.Context, sel selection.Selection) error {
	r.byID[sel.ID] = sel
	return nil
}

func (r *stubSelectionRepository) Delete(_ context.Context, userID, id string) error {
	sel, ok := r.byID[id]
	if ok && sel.UserID == userID {
		delete(r.byID, id)
	}
	return nil
}

func ptr(v float64) *float64 { return &v }

func newSelectionFixture(fixtures ...fixture.Fixture) (*SelectionService, *stubSelectionRepository) {
	fixtureRepo := &stubFixtureRepository{byID: map[int64]fixture.Fixture{}}
	for _, item := range fixtures {
		fixtureRepo.byID[item.ID] = item
	}
	selectionRepo := &stubSelectionRepository{}
	service := NewSelectionService(selectionRepo, fixtureRepo, &seqIDGenerator{}, nil)
	return service, selectionRepo
}

func validSelectionInput() SelectionInput {
	return SelectionInput{
		FixtureID: 1001,
		Market:    "h2h",
		Pick:      "home",
		Odds:      1.85,
	}
}

func TestSelectionService_Create_InputValidation(t *testing.T) {
	t.Parallel()

	service, _ := newSelectionFixture(upcomingFixture(1001, 39, "Arsenal", "Chelsea"))

	cases := []struct {
		name   string
		mutate func(*SelectionInput)
	}{
		{name: "missing fixture id", mutate: func(in *SelectionInput) { in.FixtureID = 0 }},
		{name: "blank market", mutate: func(in *SelectionInput) { in.Market = "  " }},
		{name: "blank pick", mutate: func(in *SelectionInput) { in.Pick = "" }},
		{name: "odds at even money floor", mutate: func(in *SelectionInput) { in.Odds = 1 }},
		{name: "negative odds", mutate: func(in *SelectionInput) { in.Odds = -2 }},
		{name: "zero stake", mutate: func(in *SelectionInput) { in.Stake = ptr(0) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			input := validSelectionInput()
			tc.mutate(&input)

			_, err := service.Create(context.Background(), "user-1", input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestSelectionService_Create_UnknownFixture(t *testing.T) {
	t.Parallel()

	service, _ := newSelectionFixture()

	_, err := service.Create(context.Background(), "user-1", validSelectionInput())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSelectionService_Create_StartsPending(t *testing.T) {
	t.Parallel()

	service, selectionRepo := newSelectionFixture(upcomingFixture(1001, 39, "Arsenal", "Chelsea"))

	input := validSelectionInput()
	input.Market = "  h2h "
	input.Pick = " home "
	input.Stake = ptr(50)

	created, err := service.Create(context.Background(), "user-1", input)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Result != selection.ResultPending {
		t.Fatalf("Result = %q, want pending", created.Result)
	}
	if created.Market != "h2h" || created.Pick != "home" {
		t.Fatalf("market/pick not trimmed: %q %q", created.Market, created.Pick)
	}
	if created.ClosingOdds != nil {
		t.Fatal("closing odds must be unset at creation")
	}
	if _, ok := selectionRepo.byID[created.ID]; !ok {
		t.Fatal("selection not persisted")
	}
}

func TestSelectionService_Settle(t *testing.T) {
	t.Parallel()

	service, _ := newSelectionFixture(upcomingFixture(1001, 39, "Arsenal", "Chelsea"))
	ctx := context.Background()

	created, err := service.Create(ctx, "user-1", validSelectionInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := service.Settle(ctx, "user-1", created.ID, "push", nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown result: expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.Settle(ctx, "user-1", "missing", selection.ResultWin, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing selection: expected ErrNotFound, got %v", err)
	}
	if _, err := service.Settle(ctx, "user-2", created.ID, selection.ResultWin, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign selection: expected ErrNotFound, got %v", err)
	}

	settled, err := service.Settle(ctx, "user-1", created.ID, selection.ResultWin, ptr(1.72))
	if err != nil {
		t.Fatalf("Settle: %v", err)
	}
	if settled.Result != selection.ResultWin {
		t.Fatalf("Result = %q, want win", settled.Result)
	}
	if settled.ClosingOdds == nil || *settled.ClosingOdds != 1.72 {
		t.Fatalf("ClosingOdds = %v, want 1.72", settled.ClosingOdds)
	}

	// Settling again without closing odds keeps the recorded value.
	resettled, err := service.Settle(ctx, "user-1", created.ID, selection.ResultVoid, nil)
	if err != nil {
		t.Fatalf("Settle again: %v", err)
	}
	if resettled.ClosingOdds == nil || *resettled.ClosingOdds != 1.72 {
		t.Fatalf("ClosingOdds after resettle = %v, want 1.72", resettled.ClosingOdds)
	}
}

func TestSelectionService_Stats_AggregatesUserSelections(t *testing.T) {
	t.Parallel()

	service, _ := newSelectionFixture(
		upcomingFixture(1001, 39, "Arsenal", "Chelsea"),
		upcomingFixture(1002, 39, "Leeds", "Everton"),
		upcomingFixture(1003, 39, "Fulham", "Brentford"),
	)
	ctx := context.Background()

	rows := []struct {
		fixtureID int64
		odds      float64
		stake     *float64
		result    selection.Result
	}{
		{fixtureID: 1001, odds: 2.0, stake: ptr(100), result: selection.ResultWin},
		{fixtureID: 1002, odds: 3.0, stake: ptr(50), result: selection.ResultLose},
		{fixtureID: 1003, odds: 2.0, stake: ptr(20), result: selection.ResultPending},
	}
	for _, row := range rows {
		input := validSelectionInput()
		input.FixtureID = row.fixtureID
		input.Odds = row.odds
		input.Stake = row.stake

		created, err := service.Create(ctx, "user-1", input)
		if err != nil {
			t.Fatalf("Create fixture=%d: %v", row.fixtureID, err)
		}
		if row.result != selection.ResultPending {
			if _, err := service.Settle(ctx, "user-1", created.ID, row.result, nil); err != nil {
				t.Fatalf("Settle fixture=%d: %v", row.fixtureID, err)
			}
		}
	}

	stats, err := service.Stats(ctx, "user-1")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	if stats.TotalStaked != 170 {
		t.Fatalf("TotalStaked = %v, want 170", stats.TotalStaked)
	}
	if stats.TotalProfit != 50 {
		t.Fatalf("TotalProfit = %v, want 50", stats.TotalProfit)
	}
	if stats.Wins != 1 || stats.Losses != 1 || stats.Pending != 1 {
		t.Fatalf("wins/losses/pending = %d/%d/%d, want 1/1/1", stats.Wins, stats.Losses, stats.Pending)
	}
	if stats.WinRate != 50 {
		t.Fatalf("WinRate = %v, want 50", stats.WinRate)
	}

	// A user with no selections gets the zero-safe summary, not NaN.
	empty, err := service.Stats(ctx, "user-2")
	if err != nil {
		t.Fatalf("Stats empty: %v", err)
	}
	if empty.WinRate != 0 || empty.ROI != 0 {
		t.Fatalf("empty stats = %+v, want zeroes", empty)
	}
}
