package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/giladtamam/football-insights-sub001/internal/domain/fixture"
	"github.com/giladtamam/football-insights-sub001/internal/domain/selection"
	idgen "github.com/giladtamam/football-insights-sub001/internal/platform/id"
	"github.com/giladtamam/football-insights-sub001/internal/platform/logging"
)

// SelectionInput carries the user-supplied fields of a selection.
type SelectionInput struct {
	FixtureID   int64
	Market      string
	Pick        string
	Odds        float64
	OpeningOdds *float64
	Stake       *float64
}

// SelectionService owns bet-tracking selections: CRUD, settlement and the
// aggregate P&L view. Profit is always derived on read, never stored.
type SelectionService struct {
	selectionRepo selection.Repository
	fixtureRepo   fixture.Repository
	ids           idgen.Generator
	logger        *logging.Logger
}

func NewSelectionService(
	selectionRepo selection.Repository,
	fixtureRepo fixture.Repository,
	ids idgen.Generator,
	logger *logging.Logger,
) *SelectionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SelectionService{
		selectionRepo: selectionRepo,
		fixtureRepo:   fixtureRepo,
		ids:           ids,
		logger:        logger,
	}
}

func (s *SelectionService) Create(ctx context.Context, userID string, input SelectionInput) (selection.Selection, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.Create")
	defer span.End()

	if err := validateSelectionInput(input); err != nil {
		return selection.Selection{}, err
	}

	record, err := s.fixtureRepo.GetByID(ctx, input.FixtureID)
	if err != nil {
		return selection.Selection{}, fmt.Errorf("get fixture: %w", err)
	}
	if record == nil {
		return selection.Selection{}, fmt.Errorf("%w: fixture=%d", ErrNotFound, input.FixtureID)
	}

	id, err := s.ids.NewID()
	if err != nil {
		return selection.Selection{}, fmt.Errorf("generate selection id: %w", err)
	}

	now := time.Now().UTC()
	created := selection.Selection{
		ID:          id,
		UserID:      userID,
		FixtureID:   input.FixtureID,
		Market:      strings.TrimSpace(input.Market),
		Pick:        strings.TrimSpace(input.Pick),
		Odds:        input.Odds,
		OpeningOdds: input.OpeningOdds,
		Stake:       input.Stake,
		Result:      selection.ResultPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.selectionRepo.Create(ctx, created); err != nil {
		return selection.Selection{}, fmt.Errorf("create selection: %w", err)
	}

	return created, nil
}

func (s *SelectionService) ListByUser(ctx context.Context, userID string) ([]selection.Selection, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.ListByUser")
	defer span.End()

	return s.selectionRepo.ListByUser(ctx, userID)
}

// Settle records the outcome of a selection and, optionally, the closing
// odds observed at settlement time.
func (s *SelectionService) Settle(ctx context.Context, userID, id string, result selection.Result, closingOdds *float64) (selection.Selection, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.Settle")
	defer span.End()

	if !selection.ValidResult(result) {
		return selection.Selection{}, fmt.Errorf("%w: unknown settlement result %q", ErrInvalidInput, result)
	}

	record, err := s.selectionRepo.GetByID(ctx, userID, id)
	if err != nil {
		return selection.Selection{}, fmt.Errorf("get selection: %w", err)
	}
	if record == nil {
		return selection.Selection{}, fmt.Errorf("%w: selection=%s", ErrNotFound, id)
	}

	record.Result = result
	if closingOdds != nil {
		record.ClosingOdds = closingOdds
	}
	record.UpdatedAt = time.Now().UTC()

	if err := s.selectionRepo.Update(ctx, *record); err != nil {
		return selection.Selection{}, fmt.Errorf("update selection: %w", err)
	}

	s.logger.InfoContext(ctx, "selection settled", "selection_id", id, "result", string(result))
	return *record, nil
}

func (s *SelectionService) Delete(ctx context.Context, userID, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.Delete")
	defer span.End()

	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: selection id is required", ErrInvalidInput)
	}
	return s.selectionRepo.Delete(ctx, userID, id)
}

// Stats aggregates the user's selections into the P&L summary.
func (s *SelectionService) Stats(ctx context.Context, userID string) (selection.Stats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.Stats")
	defer span.End()

	items, err := s.selectionRepo.ListByUser(ctx, userID)
	if err != nil {
		return selection.Stats{}, fmt.Errorf("list selections: %w", err)
	}

	return selection.Summarize(items), nil
}

func validateSelectionInput(input SelectionInput) error {
	if input.FixtureID <= 0 {
		return fmt.Errorf("%w: fixture id must be greater than zero", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Market) == "" {
		return fmt.Errorf("%w: market is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Pick) == "" {
		return fmt.Errorf("%w: pick is required", ErrInvalidInput)
	}
	if input.Odds <= 1 {
		return fmt.Errorf("%w: odds must be greater than 1", ErrInvalidInput)
	}
	if input.Stake != nil && *input.Stake <= 0 {
		return fmt.Errorf("%w: stake must be greater than zero", ErrInvalidInput)
	}
	return nil
}
