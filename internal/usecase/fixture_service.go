package usecase

import (
	"context"
	"fmt"

	"github.com/giladtamam/football-insights-sub001/internal/domain/fixture"
	"github.com/giladtamam/football-insights-sub001/internal/platform/logging"
)

const (
	defaultFixturePageSize = 50
	maxFixturePageSize     = 200
)

// FixtureService serves stored fixtures with bucket, date and pagination
// filters.
type FixtureService struct {
	fixtureRepo fixture.Repository
	logger      *logging.Logger
}

func NewFixtureService(fixtureRepo fixture.Repository, logger *logging.Logger) *FixtureService {
	if logger == nil {
		logger = logging.Default()
	}

	return &FixtureService{fixtureRepo: fixtureRepo, logger: logger}
}

func (s *FixtureService) List(ctx context.Context, filter fixture.Filter) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.List")
	defer span.End()

	if filter.Bucket != "" && !fixture.ValidBucket(filter.Bucket) {
		return nil, fmt.Errorf("%w: unknown fixture bucket %q", ErrInvalidInput, filter.Bucket)
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, fmt.Errorf("%w: date range end precedes start", ErrInvalidInput)
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultFixturePageSize
	}
	if filter.Limit > maxFixturePageSize {
		filter.Limit = maxFixturePageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	return s.fixtureRepo.List(ctx, filter)
}

func (s *FixtureService) GetByID(ctx context.Context, id int64) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.GetByID")
	defer span.End()

	record, err := s.fixtureRepo.GetByID(ctx, id)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("get fixture: %w", err)
	}
	if record == nil {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture=%d", ErrNotFound, id)
	}
	return *record, nil
}
