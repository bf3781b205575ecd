package usecase

import (
	"context"
	"fmt"

	"github.com/giladtamam/football-insights-sub001/internal/domain/country"
	"github.com/giladtamam/football-insights-sub001/internal/domain/league"
	"github.com/giladtamam/football-insights-sub001/internal/domain/season"
	"github.com/giladtamam/football-insights-sub001/internal/domain/standing"
	"github.com/giladtamam/football-insights-sub001/internal/domain/team"
	"github.com/giladtamam/football-insights-sub001/internal/platform/logging"
)

// ReferenceQueryService serves the read side of the mirrored reference data.
// Everything here is a plain lookup against the local store; nothing reaches
// upstream.
type ReferenceQueryService struct {
	countryRepo  country.Repository
	leagueRepo   league.Repository
	seasonRepo   season.Repository
	teamRepo     team.Repository
	standingRepo standing.Repository
	logger       *logging.Logger
}

func NewReferenceQueryService(
	countryRepo country.Repository,
	leagueRepo league.Repository,
	seasonRepo season.Repository,
	teamRepo team.Repository,
	standingRepo standing.Repository,
	logger *logging.Logger,
) *ReferenceQueryService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ReferenceQueryService{
		countryRepo:  countryRepo,
		leagueRepo:   leagueRepo,
		seasonRepo:   seasonRepo,
		teamRepo:     teamRepo,
		standingRepo: standingRepo,
		logger:       logger,
	}
}

func (s *ReferenceQueryService) ListCountries(ctx context.Context) ([]country.Country, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReferenceQueryService.ListCountries")
	defer span.End()

	return s.countryRepo.List(ctx)
}

func (s *ReferenceQueryService) ListLeagues(ctx context.Context, filter league.Filter) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReferenceQueryService.ListLeagues")
	defer span.End()

	return s.leagueRepo.List(ctx, filter)
}

func (s *ReferenceQueryService) GetLeague(ctx context.Context, leagueID int64) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReferenceQueryService.GetLeague")
	defer span.End()

	record, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if record == nil {
		return league.League{}, fmt.Errorf("%w: league=%d", ErrNotFound, leagueID)
	}
	return *record, nil
}

func (s *ReferenceQueryService) ListSeasons(ctx context.Context, leagueID int64) ([]season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReferenceQueryService.ListSeasons")
	defer span.End()

	if leagueID <= 0 {
		return nil, fmt.Errorf("%w: league id must be greater than zero", ErrInvalidInput)
	}
	return s.seasonRepo.ListByLeague(ctx, leagueID)
}

func (s *ReferenceQueryService) ListTeams(ctx context.Context, leagueID int64) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReferenceQueryService.ListTeams")
	defer span.End()

	if leagueID <= 0 {
		return nil, fmt.Errorf("%w: league id must be greater than zero", ErrInvalidInput)
	}
	return s.teamRepo.ListByLeague(ctx, leagueID)
}

// ListStandings returns the stored table for a league season. The season must
// have been synced; an unknown league+year pair is a not-found, mirroring the
// sync side's season precondition.
func (s *ReferenceQueryService) ListStandings(ctx context.Context, leagueID int64, year int) ([]standing.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReferenceQueryService.ListStandings")
	defer span.End()

	if leagueID <= 0 || year <= 0 {
		return nil, fmt.Errorf("%w: league id and season year are required", ErrInvalidInput)
	}

	seasonRecord, err := s.seasonRepo.FindByLeagueYear(ctx, leagueID, year)
	if err != nil {
		return nil, fmt.Errorf("find season: %w", err)
	}
	if seasonRecord == nil {
		return nil, fmt.Errorf("%w: season %d for league %d", ErrNotFound, year, leagueID)
	}

	return s.standingRepo.ListBySeason(ctx, seasonRecord.ID)
}
