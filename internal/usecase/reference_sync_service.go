package usecase

import (
	"context"
	"fmt"

	"github.com/giladtamam/football-insights-sub001/internal/domain/country"
	"github.com/giladtamam/football-insights-sub001/internal/domain/fixture"
	"github.com/giladtamam/football-insights-sub001/internal/domain/league"
	"github.com/giladtamam/football-insights-sub001/internal/domain/season"
	"github.com/giladtamam/football-insights-sub001/internal/domain/standing"
	"github.com/giladtamam/football-insights-sub001/internal/domain/team"
	"github.com/giladtamam/football-insights-sub001/internal/platform/logging"
)

// SyncResult is the structured outcome of a sync operation. Upstream and
// storage failures land here as Success=false with a message instead of
// propagating as errors; callers must check Success. Records counts upserts
// committed before any failure, because sync is best-effort and
// non-transactional.
type SyncResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Records int    `json:"records"`
}

func syncFailure(records int, format string, args ...any) SyncResult {
	return SyncResult{Success: false, Message: fmt.Sprintf(format, args...), Records: records}
}

// ReferenceSyncService pulls reference data from the stats provider and
// upserts it into local storage, idempotently, keyed by upstream numeric IDs
// (standings by the season+team composite). Upserts within a batch run
// sequentially, each awaited before the next; there is no transaction
// around a batch and no retry.
type ReferenceSyncService struct {
	provider     StatsProvider
	countryRepo  country.Repository
	leagueRepo   league.Repository
	seasonRepo   season.Repository
	teamRepo     team.Repository
	fixtureRepo  fixture.Repository
	standingRepo standing.Repository
	logger       *logging.Logger
}

func NewReferenceSyncService(
	provider StatsProvider,
	countryRepo country.Repository,
	leagueRepo league.Repository,
	seasonRepo season.Repository,
	teamRepo team.Repository,
	fixtureRepo fixture.Repository,
	standingRepo standing.Repository,
	logger *logging.Logger,
) *ReferenceSyncService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ReferenceSyncService{
		provider:     provider,
		countryRepo:  countryRepo,
		leagueRepo:   leagueRepo,
		seasonRepo:   seasonRepo,
		teamRepo:     teamRepo,
		fixtureRepo:  fixtureRepo,
		standingRepo: standingRepo,
		logger:       logger,
	}
}

// SyncLeagues mirrors every league for the given country name, together with
// its country record and seasons. Country IDs are derived deterministically
// from the country name, so concurrent syncs agree on them.
func (s *ReferenceSyncService) SyncLeagues(ctx context.Context, countryName string) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReferenceSyncService.SyncLeagues")
	defer span.End()

	leagues, err := s.provider.FetchLeagues(ctx, countryName)
	if err != nil {
		s.logger.WarnContext(ctx, "league sync fetch failed", "country", countryName, "error", err)
		return syncFailure(0, "fetch leagues: %v", err), nil
	}

	records := 0
	for _, item := range leagues {
		countryRecord := country.Country{
			ID:   country.DeriveID(item.CountryName),
			Name: item.CountryName,
			Code: item.CountryCode,
			Flag: item.CountryFlag,
		}
		if err := s.countryRepo.Upsert(ctx, countryRecord); err != nil {
			return syncFailure(records, "upsert country %q: %v", item.CountryName, err), nil
		}
		records++

		if err := s.leagueRepo.Upsert(ctx, league.League{
			ID:        item.ID,
			CountryID: countryRecord.ID,
			Name:      item.Name,
			Type:      item.Type,
			Logo:      item.Logo,
		}); err != nil {
			return syncFailure(records, "upsert league %d: %v", item.ID, err), nil
		}
		records++

		for _, sItem := range item.Seasons {
			if err := s.seasonRepo.Upsert(ctx, season.Season{
				ID:       sItem.ID,
				LeagueID: item.ID,
				Year:     sItem.Year,
				StartsAt: sItem.StartsAt,
				EndsAt:   sItem.EndsAt,
				Current:  sItem.Current,
			}); err != nil {
				return syncFailure(records, "upsert season %d: %v", sItem.ID, err), nil
			}
			records++
		}
	}

	s.logger.InfoContext(ctx, "league sync finished", "country", countryName, "records", records)
	return SyncResult{Success: true, Records: records}, nil
}

func (s *ReferenceSyncService) SyncTeams(ctx context.Context, leagueID int64, seasonYear int) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReferenceSyncService.SyncTeams")
	defer span.End()

	if err := validateLeagueSeason(leagueID, seasonYear); err != nil {
		return SyncResult{}, err
	}

	teams, err := s.provider.FetchTeams(ctx, leagueID, seasonYear)
	if err != nil {
		s.logger.WarnContext(ctx, "team sync fetch failed", "league_id", leagueID, "error", err)
		return syncFailure(0, "fetch teams: %v", err), nil
	}

	records := 0
	for _, item := range teams {
		if err := s.teamRepo.Upsert(ctx, team.Team{
			ID:       item.ID,
			LeagueID: leagueID,
			Name:     item.Name,
			Code:     item.Code,
			Country:  item.Country,
			Logo:     item.Logo,
			Founded:  item.Founded,
			Venue:    item.Venue,
		}); err != nil {
			return syncFailure(records, "upsert team %d: %v", item.ID, err), nil
		}
		records++
	}

	s.logger.InfoContext(ctx, "team sync finished", "league_id", leagueID, "records", records)
	return SyncResult{Success: true, Records: records}, nil
}

func (s *ReferenceSyncService) SyncFixtures(ctx context.Context, leagueID int64, seasonYear int) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReferenceSyncService.SyncFixtures")
	defer span.End()

	if err := validateLeagueSeason(leagueID, seasonYear); err != nil {
		return SyncResult{}, err
	}

	seasonRecord, err := s.seasonRepo.FindByLeagueYear(ctx, leagueID, seasonYear)
	if err != nil {
		return SyncResult{}, fmt.Errorf("find season: %w", err)
	}
	if seasonRecord == nil {
		return syncFailure(0, "season %d for league %d is not synced; sync leagues first", seasonYear, leagueID), nil
	}

	fixtures, err := s.provider.FetchFixtures(ctx, leagueID, seasonYear)
	if err != nil {
		s.logger.WarnContext(ctx, "fixture sync fetch failed", "league_id", leagueID, "error", err)
		return syncFailure(0, "fetch fixtures: %v", err), nil
	}

	records := 0
	for _, item := range fixtures {
		if err := s.fixtureRepo.Upsert(ctx, fixture.Fixture{
			ID:           item.ID,
			LeagueID:     leagueID,
			SeasonYear:   seasonYear,
			Date:         item.Date,
			Status:       fixture.NormalizeStatus(item.Status),
			HomeTeamID:   item.HomeTeamID,
			AwayTeamID:   item.AwayTeamID,
			HomeTeamName: item.HomeTeamName,
			AwayTeamName: item.AwayTeamName,
			HomeGoals:    item.HomeGoals,
			AwayGoals:    item.AwayGoals,
			Venue:        item.Venue,
			Referee:      item.Referee,
		}); err != nil {
			return syncFailure(records, "upsert fixture %d: %v", item.ID, err), nil
		}
		records++
	}

	s.logger.InfoContext(ctx, "fixture sync finished", "league_id", leagueID, "season", seasonYear, "records", records)
	return SyncResult{Success: true, Records: records}, nil
}

func (s *ReferenceSyncService) SyncStandings(ctx context.Context, leagueID int64, seasonYear int) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReferenceSyncService.SyncStandings")
	defer span.End()

	if err := validateLeagueSeason(leagueID, seasonYear); err != nil {
		return SyncResult{}, err
	}

	seasonRecord, err := s.seasonRepo.FindByLeagueYear(ctx, leagueID, seasonYear)
	if err != nil {
		return SyncResult{}, fmt.Errorf("find season: %w", err)
	}
	if seasonRecord == nil {
		return syncFailure(0, "season %d for league %d is not synced; sync leagues first", seasonYear, leagueID), nil
	}

	rows, err := s.provider.FetchStandings(ctx, leagueID, seasonYear)
	if err != nil {
		s.logger.WarnContext(ctx, "standing sync fetch failed", "league_id", leagueID, "error", err)
		return syncFailure(0, "fetch standings: %v", err), nil
	}

	records := 0
	for _, row := range rows {
		if err := s.standingRepo.Upsert(ctx, standing.Standing{
			SeasonID:     seasonRecord.ID,
			TeamID:       row.TeamID,
			TeamName:     row.TeamName,
			Rank:         row.Rank,
			Points:       row.Points,
			Played:       row.Played,
			Won:          row.Won,
			Draw:         row.Draw,
			Lost:         row.Lost,
			GoalsFor:     row.GoalsFor,
			GoalsAgainst: row.GoalsAgainst,
			GoalsDiff:    row.GoalsDiff,
			GroupName:    row.GroupName,
			Form:         row.Form,
			Description:  row.Description,
		}); err != nil {
			return syncFailure(records, "upsert standing season=%d team=%d: %v", seasonRecord.ID, row.TeamID, err), nil
		}
		records++
	}

	s.logger.InfoContext(ctx, "standing sync finished", "league_id", leagueID, "season", seasonYear, "records", records)
	return SyncResult{Success: true, Records: records}, nil
}

func validateLeagueSeason(leagueID int64, seasonYear int) error {
	if leagueID <= 0 {
		return fmt.Errorf("%w: league id must be greater than zero", ErrInvalidInput)
	}
	if seasonYear < 1900 || seasonYear > 2200 {
		return fmt.Errorf("%w: season year %d is out of range", ErrInvalidInput, seasonYear)
	}
	return nil
}
