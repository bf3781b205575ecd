package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/giladtamam/football-insights-sub001/internal/domain/fixture"
	"github.com/giladtamam/football-insights-sub001/internal/domain/matching"
	"github.com/giladtamam/football-insights-sub001/internal/domain/odds"
	"github.com/giladtamam/football-insights-sub001/internal/platform/logging"
)

// OddsSyncResult is the structured outcome of an odds sync call. Matched and
// created counts exist for observability; there is no rollback on partial
// failure, so counts reflect what was committed.
type OddsSyncResult struct {
	Success          bool   `json:"success"`
	Message          string `json:"message,omitempty"`
	EventsMatched    int    `json:"events_matched"`
	SnapshotsCreated int    `json:"snapshots_created"`
}

// LiveOddsEvent is one provider event for a live-odds query, annotated with
// the local fixture it matched, when any. Never persisted.
type LiveOddsEvent struct {
	Event     ExternalOddsEvent
	FixtureID *int64
}

// OddsSyncService correlates provider odds events with stored fixtures via
// normalized-name matching and records point-in-time snapshots per bookmaker
// and market, including the synthetic consensus entry.
type OddsSyncService struct {
	provider     OddsProvider
	fixtureRepo  fixture.Repository
	snapshotRepo odds.SnapshotRepository
	sportKeys    map[int64]string
	logger       *logging.Logger
}

func NewOddsSyncService(
	provider OddsProvider,
	fixtureRepo fixture.Repository,
	snapshotRepo odds.SnapshotRepository,
	sportKeys map[int64]string,
	logger *logging.Logger,
) *OddsSyncService {
	if logger == nil {
		logger = logging.Default()
	}

	return &OddsSyncService{
		provider:     provider,
		fixtureRepo:  fixtureRepo,
		snapshotRepo: snapshotRepo,
		sportKeys:    sportKeys,
		logger:       logger,
	}
}

// sportKeyFor maps a local league ID to the provider's sport key via the
// fixed configuration table. An unmapped league fails fast.
func (s *OddsSyncService) sportKeyFor(leagueID int64) (string, error) {
	key, ok := s.sportKeys[leagueID]
	if !ok || key == "" {
		return "", fmt.Errorf("%w: league %d has no odds sport key mapping", ErrInvalidInput, leagueID)
	}
	return key, nil
}

// SyncOdds fetches events for the league's sport key, matches each event to
// at most one upcoming fixture, and inserts one snapshot per bookmaker per
// published market. markOpening tags the created rows as opening quotes;
// is_closing is always false at creation. Events without a matching fixture
// are skipped silently. Repeated calls append further snapshot rows: the
// history is a time series, duplicates included.
func (s *OddsSyncService) SyncOdds(ctx context.Context, leagueID int64, markOpening bool) (OddsSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsSyncService.SyncOdds")
	defer span.End()

	sportKey, err := s.sportKeyFor(leagueID)
	if err != nil {
		return OddsSyncResult{}, err
	}

	fixtures, err := s.fixtureRepo.List(ctx, fixture.Filter{LeagueID: leagueID, Bucket: fixture.BucketUpcoming})
	if err != nil {
		return OddsSyncResult{}, fmt.Errorf("list fixtures: %w", err)
	}

	events, err := s.provider.FetchEvents(ctx, sportKey)
	if err != nil {
		s.logger.WarnContext(ctx, "odds sync fetch failed", "league_id", leagueID, "sport_key", sportKey, "error", err)
		return OddsSyncResult{Success: false, Message: fmt.Sprintf("fetch odds: %v", err)}, nil
	}

	pairs := fixturePairs(fixtures)
	result := OddsSyncResult{Success: true}

	for _, event := range events {
		idx := matching.FindFixture(matching.TeamPair{Home: event.HomeTeam, Away: event.AwayTeam}, pairs)
		if idx < 0 {
			continue
		}
		result.EventsMatched++

		capturedAt := time.Now().UTC()
		for _, book := range event.Bookmakers {
			for _, snapshot := range bookmakerSnapshots(fixtures[idx].ID, book, markOpening, capturedAt) {
				if _, err := s.snapshotRepo.Insert(ctx, snapshot); err != nil {
					result.Success = false
					result.Message = fmt.Sprintf("insert snapshot fixture=%d bookmaker=%s: %v", fixtures[idx].ID, book.Key, err)
					return result, nil
				}
				result.SnapshotsCreated++
			}
		}
	}

	s.logger.InfoContext(ctx, "odds sync finished",
		"league_id", leagueID,
		"events_matched", result.EventsMatched,
		"snapshots_created", result.SnapshotsCreated,
	)
	return result, nil
}

// MarkClosing flips is_closing on the most recent snapshot per distinct
// (bookmaker, market) pair of the fixture. It mutates rows, never creates,
// and is idempotent.
func (s *OddsSyncService) MarkClosing(ctx context.Context, fixtureID int64) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsSyncService.MarkClosing")
	defer span.End()

	if fixtureID <= 0 {
		return SyncResult{}, fmt.Errorf("%w: fixture id must be greater than zero", ErrInvalidInput)
	}

	latest, err := s.snapshotRepo.LatestPerMarket(ctx, fixtureID)
	if err != nil {
		return syncFailure(0, "load latest snapshots: %v", err), nil
	}

	ids := make([]int64, 0, len(latest))
	for _, snapshot := range latest {
		ids = append(ids, snapshot.ID)
	}
	if len(ids) == 0 {
		return SyncResult{Success: true}, nil
	}

	if err := s.snapshotRepo.MarkClosing(ctx, ids); err != nil {
		return syncFailure(0, "mark closing: %v", err), nil
	}

	s.logger.InfoContext(ctx, "closing lines marked", "fixture_id", fixtureID, "rows", len(ids))
	return SyncResult{Success: true, Records: len(ids)}, nil
}

// LiveOdds fetches the league's events fresh from the provider and annotates
// each with the fixture it matches. Nothing is persisted.
func (s *OddsSyncService) LiveOdds(ctx context.Context, leagueID int64) ([]LiveOddsEvent, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsSyncService.LiveOdds")
	defer span.End()

	sportKey, err := s.sportKeyFor(leagueID)
	if err != nil {
		return nil, err
	}

	fixtures, err := s.fixtureRepo.List(ctx, fixture.Filter{LeagueID: leagueID, Bucket: fixture.BucketUpcoming})
	if err != nil {
		return nil, fmt.Errorf("list fixtures: %w", err)
	}

	events, err := s.provider.FetchEvents(ctx, sportKey)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch odds: %v", ErrDependencyUnavailable, err)
	}

	pairs := fixturePairs(fixtures)
	out := make([]LiveOddsEvent, 0, len(events))
	for _, event := range events {
		annotated := LiveOddsEvent{Event: event}
		if idx := matching.FindFixture(matching.TeamPair{Home: event.HomeTeam, Away: event.AwayTeam}, pairs); idx >= 0 {
			fixtureID := fixtures[idx].ID
			annotated.FixtureID = &fixtureID
		}
		out = append(out, annotated)
	}

	return out, nil
}

// OddsHistory returns the fixture's persisted snapshots ordered by capture
// time ascending.
func (s *OddsSyncService) OddsHistory(ctx context.Context, fixtureID int64) ([]odds.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsSyncService.OddsHistory")
	defer span.End()

	if fixtureID <= 0 {
		return nil, fmt.Errorf("%w: fixture id must be greater than zero", ErrInvalidInput)
	}

	record, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		return nil, fmt.Errorf("get fixture: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: fixture=%d", ErrNotFound, fixtureID)
	}

	return s.snapshotRepo.ListByFixture(ctx, fixtureID)
}

// LatestOdds returns the most recent snapshot per (bookmaker, market) pair.
func (s *OddsSyncService) LatestOdds(ctx context.Context, fixtureID int64) ([]odds.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsSyncService.LatestOdds")
	defer span.End()

	if fixtureID <= 0 {
		return nil, fmt.Errorf("%w: fixture id must be greater than zero", ErrInvalidInput)
	}

	record, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		return nil, fmt.Errorf("get fixture: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: fixture=%d", ErrNotFound, fixtureID)
	}

	return s.snapshotRepo.LatestPerMarket(ctx, fixtureID)
}

func fixturePairs(fixtures []fixture.Fixture) []matching.TeamPair {
	pairs := make([]matching.TeamPair, len(fixtures))
	for i, f := range fixtures {
		pairs[i] = matching.TeamPair{Home: f.HomeTeamName, Away: f.AwayTeamName}
	}
	return pairs
}

// bookmakerSnapshots expands one bookmaker block into snapshot rows: one per
// published market. The totals market label carries the line so different
// lines stay distinct (bookmaker, market) groups.
func bookmakerSnapshots(fixtureID int64, book ExternalBookmakerOdds, isOpening bool, capturedAt time.Time) []odds.Snapshot {
	out := make([]odds.Snapshot, 0, 2)

	if book.Moneyline != nil {
		home, draw, away := book.Moneyline.Home, book.Moneyline.Draw, book.Moneyline.Away
		out = append(out, odds.Snapshot{
			FixtureID:  fixtureID,
			Bookmaker:  book.Key,
			Market:     odds.MarketMoneyline,
			HomePrice:  &home,
			DrawPrice:  &draw,
			AwayPrice:  &away,
			IsOpening:  isOpening,
			CapturedAt: capturedAt,
		})
	}

	if book.Totals != nil {
		over, under, line := book.Totals.Over, book.Totals.Under, book.Totals.Line
		out = append(out, odds.Snapshot{
			FixtureID:  fixtureID,
			Bookmaker:  book.Key,
			Market:     fmt.Sprintf("%s %.1f", odds.MarketTotals, line),
			OverPrice:  &over,
			UnderPrice: &under,
			Line:       &line,
			IsOpening:  isOpening,
			CapturedAt: capturedAt,
		})
	}

	return out
}
