package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/giladtamam/football-insights-sub001/internal/domain/league"
	"github.com/giladtamam/football-insights-sub001/internal/domain/season"
	"github.com/giladtamam/football-insights-sub001/internal/platform/logging"
)

// LeagueSyncCoordinator implements LeagueDataSyncer on top of the
// single-concern sync services. Schedule sync refreshes fixtures and
// standings; live sync refreshes fixtures and odds, then sweeps alerts.
// A structured sync failure is logged and swallowed here so one flaky
// provider call does not stall the job chain.
type LeagueSyncCoordinator struct {
	refSync    *ReferenceSyncService
	oddsSync   *OddsSyncService
	alertSvc   *AlertService
	seasonRepo season.Repository
	logger     *logging.Logger
}

func NewLeagueSyncCoordinator(
	refSync *ReferenceSyncService,
	oddsSync *OddsSyncService,
	alertSvc *AlertService,
	seasonRepo season.Repository,
	logger *logging.Logger,
) *LeagueSyncCoordinator {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeagueSyncCoordinator{
		refSync:    refSync,
		oddsSync:   oddsSync,
		alertSvc:   alertSvc,
		seasonRepo: seasonRepo,
		logger:     logger,
	}
}

func (c *LeagueSyncCoordinator) SyncSchedule(ctx context.Context, item league.League) error {
	year, err := c.currentSeasonYear(ctx, item.ID)
	if err != nil {
		return err
	}

	if outcome, err := c.refSync.SyncFixtures(ctx, item.ID, year); err != nil {
		return err
	} else if !outcome.Success {
		c.logger.WarnContext(ctx, "schedule fixture sync failed", "league_id", item.ID, "message", outcome.Message)
	}

	if outcome, err := c.refSync.SyncStandings(ctx, item.ID, year); err != nil {
		return err
	} else if !outcome.Success {
		c.logger.WarnContext(ctx, "schedule standings sync failed", "league_id", item.ID, "message", outcome.Message)
	}

	return nil
}

func (c *LeagueSyncCoordinator) SyncLive(ctx context.Context, item league.League) error {
	year, err := c.currentSeasonYear(ctx, item.ID)
	if err != nil {
		return err
	}

	if outcome, err := c.refSync.SyncFixtures(ctx, item.ID, year); err != nil {
		return err
	} else if !outcome.Success {
		c.logger.WarnContext(ctx, "live fixture sync failed", "league_id", item.ID, "message", outcome.Message)
	}

	if c.oddsSync != nil {
		if outcome, err := c.oddsSync.SyncOdds(ctx, item.ID, false); err != nil {
			c.logger.WarnContext(ctx, "live odds sync failed", "league_id", item.ID, "error", err)
		} else if !outcome.Success {
			c.logger.WarnContext(ctx, "live odds sync failed", "league_id", item.ID, "message", outcome.Message)
		}
	}

	if c.alertSvc != nil {
		if sweep, err := c.alertSvc.EvaluateDueAlerts(ctx); err != nil {
			c.logger.WarnContext(ctx, "alert sweep failed", "league_id", item.ID, "error", err)
		} else if sweep.Triggered > 0 {
			c.logger.InfoContext(ctx, "alert sweep completed",
				"evaluated", sweep.Evaluated,
				"triggered", sweep.Triggered,
			)
		}
	}

	return nil
}

// currentSeasonYear picks the season flagged current by the provider,
// falling back to the latest synced year.
func (c *LeagueSyncCoordinator) currentSeasonYear(ctx context.Context, leagueID int64) (int, error) {
	seasons, err := c.seasonRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return 0, fmt.Errorf("list seasons for league=%d: %w", leagueID, err)
	}
	if len(seasons) == 0 {
		return 0, fmt.Errorf("%w: no synced seasons for league=%d; sync leagues first", ErrNotFound, leagueID)
	}

	latest := 0
	for _, item := range seasons {
		if item.Current {
			return item.Year, nil
		}
		if item.Year > latest {
			latest = item.Year
		}
	}
	if latest == 0 {
		latest = time.Now().UTC().Year()
	}
	return latest, nil
}
