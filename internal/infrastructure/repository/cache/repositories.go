// Package cache wraps the postgres reference repositories with a TTL
// read-through store. Reference data changes only when a sync runs, so
// writes invalidate by key prefix and reads are served from memory in
// between.
package cache

import (
	"context"
	"strconv"

	"github.com/giladtamam/football-insights-sub001/internal/domain/country"
	"github.com/giladtamam/football-insights-sub001/internal/domain/league"
	"github.com/giladtamam/football-insights-sub001/internal/domain/season"
	"github.com/giladtamam/football-insights-sub001/internal/domain/standing"
	"github.com/giladtamam/football-insights-sub001/internal/domain/team"
	basecache "github.com/giladtamam/football-insights-sub001/internal/platform/cache"
)

type CountryRepository struct {
	next  country.Repository
	cache *basecache.Store
}

func NewCountryRepository(next country.Repository, cache *basecache.Store) *CountryRepository {
	return &CountryRepository{next: next, cache: cache}
}

func (r *CountryRepository) Upsert(ctx context.Context, record country.Country) error {
	if err := r.next.Upsert(ctx, record); err != nil {
		return err
	}
	r.cache.Delete(ctx, "country:list")
	return nil
}

func (r *CountryRepository) List(ctx context.Context) ([]country.Country, error) {
	v, err := r.cache.GetOrLoad(ctx, "country:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]country.Country(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]country.Country)
	return append([]country.Country(nil), items...), nil
}

type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) Upsert(ctx context.Context, record league.League) error {
	if err := r.next.Upsert(ctx, record); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "league:")
	return nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, id int64) (*league.League, error) {
	key := "league:id:" + strconv.FormatInt(id, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return cachedLeague{}, nil
		}
		return cachedLeague{value: *item, found: true}, nil
	})
	if err != nil {
		return nil, err
	}

	cached, _ := v.(cachedLeague)
	if !cached.found {
		return nil, nil
	}
	out := cached.value
	return &out, nil
}

func (r *LeagueRepository) List(ctx context.Context, filter league.Filter) ([]league.League, error) {
	v, err := r.cache.GetOrLoad(ctx, leagueListKey(filter), func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return append([]league.League(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]league.League)
	return append([]league.League(nil), items...), nil
}

type cachedLeague struct {
	value league.League
	found bool
}

func leagueListKey(filter league.Filter) string {
	key := "league:list:c="
	if filter.CountryID != nil {
		key += strconv.FormatInt(*filter.CountryID, 10)
	}
	key += ":n="
	if filter.Name != nil {
		key += *filter.Name
	}
	return key
}

type SeasonRepository struct {
	next  season.Repository
	cache *basecache.Store
}

func NewSeasonRepository(next season.Repository, cache *basecache.Store) *SeasonRepository {
	return &SeasonRepository{next: next, cache: cache}
}

func (r *SeasonRepository) Upsert(ctx context.Context, record season.Season) error {
	if err := r.next.Upsert(ctx, record); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "season:")
	return nil
}

func (r *SeasonRepository) ListByLeague(ctx context.Context, leagueID int64) ([]season.Season, error) {
	key := "season:list:" + strconv.FormatInt(leagueID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]season.Season(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]season.Season)
	return append([]season.Season(nil), items...), nil
}

func (r *SeasonRepository) FindByLeagueYear(ctx context.Context, leagueID int64, year int) (*season.Season, error) {
	key := "season:year:" + strconv.FormatInt(leagueID, 10) + ":" + strconv.Itoa(year)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, err := r.next.FindByLeagueYear(ctx, leagueID, year)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return cachedSeason{}, nil
		}
		return cachedSeason{value: *item, found: true}, nil
	})
	if err != nil {
		return nil, err
	}

	cached, _ := v.(cachedSeason)
	if !cached.found {
		return nil, nil
	}
	out := cached.value
	return &out, nil
}

type cachedSeason struct {
	value season.Season
	found bool
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) Upsert(ctx context.Context, record team.Team) error {
	if err := r.next.Upsert(ctx, record); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "team:")
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (*team.Team, error) {
	key := "team:id:" + strconv.FormatInt(id, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return cachedTeam{}, nil
		}
		return cachedTeam{value: *item, found: true}, nil
	})
	if err != nil {
		return nil, err
	}

	cached, _ := v.(cachedTeam)
	if !cached.found {
		return nil, nil
	}
	out := cached.value
	return &out, nil
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID int64) ([]team.Team, error) {
	key := "team:list:" + strconv.FormatInt(leagueID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

type cachedTeam struct {
	value team.Team
	found bool
}

type StandingRepository struct {
	next  standing.Repository
	cache *basecache.Store
}

func NewStandingRepository(next standing.Repository, cache *basecache.Store) *StandingRepository {
	return &StandingRepository{next: next, cache: cache}
}

func (r *StandingRepository) Upsert(ctx context.Context, record standing.Standing) error {
	if err := r.next.Upsert(ctx, record); err != nil {
		return err
	}
	r.cache.Delete(ctx, standingSeasonKey(record.SeasonID))
	return nil
}

func (r *StandingRepository) ListBySeason(ctx context.Context, seasonID int64) ([]standing.Standing, error) {
	v, err := r.cache.GetOrLoad(ctx, standingSeasonKey(seasonID), func(ctx context.Context) (any, error) {
		items, err := r.next.ListBySeason(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return append([]standing.Standing(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]standing.Standing)
	return append([]standing.Standing(nil), items...), nil
}

func standingSeasonKey(seasonID int64) string {
	return "standing:season:" + strconv.FormatInt(seasonID, 10)
}
