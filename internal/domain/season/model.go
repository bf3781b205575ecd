package season

import "time"

// Season is one competition year of a league, keyed by the upstream numeric
// ID. Fixtures and standings sync require the season to exist first.
type Season struct {
	ID       int64
	LeagueID int64
	Year     int
	StartsAt *time.Time
	EndsAt   *time.Time
	Current  bool
}
