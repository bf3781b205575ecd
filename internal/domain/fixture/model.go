package fixture

import (
	"sort"
	"strings"
	"time"
)

// Status buckets used for query filtering. The status code itself is copied
// verbatim from the upstream provider; the bucket is derived locally from
// fixed code-membership lists.
const (
	BucketLive     = "live"
	BucketFinished = "finished"
	BucketUpcoming = "upcoming"
)

var liveStatusCodes = map[string]struct{}{
	"1H": {}, "HT": {}, "2H": {}, "ET": {}, "BT": {},
	"P": {}, "SUSP": {}, "INT": {}, "LIVE": {},
}

var finishedStatusCodes = map[string]struct{}{
	"FT": {}, "AET": {}, "PEN": {},
}

// Fixture is one scheduled or played match, keyed by the upstream numeric
// ID. Identity is immutable; status, kickoff and goal counts are refreshed
// on every sync. Team names are denormalized onto the row because the odds
// matcher works on names, not IDs.
type Fixture struct {
	ID           int64
	LeagueID     int64
	SeasonYear   int
	Date         time.Time
	Status       string
	HomeTeamID   int64
	AwayTeamID   int64
	HomeTeamName string
	AwayTeamName string
	HomeGoals    *int
	AwayGoals    *int
	Venue        string
	Referee      string
}

// Filter narrows fixture listings. Zero/nil fields are ignored.
type Filter struct {
	LeagueID   int64
	SeasonYear int
	Bucket     string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

func NormalizeStatus(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

func IsLiveStatus(status string) bool {
	_, ok := liveStatusCodes[NormalizeStatus(status)]
	return ok
}

func IsFinishedStatus(status string) bool {
	_, ok := finishedStatusCodes[NormalizeStatus(status)]
	return ok
}

// Bucket classifies an upstream status code into one of the three coarse
// buckets. Anything outside the live and finished lists counts as upcoming,
// including postponed and cancelled codes.
func Bucket(status string) string {
	switch {
	case IsLiveStatus(status):
		return BucketLive
	case IsFinishedStatus(status):
		return BucketFinished
	default:
		return BucketUpcoming
	}
}

// LiveStatusCodes returns the provider status codes counted as live, sorted.
func LiveStatusCodes() []string {
	return sortedCodes(liveStatusCodes)
}

// FinishedStatusCodes returns the provider status codes counted as finished,
// sorted.
func FinishedStatusCodes() []string {
	return sortedCodes(finishedStatusCodes)
}

func sortedCodes(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for code := range set {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// ValidBucket reports whether value names one of the filter buckets.
func ValidBucket(value string) bool {
	switch value {
	case BucketLive, BucketFinished, BucketUpcoming:
		return true
	default:
		return false
	}
}
