package favorite

import "time"

// Kind says what a favorite points at.
const (
	KindTeam    = "team"
	KindLeague  = "league"
	KindFixture = "fixture"
)

// Favorite bookmarks one reference entity for a user.
type Favorite struct {
	ID        string
	UserID    string
	Kind      string
	RefID     int64
	CreatedAt time.Time
}

// ValidKind reports whether value names a supported favorite target.
func ValidKind(value string) bool {
	switch value {
	case KindTeam, KindLeague, KindFixture:
		return true
	default:
		return false
	}
}
