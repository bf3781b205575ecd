package screen

import "time"

// Screen is a saved filter set: a name plus the raw filter document the
// client replays against the fixture/odds queries. The filter payload is
// opaque JSON to the backend.
type Screen struct {
	ID        string
	UserID    string
	Name      string
	Filters   []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}
