package note

import "time"

// Note is free-form user text, optionally pinned to a fixture.
type Note struct {
	ID        string
	UserID    string
	FixtureID *int64
	Title     string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
