package postgres

import "time"

type alertTableModel struct {
	ID          string     `db:"id"`
	UserID      string     `db:"user_id"`
	FixtureID   int64      `db:"fixture_id"`
	Kind        string     `db:"kind"`
	Active      bool       `db:"active"`
	TriggeredAt *time.Time `db:"triggered_at"`
	CreatedAt   time.Time  `db:"created_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type alertInsertModel struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	FixtureID int64  `db:"fixture_id"`
	Kind      string `db:"kind"`
	Active    bool   `db:"active"`
}
