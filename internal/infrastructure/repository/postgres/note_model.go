package postgres

import (
	"database/sql"
	"time"
)

type noteTableModel struct {
	ID        string        `db:"id"`
	UserID    string        `db:"user_id"`
	FixtureID sql.NullInt64 `db:"fixture_id"`
	Title     string        `db:"title"`
	Body      string        `db:"body"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
	DeletedAt *time.Time    `db:"deleted_at"`
}

type noteInsertModel struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	FixtureID *int64 `db:"fixture_id"`
	Title     string `db:"title"`
	Body      string `db:"body"`
}
