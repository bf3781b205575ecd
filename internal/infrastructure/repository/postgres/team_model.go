package postgres

import (
	"database/sql"
	"time"
)

type teamTableModel struct {
	ID        int64         `db:"id"`
	LeagueID  int64         `db:"league_id"`
	Name      string        `db:"name"`
	Code      string        `db:"code"`
	Country   string        `db:"country"`
	Logo      string        `db:"logo"`
	Founded   sql.NullInt64 `db:"founded"`
	Venue     string        `db:"venue"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
}

type teamInsertModel struct {
	ID       int64  `db:"id"`
	LeagueID int64  `db:"league_id"`
	Name     string `db:"name"`
	Code     string `db:"code"`
	Country  string `db:"country"`
	Logo     string `db:"logo"`
	Founded  *int   `db:"founded"`
	Venue    string `db:"venue"`
}
