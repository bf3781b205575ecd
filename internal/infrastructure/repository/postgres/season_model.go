package postgres

import "time"

type seasonTableModel struct {
	ID        int64      `db:"id"`
	LeagueID  int64      `db:"league_id"`
	Year      int        `db:"year"`
	StartsAt  *time.Time `db:"starts_at"`
	EndsAt    *time.Time `db:"ends_at"`
	Current   bool       `db:"current"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

type seasonInsertModel struct {
	ID       int64      `db:"id"`
	LeagueID int64      `db:"league_id"`
	Year     int        `db:"year"`
	StartsAt *time.Time `db:"starts_at"`
	EndsAt   *time.Time `db:"ends_at"`
	Current  bool       `db:"current"`
}
