package postgres

import "time"

type favoriteTableModel struct {
	ID        string     `db:"id"`
	UserID    string     `db:"user_id"`
	Kind      string     `db:"kind"`
	RefID     int64      `db:"ref_id"`
	CreatedAt time.Time  `db:"created_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type favoriteInsertModel struct {
	ID     string `db:"id"`
	UserID string `db:"user_id"`
	Kind   string `db:"kind"`
	RefID  int64  `db:"ref_id"`
}
