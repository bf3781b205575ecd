package postgres

import "time"

type screenTableModel struct {
	ID        string     `db:"id"`
	UserID    string     `db:"user_id"`
	Name      string     `db:"name"`
	Filters   []byte     `db:"filters"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type screenInsertModel struct {
	ID      string `db:"id"`
	UserID  string `db:"user_id"`
	Name    string `db:"name"`
	Filters []byte `db:"filters"`
}
