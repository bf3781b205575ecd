package postgres

import "time"

type countryTableModel struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Code      string    `db:"code"`
	Flag      string    `db:"flag"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type countryInsertModel struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
	Code string `db:"code"`
	Flag string `db:"flag"`
}
