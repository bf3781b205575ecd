package postgres

import "time"

type leagueTableModel struct {
	ID        int64     `db:"id"`
	CountryID int64     `db:"country_id"`
	Name      string    `db:"name"`
	Type      string    `db:"type"`
	Logo      string    `db:"logo"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type leagueInsertModel struct {
	ID        int64  `db:"id"`
	CountryID int64  `db:"country_id"`
	Name      string `db:"name"`
	Type      string `db:"type"`
	Logo      string `db:"logo"`
}
