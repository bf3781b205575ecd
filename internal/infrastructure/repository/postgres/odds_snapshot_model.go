package postgres

import "time"

type oddsSnapshotTableModel struct {
	ID         int64     `db:"id"`
	FixtureID  int64     `db:"fixture_id"`
	Bookmaker  string    `db:"bookmaker"`
	Market     string    `db:"market"`
	HomePrice  *float64  `db:"home_price"`
	DrawPrice  *float64  `db:"draw_price"`
	AwayPrice  *float64  `db:"away_price"`
	OverPrice  *float64  `db:"over_price"`
	UnderPrice *float64  `db:"under_price"`
	Line       *float64  `db:"line"`
	IsOpening  bool      `db:"is_opening"`
	IsClosing  bool      `db:"is_closing"`
	CapturedAt time.Time `db:"captured_at"`
	CreatedAt  time.Time `db:"created_at"`
}

type oddsSnapshotInsertModel struct {
	FixtureID  int64     `db:"fixture_id"`
	Bookmaker  string    `db:"bookmaker"`
	Market     string    `db:"market"`
	HomePrice  *float64  `db:"home_price"`
	DrawPrice  *float64  `db:"draw_price"`
	AwayPrice  *float64  `db:"away_price"`
	OverPrice  *float64  `db:"over_price"`
	UnderPrice *float64  `db:"under_price"`
	Line       *float64  `db:"line"`
	IsOpening  bool      `db:"is_opening"`
	IsClosing  bool      `db:"is_closing"`
	CapturedAt time.Time `db:"captured_at"`
}
