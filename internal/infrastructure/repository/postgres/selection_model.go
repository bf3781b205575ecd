package postgres

import (
	"database/sql"
	"time"
)

type selectionTableModel struct {
	ID          string          `db:"id"`
	UserID      string          `db:"user_id"`
	FixtureID   int64           `db:"fixture_id"`
	Market      string          `db:"market"`
	Pick        string          `db:"pick"`
	Odds        float64         `db:"odds"`
	OpeningOdds sql.NullFloat64 `db:"opening_odds"`
	ClosingOdds sql.NullFloat64 `db:"closing_odds"`
	Stake       sql.NullFloat64 `db:"stake"`
	Result      string          `db:"result"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
	DeletedAt   *time.Time      `db:"deleted_at"`
}

type selectionInsertModel struct {
	ID          string   `db:"id"`
	UserID      string   `db:"user_id"`
	FixtureID   int64    `db:"fixture_id"`
	Market      string   `db:"market"`
	Pick        string   `db:"pick"`
	Odds        float64  `db:"odds"`
	OpeningOdds *float64 `db:"opening_odds"`
	ClosingOdds *float64 `db:"closing_odds"`
	Stake       *float64 `db:"stake"`
	Result      string   `db:"result"`
}
