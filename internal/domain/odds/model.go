package odds

import "time"

// BookmakerConsensus is the synthetic bookmaker key for the provider-side
// average across all bookmakers quoting a market.
const BookmakerConsensus = "consensus"

// Market labels as stored on snapshot rows.
const (
	MarketMoneyline = "1X2"
	MarketTotals    = "O/U"
)

// Snapshot is an immutable point-in-time record of one bookmaker's prices on
// one market of a fixture. Moneyline rows carry Home/Draw/Away, totals rows
// carry Over/Under plus the line. Nothing on the row is ever edited except
// IsClosing, which the closing-line marking operation flips to true on the
// most recent row per (bookmaker, market). There is no uniqueness constraint:
// repeated syncs append further rows and the history is read back in capture
// order.
type Snapshot struct {
	ID         int64
	FixtureID  int64
	Bookmaker  string
	Market     string
	HomePrice  *float64
	DrawPrice  *float64
	AwayPrice  *float64
	OverPrice  *float64
	UnderPrice *float64
	Line       *float64
	IsOpening  bool
	IsClosing  bool
	CapturedAt time.Time
}
