package selection

import "time"

// Result is the settlement outcome of a selection. Selections are created
// pending and settled exactly once; half outcomes exist for asian-handicap
// style markets.
type Result string

const (
	ResultPending  Result = "pending"
	ResultWin      Result = "win"
	ResultLose     Result = "lose"
	ResultVoid     Result = "void"
	ResultHalfWin  Result = "half_win"
	ResultHalfLose Result = "half_lose"
)

// Selection is a user's recorded bet on a fixture market. Profit is derived
// from stake/odds/result and never stored.
type Selection struct {
	ID          string
	UserID      string
	FixtureID   int64
	Market      string
	Pick        string
	Odds        float64
	OpeningOdds *float64
	ClosingOdds *float64
	Stake       *float64
	Result      Result
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidResult reports whether value is one of the known settlement outcomes.
func ValidResult(value Result) bool {
	switch value {
	case ResultPending, ResultWin, ResultLose, ResultVoid, ResultHalfWin, ResultHalfLose:
		return true
	default:
		return false
	}
}

// IsSettled reports whether the selection left the pending state.
func (s Selection) IsSettled() bool {
	return s.Result != ResultPending && s.Result != ""
}
