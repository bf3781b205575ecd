package selection

// ComputeProfit returns the realized profit of a selection, or nil when it
// cannot be determined (no stake recorded, or the selection is still
// pending). Void bets return a zero profit, not nil: the outcome is known,
// the money just came back.
func ComputeProfit(stake *float64, odds float64, result Result) *float64 {
	if stake == nil {
		return nil
	}

	var profit float64
	switch result {
	case ResultWin:
		profit = *stake * (odds - 1)
	case ResultHalfWin:
		profit = *stake * (odds - 1) / 2
	case ResultLose:
		profit = -*stake
	case ResultHalfLose:
		profit = -*stake / 2
	case ResultVoid:
		profit = 0
	default:
		return nil
	}

	return &profit
}

// Stats is the aggregate P&L view over a set of selections.
type Stats struct {
	TotalStaked float64 `json:"total_staked"`
	TotalProfit float64 `json:"total_profit"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Pending     int     `json:"pending"`
	WinRate     float64 `json:"win_rate"`
	ROI         float64 `json:"roi"`
}

// Summarize aggregates selections into Stats. TotalStaked counts every
// non-nil stake including pending ones (the stake is at risk from creation);
// TotalProfit counts settled selections only. half_win counts as a win and
// half_lose as a loss for the rate; void moves neither counter. WinRate and
// ROI are zero-safe.
func Summarize(selections []Selection) Stats {
	var stats Stats

	for _, sel := range selections {
		if sel.Stake != nil {
			stats.TotalStaked += *sel.Stake
		}

		switch sel.Result {
		case ResultWin, ResultHalfWin:
			stats.Wins++
		case ResultLose, ResultHalfLose:
			stats.Losses++
		case ResultPending, "":
			stats.Pending++
			continue
		}

		if profit := ComputeProfit(sel.Stake, sel.Odds, sel.Result); profit != nil {
			stats.TotalProfit += *profit
		}
	}

	if settled := stats.Wins + stats.Losses; settled > 0 {
		stats.WinRate = float64(stats.Wins) / float64(settled) * 100
	}
	if stats.TotalStaked > 0 {
		stats.ROI = stats.TotalProfit / stats.TotalStaked * 100
	}

	return stats
}
