package oddsapi

import (
	"github.com/giladtamam/football-insights-sub001/internal/domain/odds"
	"github.com/giladtamam/football-insights-sub001/internal/usecase"
)

// consensusOdds builds the synthetic consensus bookmaker: the plain average
// of each price across the bookmakers quoting that market. Nil when no real
// bookmaker quotes anything.
func consensusOdds(books []usecase.ExternalBookmakerOdds) *usecase.ExternalBookmakerOdds {
	var (
		moneyline      usecase.ExternalMoneyline
		moneylineCount int
		totals         usecase.ExternalTotals
		totalsCount    int
	)

	for _, book := range books {
		if book.Moneyline != nil {
			moneyline.Home += book.Moneyline.Home
			moneyline.Draw += book.Moneyline.Draw
			moneyline.Away += book.Moneyline.Away
			moneylineCount++
		}
		if book.Totals != nil {
			totals.Over += book.Totals.Over
			totals.Under += book.Totals.Under
			totals.Line += book.Totals.Line
			totalsCount++
		}
	}

	if moneylineCount == 0 && totalsCount == 0 {
		return nil
	}

	out := usecase.ExternalBookmakerOdds{
		Key:   odds.BookmakerConsensus,
		Title: "Consensus",
	}
	if moneylineCount > 0 {
		n := float64(moneylineCount)
		out.Moneyline = &usecase.ExternalMoneyline{
			Home: moneyline.Home / n,
			Draw: moneyline.Draw / n,
			Away: moneyline.Away / n,
		}
	}
	if totalsCount > 0 {
		n := float64(totalsCount)
		out.Totals = &usecase.ExternalTotals{
			Over:  totals.Over / n,
			Under: totals.Under / n,
			Line:  totals.Line / n,
		}
	}

	return &out
}
