package oddsapi

import (
	"strings"
	"time"

	"github.com/giladtamam/football-insights-sub001/internal/usecase"
)

const (
	marketMoneyline = "h2h"
	marketTotals    = "totals"
	outcomeDraw     = "Draw"
	outcomeOver     = "Over"
	outcomeUnder    = "Under"
)

type eventPayload struct {
	ID           string `json:"id"`
	SportKey     string `json:"sport_key"`
	CommenceTime string `json:"commence_time"`
	HomeTeam     string `json:"home_team"`
	AwayTeam     string `json:"away_team"`
	Bookmakers   []struct {
		Key     string `json:"key"`
		Title   string `json:"title"`
		Markets []struct {
			Key      string `json:"key"`
			Outcomes []struct {
				Name  string   `json:"name"`
				Price float64  `json:"price"`
				Point *float64 `json:"point"`
			} `json:"outcomes"`
		} `json:"markets"`
	} `json:"bookmakers"`
}

func mapEvent(item eventPayload) usecase.ExternalOddsEvent {
	commence, _ := time.Parse(time.RFC3339, strings.TrimSpace(item.CommenceTime))

	event := usecase.ExternalOddsEvent{
		ID:           strings.TrimSpace(item.ID),
		HomeTeam:     strings.TrimSpace(item.HomeTeam),
		AwayTeam:     strings.TrimSpace(item.AwayTeam),
		CommenceTime: commence,
		Bookmakers:   make([]usecase.ExternalBookmakerOdds, 0, len(item.Bookmakers)+1),
	}

	for _, book := range item.Bookmakers {
		mapped := usecase.ExternalBookmakerOdds{
			Key:   strings.TrimSpace(book.Key),
			Title: strings.TrimSpace(book.Title),
		}

		for _, market := range book.Markets {
			switch market.Key {
			case marketMoneyline:
				prices := usecase.ExternalMoneyline{}
				complete := 0
				for _, outcome := range market.Outcomes {
					// Outcome names are the provider's literal team names.
					switch outcome.Name {
					case item.HomeTeam:
						prices.Home = outcome.Price
						complete++
					case item.AwayTeam:
						prices.Away = outcome.Price
						complete++
					case outcomeDraw:
						prices.Draw = outcome.Price
						complete++
					}
				}
				if complete > 0 {
					mapped.Moneyline = &prices
				}
			case marketTotals:
				prices := usecase.ExternalTotals{}
				found := false
				for _, outcome := range market.Outcomes {
					switch outcome.Name {
					case outcomeOver:
						prices.Over = outcome.Price
						found = true
					case outcomeUnder:
						prices.Under = outcome.Price
						found = true
					}
					if outcome.Point != nil {
						prices.Line = *outcome.Point
					}
				}
				if found {
					mapped.Totals = &prices
				}
			}
		}

		if mapped.Moneyline != nil || mapped.Totals != nil {
			event.Bookmakers = append(event.Bookmakers, mapped)
		}
	}

	if consensus := consensusOdds(event.Bookmakers); consensus != nil {
		event.Bookmakers = append(event.Bookmakers, *consensus)
	}

	return event
}
