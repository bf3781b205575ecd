package apifootball

import (
	"strings"

	sonic "github.com/bytedance/sonic"
)

// The provider reports errors inside an otherwise 200 envelope: an empty
// array when the call is clean, an object of code→message pairs otherwise.
type apiErrors []string

func (e *apiErrors) UnmarshalJSON(raw []byte) error {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" || trimmed == "[]" {
		*e = nil
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var list []string
		if err := sonic.Unmarshal(raw, &list); err != nil {
			return err
		}
		*e = list
		return nil
	}

	var fields map[string]string
	if err := sonic.Unmarshal(raw, &fields); err != nil {
		return err
	}
	messages := make([]string, 0, len(fields))
	for key, value := range fields {
		messages = append(messages, key+": "+value)
	}
	*e = messages
	return nil
}

type paging struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// envelopeChecker lets doJSON surface provider-reported errors uniformly.
type envelopeChecker interface {
	envelopeErrors() []string
}

type envelope struct {
	Errors  apiErrors `json:"errors"`
	Results int       `json:"results"`
	Paging  paging    `json:"paging"`
}

func (e envelope) envelopeErrors() []string { return e.Errors }

type leaguesEnvelope struct {
	envelope
	Response []leagueItem `json:"response"`
}

type leagueItem struct {
	League struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		Type string `json:"type"`
		Logo string `json:"logo"`
	} `json:"league"`
	Country struct {
		Name string `json:"name"`
		Code string `json:"code"`
		Flag string `json:"flag"`
	} `json:"country"`
	Seasons []struct {
		Year    int    `json:"year"`
		Start   string `json:"start"`
		End     string `json:"end"`
		Current bool   `json:"current"`
	} `json:"seasons"`
}

type teamsEnvelope struct {
	envelope
	Response []struct {
		Team struct {
			ID      int64  `json:"id"`
			Name    string `json:"name"`
			Code    string `json:"code"`
			Country string `json:"country"`
			Founded *int   `json:"founded"`
			Logo    string `json:"logo"`
		} `json:"team"`
		Venue struct {
			Name string `json:"name"`
		} `json:"venue"`
	} `json:"response"`
}

type fixturesEnvelope struct {
	envelope
	Response []struct {
		Fixture struct {
			ID      int64  `json:"id"`
			Date    string `json:"date"`
			Referee string `json:"referee"`
			Status  struct {
				Short string `json:"short"`
			} `json:"status"`
			Venue struct {
				Name string `json:"name"`
			} `json:"venue"`
		} `json:"fixture"`
		League struct {
			ID     int64 `json:"id"`
			Season int   `json:"season"`
		} `json:"league"`
		Teams struct {
			Home struct {
				ID   int64  `json:"id"`
				Name string `json:"name"`
			} `json:"home"`
			Away struct {
				ID   int64  `json:"id"`
				Name string `json:"name"`
			} `json:"away"`
		} `json:"teams"`
		Goals struct {
			Home *int `json:"home"`
			Away *int `json:"away"`
		} `json:"goals"`
	} `json:"response"`
}

type standingsEnvelope struct {
	envelope
	Response []struct {
		League struct {
			ID        int64           `json:"id"`
			Season    int             `json:"season"`
			Standings [][]standingRow `json:"standings"`
		} `json:"league"`
	} `json:"response"`
}

type standingRow struct {
	Rank int `json:"rank"`
	Team struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
	Points      int    `json:"points"`
	GoalsDiff   int    `json:"goalsDiff"`
	Group       string `json:"group"`
	Form        string `json:"form"`
	Description string `json:"description"`
	All         struct {
		Played int `json:"played"`
		Win    int `json:"win"`
		Draw   int `json:"draw"`
		Lose   int `json:"lose"`
		Goals  struct {
			For     int `json:"for"`
			Against int `json:"against"`
		} `json:"goals"`
	} `json:"all"`
}
