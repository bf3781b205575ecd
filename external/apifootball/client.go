package apifootball

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/giladtamam/football-insights-sub001/internal/platform/logging"
	"github.com/giladtamam/football-insights-sub001/internal/platform/resilience"
	"github.com/giladtamam/football-insights-sub001/internal/usecase"
)

const (
	defaultBaseURL = "https://v3.football.api-sports.io"
	apiKeyHeader   = "x-apisports-key"
	maxBodyBytes   = 6 << 20
)

var apiKeyHeaderRegex = regexp.MustCompile(`(?i)x-apisports-key:\s*\S+`)
var errProviderTransient = crerr.New("stats provider transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client wraps the upstream stats API: API key in a request header, JSON
// envelope with a paging block and an errors field. A non-2xx status and a
// non-empty errors field both surface as a plain error carrying the upstream
// message.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchLeagues returns every league (with its country and seasons) for the
// given country name, following envelope paging until exhausted.
func (c *Client) FetchLeagues(ctx context.Context, countryName string) ([]usecase.ExternalLeague, error) {
	out := make([]usecase.ExternalLeague, 0, 32)

	page := 1
	for {
		query := map[string]string{}
		if trimmed := strings.TrimSpace(countryName); trimmed != "" {
			query["country"] = trimmed
		}
		if page > 1 {
			query["page"] = strconv.Itoa(page)
		}

		var envelope leaguesEnvelope
		if err := c.doJSON(ctx, "/leagues", query, &envelope); err != nil {
			return nil, fmt.Errorf("fetch leagues country=%q page=%d: %w", countryName, page, err)
		}

		for _, item := range envelope.Response {
			out = append(out, mapLeagueItem(item))
		}

		if envelope.Paging.Total <= envelope.Paging.Current || envelope.Paging.Total <= 0 {
			break
		}
		page = envelope.Paging.Current + 1
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (c *Client) FetchTeams(ctx context.Context, leagueID int64, seasonYear int) ([]usecase.ExternalTeam, error) {
	query := map[string]string{
		"league": strconv.FormatInt(leagueID, 10),
		"season": strconv.Itoa(seasonYear),
	}

	var envelope teamsEnvelope
	if err := c.doJSON(ctx, "/teams", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch teams league_id=%d season=%d: %w", leagueID, seasonYear, err)
	}

	out := make([]usecase.ExternalTeam, 0, len(envelope.Response))
	for _, item := range envelope.Response {
		out = append(out, usecase.ExternalTeam{
			ID:      item.Team.ID,
			Name:    strings.TrimSpace(item.Team.Name),
			Code:    strings.TrimSpace(item.Team.Code),
			Country: strings.TrimSpace(item.Team.Country),
			Logo:    strings.TrimSpace(item.Team.Logo),
			Founded: item.Team.Founded,
			Venue:   strings.TrimSpace(item.Venue.Name),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (c *Client) FetchFixtures(ctx context.Context, leagueID int64, seasonYear int) ([]usecase.ExternalFixture, error) {
	query := map[string]string{
		"league": strconv.FormatInt(leagueID, 10),
		"season": strconv.Itoa(seasonYear),
	}

	var envelope fixturesEnvelope
	if err := c.doJSON(ctx, "/fixtures", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch fixtures league_id=%d season=%d: %w", leagueID, seasonYear, err)
	}

	out := make([]usecase.ExternalFixture, 0, len(envelope.Response))
	for _, item := range envelope.Response {
		fixtureDate, err := parseProviderDateTime(item.Fixture.Date)
		if err != nil {
			c.logger.WarnContext(ctx, "skip fixture with unparseable date",
				"fixture_id", item.Fixture.ID,
				"date", item.Fixture.Date,
			)
			continue
		}

		out = append(out, usecase.ExternalFixture{
			ID:           item.Fixture.ID,
			LeagueID:     item.League.ID,
			SeasonYear:   item.League.Season,
			Date:         fixtureDate,
			Status:       strings.TrimSpace(item.Fixture.Status.Short),
			HomeTeamID:   item.Teams.Home.ID,
			AwayTeamID:   item.Teams.Away.ID,
			HomeTeamName: strings.TrimSpace(item.Teams.Home.Name),
			AwayTeamName: strings.TrimSpace(item.Teams.Away.Name),
			HomeGoals:    item.Goals.Home,
			AwayGoals:    item.Goals.Away,
			Venue:        strings.TrimSpace(item.Fixture.Venue.Name),
			Referee:      strings.TrimSpace(item.Fixture.Referee),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FetchStandings flattens the provider's grouped standings (a competition
// can carry several tables) into one slice tagged with the group name.
func (c *Client) FetchStandings(ctx context.Context, leagueID int64, seasonYear int) ([]usecase.ExternalStanding, error) {
	query := map[string]string{
		"league": strconv.FormatInt(leagueID, 10),
		"season": strconv.Itoa(seasonYear),
	}

	var envelope standingsEnvelope
	if err := c.doJSON(ctx, "/standings", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch standings league_id=%d season=%d: %w", leagueID, seasonYear, err)
	}

	out := make([]usecase.ExternalStanding, 0, 24)
	for _, item := range envelope.Response {
		for _, group := range item.League.Standings {
			for _, row := range group {
				out = append(out, usecase.ExternalStanding{
					TeamID:       row.Team.ID,
					TeamName:     strings.TrimSpace(row.Team.Name),
					Rank:         row.Rank,
					Points:       row.Points,
					Played:       row.All.Played,
					Won:          row.All.Win,
					Draw:         row.All.Draw,
					Lost:         row.All.Lose,
					GoalsFor:     row.All.Goals.For,
					GoalsAgainst: row.All.Goals.Against,
					GoalsDiff:    row.GoalsDiff,
					GroupName:    strings.TrimSpace(row.Group),
					Form:         strings.TrimSpace(row.Form),
					Description:  strings.TrimSpace(row.Description),
				})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].GroupName != out[j].GroupName {
			return out[i].GroupName < out[j].GroupName
		}
		return out[i].Rank < out[j].Rank
	})
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target envelopeChecker) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "stats provider circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: stats provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errProviderTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	if messages := target.envelopeErrors(); len(messages) > 0 {
		return fmt.Errorf("provider reported errors: %s", strings.Join(messages, "; "))
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set(apiKeyHeader, c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errProviderTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errProviderTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errProviderTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "stats provider request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func mapLeagueItem(item leagueItem) usecase.ExternalLeague {
	seasons := make([]usecase.ExternalSeason, 0, len(item.Seasons))
	for _, s := range item.Seasons {
		starts, _ := parseProviderDate(s.Start)
		ends, _ := parseProviderDate(s.End)
		seasons = append(seasons, usecase.ExternalSeason{
			// The provider keys seasons by (league, year) without an ID of
			// their own; compose a stable numeric one.
			ID:       item.League.ID*10000 + int64(s.Year),
			Year:     s.Year,
			StartsAt: starts,
			EndsAt:   ends,
			Current:  s.Current,
		})
	}

	return usecase.ExternalLeague{
		ID:          item.League.ID,
		Name:        strings.TrimSpace(item.League.Name),
		Type:        strings.TrimSpace(item.League.Type),
		Logo:        strings.TrimSpace(item.League.Logo),
		CountryName: strings.TrimSpace(item.Country.Name),
		CountryCode: strings.TrimSpace(item.Country.Code),
		CountryFlag: strings.TrimSpace(item.Country.Flag),
		Seasons:     seasons,
	}
}

func parseProviderDateTime(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty datetime")
	}

	layouts := []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported datetime %q", trimmed)
}

func parseProviderDate(value string) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}

	parsed, err := time.Parse("2006-01-02", trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if apiKey != "" {
		value = strings.ReplaceAll(value, apiKey, "REDACTED")
	}
	return apiKeyHeaderRegex.ReplaceAllString(value, apiKeyHeader+": REDACTED")
}

func isRetryableStatus(status int) bool {
	switch {
	case status == http.StatusTooManyRequests:
		return true
	case status >= 500:
		return true
	default:
		return false
	}
}

func abbreviateBody(raw []byte) string {
	const maxLen = 512
	body := strings.TrimSpace(string(raw))
	if len(body) > maxLen {
		return body[:maxLen] + "..."
	}
	return body
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
