package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/giladtamam/football-insights-sub001/internal/domain/country"
	"github.com/giladtamam/football-insights-sub001/internal/domain/fixture"
	"github.com/giladtamam/football-insights-sub001/internal/domain/jobscheduler"
	"github.com/giladtamam/football-insights-sub001/internal/domain/league"
	"github.com/giladtamam/football-insights-sub001/internal/domain/odds"
	"github.com/giladtamam/football-insights-sub001/internal/domain/season"
	"github.com/giladtamam/football-insights-sub001/internal/domain/standing"
	"github.com/giladtamam/football-insights-sub001/internal/domain/team"
	"github.com/giladtamam/football-insights-sub001/internal/platform/logging"
	"github.com/giladtamam/football-insights-sub001/internal/usecase"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	authService      *usecase.AuthService
	referenceService *usecase.ReferenceQueryService
	fixtureService   *usecase.FixtureService
	oddsSyncService  *usecase.OddsSyncService
	refSyncService   *usecase.ReferenceSyncService
	bulkSyncService  *usecase.BulkSyncService
	noteService      *usecase.NoteService
	favoriteService  *usecase.FavoriteService
	screenService    *usecase.ScreenService
	selectionService *usecase.SelectionService
	alertService     *usecase.AlertService
	jobOrchestrator  *usecase.JobOrchestratorService
	jobDispatchRepo  jobscheduler.Repository
	logger           *logging.Logger
	validator        *validator.Validate
}

type HandlerConfig struct {
	AuthService      *usecase.AuthService
	ReferenceService *usecase.ReferenceQueryService
	FixtureService   *usecase.FixtureService
	OddsSyncService  *usecase.OddsSyncService
	RefSyncService   *usecase.ReferenceSyncService
	BulkSyncService  *usecase.BulkSyncService
	NoteService      *usecase.NoteService
	FavoriteService  *usecase.FavoriteService
	ScreenService    *usecase.ScreenService
	SelectionService *usecase.SelectionService
	AlertService     *usecase.AlertService
	JobOrchestrator  *usecase.JobOrchestratorService
	JobDispatchRepo  jobscheduler.Repository
	Logger           *logging.Logger
}

func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		authService:      cfg.AuthService,
		referenceService: cfg.ReferenceService,
		fixtureService:   cfg.FixtureService,
		oddsSyncService:  cfg.OddsSyncService,
		refSyncService:   cfg.RefSyncService,
		bulkSyncService:  cfg.BulkSyncService,
		noteService:      cfg.NoteService,
		favoriteService:  cfg.FavoriteService,
		screenService:    cfg.ScreenService,
		selectionService: cfg.SelectionService,
		alertService:     cfg.AlertService,
		jobOrchestrator:  cfg.JobOrchestrator,
		jobDispatchRepo:  cfg.JobDispatchRepo,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListCountries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCountries")
	defer span.End()

	countries, err := h.referenceService.ListCountries(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list countries failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]countryDTO, 0, len(countries))
	for _, c := range countries {
		items = append(items, countryToDTO(c))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	var filter league.Filter
	if raw := strings.TrimSpace(r.URL.Query().Get("country_id")); raw != "" {
		countryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid country_id %q", usecase.ErrInvalidInput, raw))
			return
		}
		filter.CountryID = &countryID
	}
	if name := strings.TrimSpace(r.URL.Query().Get("name")); name != "" {
		filter.Name = &name
	}

	leagues, err := h.referenceService.ListLeagues(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, l := range leagues {
		items = append(items, leagueToDTO(l))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	leagueID, err := pathInt64(r, "leagueID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	record, err := h.referenceService.GetLeague(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(record))
}

func (h *Handler) ListSeasonsByLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonsByLeague")
	defer span.End()

	leagueID, err := pathInt64(r, "leagueID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	seasons, err := h.referenceService.ListSeasons(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list seasons failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]seasonDTO, 0, len(seasons))
	for _, s := range seasons {
		items = append(items, seasonToDTO(s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTeamsByLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamsByLeague")
	defer span.End()

	leagueID, err := pathInt64(r, "leagueID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.referenceService.ListTeams(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListLeagueStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueStandings")
	defer span.End()

	leagueID, err := pathInt64(r, "leagueID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	year, err := queryInt(r, "season", time.Now().UTC().Year())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	standings, err := h.referenceService.ListStandings(ctx, leagueID, year)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "league_id", leagueID, "season", year, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingDTO, 0, len(standings))
	for _, s := range standings {
		items = append(items, standingToDTO(s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtures")
	defer span.End()

	filter, err := fixtureFilterFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	fixtures, err := h.fixtureService.List(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list fixtures failed", "league_id", filter.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]fixtureDTO, 0, len(fixtures))
	for _, f := range fixtures {
		items = append(items, fixtureToDTO(f))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFixture")
	defer span.End()

	fixtureID, err := pathInt64(r, "fixtureID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	record, err := h.fixtureService.GetByID(ctx, fixtureID)
	if err != nil {
		h.logger.WarnContext(ctx, "get fixture failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixtureToDTO(record))
}

func (h *Handler) ListFixtureOdds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtureOdds")
	defer span.End()

	fixtureID, err := pathInt64(r, "fixtureID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshots, err := h.oddsSyncService.OddsHistory(ctx, fixtureID)
	if err != nil {
		h.logger.WarnContext(ctx, "list fixture odds failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotsToDTO(snapshots))
}

func (h *Handler) ListLatestFixtureOdds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLatestFixtureOdds")
	defer span.End()

	fixtureID, err := pathInt64(r, "fixtureID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshots, err := h.oddsSyncService.LatestOdds(ctx, fixtureID)
	if err != nil {
		h.logger.WarnContext(ctx, "list latest fixture odds failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotsToDTO(snapshots))
}

func (h *Handler) ListLiveOdds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLiveOdds")
	defer span.End()

	leagueID, err := pathInt64(r, "leagueID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	events, err := h.oddsSyncService.LiveOdds(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list live odds failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]liveOddsEventDTO, 0, len(events))
	for _, e := range events {
		items = append(items, liveOddsEventToDTO(e))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func pathInt64(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", usecase.ErrInvalidInput, name, raw)
	}
	return value, nil
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", usecase.ErrInvalidInput, name, raw)
	}
	return value, nil
}

func fixtureFilterFromQuery(r *http.Request) (fixture.Filter, error) {
	var filter fixture.Filter
	query := r.URL.Query()

	if raw := strings.TrimSpace(query.Get("league_id")); raw != "" {
		leagueID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fixture.Filter{}, fmt.Errorf("%w: invalid league_id %q", usecase.ErrInvalidInput, raw)
		}
		filter.LeagueID = leagueID
	}

	seasonYear, err := queryInt(r, "season", 0)
	if err != nil {
		return fixture.Filter{}, err
	}
	filter.SeasonYear = seasonYear

	filter.Bucket = strings.TrimSpace(query.Get("bucket"))

	if raw := strings.TrimSpace(query.Get("from")); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return fixture.Filter{}, fmt.Errorf("%w: invalid from timestamp %q", usecase.ErrInvalidInput, raw)
		}
		filter.From = &from
	}
	if raw := strings.TrimSpace(query.Get("to")); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return fixture.Filter{}, fmt.Errorf("%w: invalid to timestamp %q", usecase.ErrInvalidInput, raw)
		}
		filter.To = &to
	}

	if filter.Limit, err = queryInt(r, "limit", 0); err != nil {
		return fixture.Filter{}, err
	}
	if filter.Offset, err = queryInt(r, "offset", 0); err != nil {
		return fixture.Filter{}, err
	}

	return filter, nil
}

type countryDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
	Flag string `json:"flag"`
}

type leagueDTO struct {
	ID        int64  `json:"id"`
	CountryID int64  `json:"countryId"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Logo      string `json:"logo"`
}

type seasonDTO struct {
	ID       int64  `json:"id"`
	LeagueID int64  `json:"leagueId"`
	Year     int    `json:"year"`
	StartsAt string `json:"startsAt,omitempty"`
	EndsAt   string `json:"endsAt,omitempty"`
	Current  bool   `json:"current"`
}

type teamDTO struct {
	ID       int64  `json:"id"`
	LeagueID int64  `json:"leagueId"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Country  string `json:"country"`
	Logo     string `json:"logo"`
	Founded  *int   `json:"founded,omitempty"`
	Venue    string `json:"venue"`
}

type standingDTO struct {
	TeamID       int64  `json:"teamId"`
	TeamName     string `json:"teamName"`
	Rank         int    `json:"rank"`
	Points       int    `json:"points"`
	Played       int    `json:"played"`
	Won          int    `json:"won"`
	Draw         int    `json:"draw"`
	Lost         int    `json:"lost"`
	GoalsFor     int    `json:"goalsFor"`
	GoalsAgainst int    `json:"goalsAgainst"`
	GoalsDiff    int    `json:"goalsDiff"`
	GroupName    string `json:"groupName,omitempty"`
	Form         string `json:"form,omitempty"`
	Description  string `json:"description,omitempty"`
}

type fixtureDTO struct {
	ID           int64  `json:"id"`
	LeagueID     int64  `json:"leagueId"`
	SeasonYear   int    `json:"seasonYear"`
	Date         string `json:"date"`
	Status       string `json:"status"`
	Bucket       string `json:"bucket"`
	HomeTeamID   int64  `json:"homeTeamId"`
	AwayTeamID   int64  `json:"awayTeamId"`
	HomeTeamName string `json:"homeTeamName"`
	AwayTeamName string `json:"awayTeamName"`
	HomeGoals    *int   `json:"homeGoals,omitempty"`
	AwayGoals    *int   `json:"awayGoals,omitempty"`
	Venue        string `json:"venue,omitempty"`
	Referee      string `json:"referee,omitempty"`
}

type oddsSnapshotDTO struct {
	ID         int64    `json:"id"`
	FixtureID  int64    `json:"fixtureId"`
	Bookmaker  string   `json:"bookmaker"`
	Market     string   `json:"market"`
	HomePrice  *float64 `json:"homePrice,omitempty"`
	DrawPrice  *float64 `json:"drawPrice,omitempty"`
	AwayPrice  *float64 `json:"awayPrice,omitempty"`
	OverPrice  *float64 `json:"overPrice,omitempty"`
	UnderPrice *float64 `json:"underPrice,omitempty"`
	Line       *float64 `json:"line,omitempty"`
	IsOpening  bool     `json:"isOpening"`
	IsClosing  bool     `json:"isClosing"`
	CapturedAt string   `json:"capturedAt"`
}

type liveOddsEventDTO struct {
	EventID      string `json:"eventId"`
	HomeTeam     string `json:"homeTeam"`
	AwayTeam     string `json:"awayTeam"`
	CommenceTime string `json:"commenceTime"`
	FixtureID    *int64 `json:"fixtureId,omitempty"`
}

func countryToDTO(v country.Country) countryDTO {
	return countryDTO{ID: v.ID, Name: v.Name, Code: v.Code, Flag: v.Flag}
}

func leagueToDTO(v league.League) leagueDTO {
	return leagueDTO{
		ID:        v.ID,
		CountryID: v.CountryID,
		Name:      v.Name,
		Type:      v.Type,
		Logo:      v.Logo,
	}
}

func seasonToDTO(v season.Season) seasonDTO {
	dto := seasonDTO{
		ID:       v.ID,
		LeagueID: v.LeagueID,
		Year:     v.Year,
		Current:  v.Current,
	}
	if v.StartsAt != nil {
		dto.StartsAt = v.StartsAt.UTC().Format(time.DateOnly)
	}
	if v.EndsAt != nil {
		dto.EndsAt = v.EndsAt.UTC().Format(time.DateOnly)
	}
	return dto
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:       v.ID,
		LeagueID: v.LeagueID,
		Name:     v.Name,
		Code:     v.Code,
		Country:  v.Country,
		Logo:     v.Logo,
		Founded:  v.Founded,
		Venue:    v.Venue,
	}
}

func standingToDTO(v standing.Standing) standingDTO {
	return standingDTO{
		TeamID:       v.TeamID,
		TeamName:     v.TeamName,
		Rank:         v.Rank,
		Points:       v.Points,
		Played:       v.Played,
		Won:          v.Won,
		Draw:         v.Draw,
		Lost:         v.Lost,
		GoalsFor:     v.GoalsFor,
		GoalsAgainst: v.GoalsAgainst,
		GoalsDiff:    v.GoalsDiff,
		GroupName:    v.GroupName,
		Form:         v.Form,
		Description:  v.Description,
	}
}

func fixtureToDTO(v fixture.Fixture) fixtureDTO {
	return fixtureDTO{
		ID:           v.ID,
		LeagueID:     v.LeagueID,
		SeasonYear:   v.SeasonYear,
		Date:         v.Date.UTC().Format(time.RFC3339),
		Status:       v.Status,
		Bucket:       fixture.Bucket(v.Status),
		HomeTeamID:   v.HomeTeamID,
		AwayTeamID:   v.AwayTeamID,
		HomeTeamName: v.HomeTeamName,
		AwayTeamName: v.AwayTeamName,
		HomeGoals:    v.HomeGoals,
		AwayGoals:    v.AwayGoals,
		Venue:        v.Venue,
		Referee:      v.Referee,
	}
}

func snapshotsToDTO(snapshots []odds.Snapshot) []oddsSnapshotDTO {
	items := make([]oddsSnapshotDTO, 0, len(snapshots))
	for _, s := range snapshots {
		items = append(items, oddsSnapshotDTO{
			ID:         s.ID,
			FixtureID:  s.FixtureID,
			Bookmaker:  s.Bookmaker,
			Market:     s.Market,
			HomePrice:  s.HomePrice,
			DrawPrice:  s.DrawPrice,
			AwayPrice:  s.AwayPrice,
			OverPrice:  s.OverPrice,
			UnderPrice: s.UnderPrice,
			Line:       s.Line,
			IsOpening:  s.IsOpening,
			IsClosing:  s.IsClosing,
			CapturedAt: s.CapturedAt.UTC().Format(time.RFC3339),
		})
	}
	return items
}

func liveOddsEventToDTO(v usecase.LiveOddsEvent) liveOddsEventDTO {
	return liveOddsEventDTO{
		EventID:      v.Event.ID,
		HomeTeam:     v.Event.HomeTeam,
		AwayTeam:     v.Event.AwayTeam,
		CommenceTime: v.Event.CommenceTime.UTC().Format(time.RFC3339),
		FixtureID:    v.FixtureID,
	}
}
