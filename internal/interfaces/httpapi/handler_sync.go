package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/giladtamam/football-insights-sub001/internal/usecase"
	jsoniter "github.com/json-iterator/go"
)

func (h *Handler) RunSyncLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncLeagues")
	defer span.End()

	var req syncLeaguesRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.refSyncService.SyncLeagues(ctx, req.Country)
	if err != nil {
		h.logger.WarnContext(ctx, "sync leagues failed", "country", req.Country, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunSyncTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncTeams")
	defer span.End()

	req, err := h.decodeLeagueSeasonRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.refSyncService.SyncTeams(ctx, req.LeagueID, req.Season)
	if err != nil {
		h.logger.WarnContext(ctx, "sync teams failed", "league_id", req.LeagueID, "season", req.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunSyncFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncFixtures")
	defer span.End()

	req, err := h.decodeLeagueSeasonRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.refSyncService.SyncFixtures(ctx, req.LeagueID, req.Season)
	if err != nil {
		h.logger.WarnContext(ctx, "sync fixtures failed", "league_id", req.LeagueID, "season", req.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunSyncStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncStandings")
	defer span.End()

	req, err := h.decodeLeagueSeasonRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.refSyncService.SyncStandings(ctx, req.LeagueID, req.Season)
	if err != nil {
		h.logger.WarnContext(ctx, "sync standings failed", "league_id", req.LeagueID, "season", req.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunSyncOdds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncOdds")
	defer span.End()

	var req syncOddsRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.oddsSyncService.SyncOdds(ctx, req.LeagueID, req.MarkOpening)
	if err != nil {
		h.logger.WarnContext(ctx, "sync odds failed", "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunMarkClosing(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunMarkClosing")
	defer span.End()

	var req markClosingRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.oddsSyncService.MarkClosing(ctx, req.FixtureID)
	if err != nil {
		h.logger.WarnContext(ctx, "mark closing failed", "fixture_id", req.FixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunResync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunResync")
	defer span.End()

	var req resyncRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.bulkSyncService.Resync(ctx, usecase.ResyncInput{
		LeagueIDs:  req.LeagueIDs,
		SeasonYear: req.Season,
		SyncData:   req.SyncData,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "resync failed", "league_ids", req.LeagueIDs, "season", req.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunSyncScheduleDirect(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncScheduleDirect")
	defer span.End()

	if h.jobOrchestrator == nil {
		writeError(ctx, w, fmt.Errorf("%w: job orchestrator is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	req, err := decodeInternalJobSyncRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.jobOrchestrator.RunScheduleSyncDirect(ctx, usecase.JobSyncInput{
		LeagueID: req.LeagueID,
		Force:    req.Force,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "run direct schedule sync failed", "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) decodeLeagueSeasonRequest(r *http.Request) (leagueSeasonRequest, error) {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req leagueSeasonRequest
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return leagueSeasonRequest{}, fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
		}
		return leagueSeasonRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validateRequest(r.Context(), req); err != nil {
		return leagueSeasonRequest{}, err
	}

	return req, nil
}

type syncLeaguesRequest struct {
	Country string `json:"country" validate:"required,max=100"`
}

type leagueSeasonRequest struct {
	LeagueID int64 `json:"league_id" validate:"required,gt=0"`
	Season   int   `json:"season" validate:"required,gte=2000,lte=2100"`
}

type syncOddsRequest struct {
	LeagueID    int64 `json:"league_id" validate:"required,gt=0"`
	MarkOpening bool  `json:"mark_opening"`
}

type markClosingRequest struct {
	FixtureID int64 `json:"fixture_id" validate:"required,gt=0"`
}

type resyncRequest struct {
	LeagueIDs  []int64  `json:"league_ids" validate:"required,min=1,dive,gt=0"`
	Season     int      `json:"season" validate:"required,gte=2000,lte=2100"`
	SyncData   []string `json:"sync_data"`
	MaxWorkers int      `json:"max_workers" validate:"gte=0,lte=4"`
}
