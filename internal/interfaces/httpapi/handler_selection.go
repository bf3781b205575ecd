package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/giladtamam/football-insights-sub001/internal/domain/selection"
	"github.com/giladtamam/football-insights-sub001/internal/usecase"
	jsoniter "github.com/json-iterator/go"
)

func (h *Handler) CreateSelection(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSelection")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createSelectionRequest
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

	record, err := h.selectionService.Create(ctx, principal.UserID, usecase.SelectionInput{
		FixtureID:   req.FixtureID,
		Market:      req.Market,
		Pick:        req.Pick,
		Odds:        req.Odds,
		OpeningOdds: req.OpeningOdds,
		Stake:       req.Stake,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create selection failed", "user_id", principal.UserID, "fixture_id", req.FixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, selectionToDTO(record))
}

func (h *Handler) ListSelections(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSelections")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	selections, err := h.selectionService.ListByUser(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list selections failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]selectionDTO, 0, len(selections))
	for _, s := range selections {
		items = append(items, selectionToDTO(s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SettleSelection(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SettleSelection")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	selectionID := strings.TrimSpace(r.PathValue("selectionID"))
	var req settleSelectionRequest
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

	record, err := h.selectionService.Settle(ctx, principal.UserID, selectionID, selection.Result(req.Result), req.ClosingOdds)
	if err != nil {
		h.logger.WarnContext(ctx, "settle selection failed", "user_id", principal.UserID, "selection_id", selectionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, selectionToDTO(record))
}

func (h *Handler) DeleteSelection(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteSelection")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	selectionID := strings.TrimSpace(r.PathValue("selectionID"))
	if err := h.selectionService.Delete(ctx, principal.UserID, selectionID); err != nil {
		h.logger.WarnContext(ctx, "delete selection failed", "user_id", principal.UserID, "selection_id", selectionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) GetSelectionStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSelectionStats")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	stats, err := h.selectionService.Stats(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "selection stats failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, stats)
}

type createSelectionRequest struct {
	FixtureID   int64    `json:"fixture_id" validate:"required,gt=0"`
	Market      string   `json:"market" validate:"required,max=50"`
	Pick        string   `json:"pick" validate:"required,max=50"`
	Odds        float64  `json:"odds" validate:"required,gt=1"`
	OpeningOdds *float64 `json:"opening_odds" validate:"omitempty,gt=1"`
	Stake       *float64 `json:"stake" validate:"omitempty,gt=0"`
}

type settleSelectionRequest struct {
	Result      string   `json:"result" validate:"required"`
	ClosingOdds *float64 `json:"closing_odds" validate:"omitempty,gt=1"`
}

type selectionDTO struct {
	ID          string   `json:"id"`
	FixtureID   int64    `json:"fixtureId"`
	Market      string   `json:"market"`
	Pick        string   `json:"pick"`
	Odds        float64  `json:"odds"`
	OpeningOdds *float64 `json:"openingOdds,omitempty"`
	ClosingOdds *float64 `json:"closingOdds,omitempty"`
	Stake       *float64 `json:"stake,omitempty"`
	Result      string   `json:"result"`
	Profit      *float64 `json:"profit"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

func selectionToDTO(v selection.Selection) selectionDTO {
	return selectionDTO{
		ID:          v.ID,
		FixtureID:   v.FixtureID,
		Market:      v.Market,
		Pick:        v.Pick,
		Odds:        v.Odds,
		OpeningOdds: v.OpeningOdds,
		ClosingOdds: v.ClosingOdds,
		Stake:       v.Stake,
		Result:      string(v.Result),
		Profit:      selection.ComputeProfit(v.Stake, v.Odds, v.Result),
		CreatedAt:   v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
