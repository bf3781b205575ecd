package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/giladtamam/football-insights-sub001/internal/domain/alert"
	"github.com/giladtamam/football-insights-sub001/internal/usecase"
	jsoniter "github.com/json-iterator/go"
)

func (h *Handler) CreateAlert(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateAlert")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req alertRequest
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

	record, err := h.alertService.Create(ctx, principal.UserID, req.FixtureID, req.Kind)
	if err != nil {
		h.logger.WarnContext(ctx, "create alert failed", "user_id", principal.UserID, "fixture_id", req.FixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, alertToDTO(record))
}

func (h *Handler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAlerts")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	alerts, err := h.alertService.ListByUser(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list alerts failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]alertDTO, 0, len(alerts))
	for _, a := range alerts {
		items = append(items, alertToDTO(a))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) DeleteAlert(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteAlert")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	alertID := strings.TrimSpace(r.PathValue("alertID"))
	if err := h.alertService.Delete(ctx, principal.UserID, alertID); err != nil {
		h.logger.WarnContext(ctx, "delete alert failed", "user_id", principal.UserID, "alert_id", alertID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) RunAlertEvaluation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunAlertEvaluation")
	defer span.End()

	result, err := h.alertService.EvaluateDueAlerts(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "alert evaluation failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

type alertRequest struct {
	FixtureID int64  `json:"fixture_id" validate:"required,gt=0"`
	Kind      string `json:"kind" validate:"required"`
}

type alertDTO struct {
	ID          string `json:"id"`
	FixtureID   int64  `json:"fixtureId"`
	Kind        string `json:"kind"`
	Active      bool   `json:"active"`
	TriggeredAt string `json:"triggeredAt,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

func alertToDTO(v alert.Alert) alertDTO {
	dto := alertDTO{
		ID:        v.ID,
		FixtureID: v.FixtureID,
		Kind:      v.Kind,
		Active:    v.Active,
		CreatedAt: v.CreatedAt.UTC().Format(time.RFC3339),
	}
	if v.TriggeredAt != nil {
		dto.TriggeredAt = v.TriggeredAt.UTC().Format(time.RFC3339)
	}
	return dto
}
