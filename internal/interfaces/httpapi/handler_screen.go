package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/giladtamam/football-insights-sub001/internal/domain/screen"
	"github.com/giladtamam/football-insights-sub001/internal/usecase"
	jsoniter "github.com/json-iterator/go"
)

func (h *Handler) CreateScreen(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateScreen")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req screenRequest
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

	record, err := h.screenService.Create(ctx, principal.UserID, req.Name, req.Filters)
	if err != nil {
		h.logger.WarnContext(ctx, "create screen failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, screenToDTO(record))
}

func (h *Handler) ListScreens(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListScreens")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	screens, err := h.screenService.ListByUser(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list screens failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]screenDTO, 0, len(screens))
	for _, s := range screens {
		items = append(items, screenToDTO(s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) UpdateScreen(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateScreen")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	screenID := strings.TrimSpace(r.PathValue("screenID"))
	var req screenRequest
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

	record, err := h.screenService.Update(ctx, principal.UserID, screenID, req.Name, req.Filters)
	if err != nil {
		h.logger.WarnContext(ctx, "update screen failed", "user_id", principal.UserID, "screen_id", screenID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, screenToDTO(record))
}

func (h *Handler) DeleteScreen(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteScreen")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	screenID := strings.TrimSpace(r.PathValue("screenID"))
	if err := h.screenService.Delete(ctx, principal.UserID, screenID); err != nil {
		h.logger.WarnContext(ctx, "delete screen failed", "user_id", principal.UserID, "screen_id", screenID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

type screenRequest struct {
	Name    string              `json:"name" validate:"required,max=100"`
	Filters jsoniter.RawMessage `json:"filters" validate:"required"`
}

type screenDTO struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Filters   jsoniter.RawMessage `json:"filters"`
	CreatedAt string              `json:"createdAt"`
	UpdatedAt string              `json:"updatedAt"`
}

func screenToDTO(v screen.Screen) screenDTO {
	return screenDTO{
		ID:        v.ID,
		Name:      v.Name,
		Filters:   jsoniter.RawMessage(v.Filters),
		CreatedAt: v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
