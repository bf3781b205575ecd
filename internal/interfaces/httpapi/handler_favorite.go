package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/giladtamam/football-insights-sub001/internal/domain/favorite"
	"github.com/giladtamam/football-insights-sub001/internal/usecase"
	jsoniter "github.com/json-iterator/go"
)

func (h *Handler) CreateFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateFavorite")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req favoriteRequest
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

	record, err := h.favoriteService.Create(ctx, principal.UserID, req.Kind, req.RefID)
	if err != nil {
		h.logger.WarnContext(ctx, "create favorite failed", "user_id", principal.UserID, "kind", req.Kind, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, favoriteToDTO(record))
}

func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFavorites")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	favorites, err := h.favoriteService.ListByUser(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list favorites failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]favoriteDTO, 0, len(favorites))
	for _, f := range favorites {
		items = append(items, favoriteToDTO(f))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) DeleteFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteFavorite")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	favoriteID := strings.TrimSpace(r.PathValue("favoriteID"))
	if err := h.favoriteService.Delete(ctx, principal.UserID, favoriteID); err != nil {
		h.logger.WarnContext(ctx, "delete favorite failed", "user_id", principal.UserID, "favorite_id", favoriteID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

type favoriteRequest struct {
	Kind  string `json:"kind" validate:"required"`
	RefID int64  `json:"ref_id" validate:"required,gt=0"`
}

type favoriteDTO struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	RefID     int64  `json:"refId"`
	CreatedAt string `json:"createdAt"`
}

func favoriteToDTO(v favorite.Favorite) favoriteDTO {
	return favoriteDTO{
		ID:        v.ID,
		Kind:      v.Kind,
		RefID:     v.RefID,
		CreatedAt: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}
