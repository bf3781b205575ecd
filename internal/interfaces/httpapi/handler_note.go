package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/giladtamam/football-insights-sub001/internal/domain/note"
	"github.com/giladtamam/football-insights-sub001/internal/usecase"
	jsoniter "github.com/json-iterator/go"
)

func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateNote")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req noteRequest
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

	record, err := h.noteService.Create(ctx, principal.UserID, req.Title, req.Body, req.FixtureID)
	if err != nil {
		h.logger.WarnContext(ctx, "create note failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, noteToDTO(record))
}

func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListNotes")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	notes, err := h.noteService.ListByUser(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list notes failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]noteDTO, 0, len(notes))
	for _, n := range notes {
		items = append(items, noteToDTO(n))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateNote")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	noteID := strings.TrimSpace(r.PathValue("noteID"))
	var req noteRequest
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

	record, err := h.noteService.Update(ctx, principal.UserID, noteID, req.Title, req.Body)
	if err != nil {
		h.logger.WarnContext(ctx, "update note failed", "user_id", principal.UserID, "note_id", noteID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, noteToDTO(record))
}

func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteNote")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	noteID := strings.TrimSpace(r.PathValue("noteID"))
	if err := h.noteService.Delete(ctx, principal.UserID, noteID); err != nil {
		h.logger.WarnContext(ctx, "delete note failed", "user_id", principal.UserID, "note_id", noteID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

type noteRequest struct {
	FixtureID *int64 `json:"fixture_id" validate:"omitempty,gt=0"`
	Title     string `json:"title" validate:"required,max=200"`
	Body      string `json:"body" validate:"max=10000"`
}

type noteDTO struct {
	ID        string `json:"id"`
	FixtureID *int64 `json:"fixtureId,omitempty"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func noteToDTO(v note.Note) noteDTO {
	return noteDTO{
		ID:        v.ID,
		FixtureID: v.FixtureID,
		Title:     v.Title,
		Body:      v.Body,
		CreatedAt: v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
