package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/giladtamam/football-insights-sub001/internal/domain/note"
	idgen "github.com/giladtamam/football-insights-sub001/internal/platform/id"
	"github.com/giladtamam/football-insights-sub001/internal/platform/logging"
)

const maxNoteBodyLength = 10000

// NoteService owns user notes. All operations are scoped to the owning user.
type NoteService struct {
	noteRepo note.Repository
	ids      idgen.Generator
	logger   *logging.Logger
}

func NewNoteService(noteRepo note.Repository, ids idgen.Generator, logger *logging.Logger) *NoteService {
	if logger == nil {
		logger = logging.Default()
	}

	return &NoteService{noteRepo: noteRepo, ids: ids, logger: logger}
}

func (s *NoteService) Create(ctx context.Context, userID, title, body string, fixtureID *int64) (note.Note, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NoteService.Create")
	defer span.End()

	title = strings.TrimSpace(title)
	if title == "" {
		return note.Note{}, fmt.Errorf("%w: note title is required", ErrInvalidInput)
	}
	if len(body) > maxNoteBodyLength {
		return note.Note{}, fmt.Errorf("%w: note body exceeds %d characters", ErrInvalidInput, maxNoteBodyLength)
	}

	id, err := s.ids.NewID()
	if err != nil {
		return note.Note{}, fmt.Errorf("generate note id: %w", err)
	}

	now := time.Now().UTC()
	created := note.Note{
		ID:        id,
		UserID:    userID,
		FixtureID: fixtureID,
		Title:     title,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.noteRepo.Create(ctx, created); err != nil {
		return note.Note{}, fmt.Errorf("create note: %w", err)
	}
	return created, nil
}

func (s *NoteService) ListByUser(ctx context.Context, userID string) ([]note.Note, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NoteService.ListByUser")
	defer span.End()

	return s.noteRepo.ListByUser(ctx, userID)
}

func (s *NoteService) Update(ctx context.Context, userID, id, title, body string) (note.Note, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NoteService.Update")
	defer span.End()

	record, err := s.noteRepo.GetByID(ctx, userID, id)
	if err != nil {
		return note.Note{}, fmt.Errorf("get note: %w", err)
	}
	if record == nil {
		return note.Note{}, fmt.Errorf("%w: note=%s", ErrNotFound, id)
	}

	if trimmed := strings.TrimSpace(title); trimmed != "" {
		record.Title = trimmed
	}
	if len(body) > maxNoteBodyLength {
		return note.Note{}, fmt.Errorf("%w: note body exceeds %d characters", ErrInvalidInput, maxNoteBodyLength)
	}
	record.Body = body
	record.UpdatedAt = time.Now().UTC()

	if err := s.noteRepo.Update(ctx, *record); err != nil {
		return note.Note{}, fmt.Errorf("update note: %w", err)
	}
	return *record, nil
}

func (s *NoteService) Delete(ctx context.Context, userID, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.NoteService.Delete")
	defer span.End()

	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: note id is required", ErrInvalidInput)
	}
	return s.noteRepo.Delete(ctx, userID, id)
}
