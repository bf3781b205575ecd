package postgres

import (
	"context"
	"fmt"

	"github.com/giladtamam/football-insights-sub001/internal/domain/note"
	qb "github.com/giladtamam/football-insights-sub001/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type NoteRepository struct {
	db *sqlx.DB
}

func NewNoteRepository(db *sqlx.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(ctx context.Context, record note.Note) error {
	model := noteInsertModel{
		ID:        record.ID,
		UserID:    record.UserID,
		FixtureID: record.FixtureID,
		Title:     record.Title,
		Body:      record.Body,
	}

	query, args, err := qb.InsertModel("notes", model, "")
	if err != nil {
		return fmt.Errorf("build insert note query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (r *NoteRepository) GetByID(ctx context.Context, userID, id string) (*note.Note, error) {
	query, args, err := qb.Select("*").From("notes").
		Where(
			qb.Eq("id", id),
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get note query: %w", err)
	}

	var row noteTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get note: %w", err)
	}

	record := noteFromRow(row)
	return &record, nil
}

func (r *NoteRepository) ListByUser(ctx context.Context, userID string) ([]note.Note, error) {
	query, args, err := qb.Select("*").From("notes").
		Where(
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("created_at DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select notes query: %w", err)
	}

	var rows []noteTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select notes: %w", err)
	}

	out := make([]note.Note, 0, len(rows))
	for _, row := range rows {
		out = append(out, noteFromRow(row))
	}
	return out, nil
}

func (r *NoteRepository) Update(ctx context.Context, record note.Note) error {
	query, args, err := qb.Update("notes").
		Set("title", record.Title).
		Set("body", record.Body).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", record.ID),
			qb.Eq("user_id", record.UserID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update note query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, userID, id string) error {
	query, args, err := qb.Update("notes").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("id", id),
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete note query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

func noteFromRow(row noteTableModel) note.Note {
	record := note.Note{
		ID:        row.ID,
		UserID:    row.UserID,
		Title:     row.Title,
		Body:      row.Body,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.FixtureID.Valid {
		fixtureID := row.FixtureID.Int64
		record.FixtureID = &fixtureID
	}
	return record
}
