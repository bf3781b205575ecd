package postgres

import (
	"context"
	"fmt"

	"github.com/giladtamam/football-insights-sub001/internal/domain/screen"
	qb "github.com/giladtamam/football-insights-sub001/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type ScreenRepository struct {
	db *sqlx.DB
}

func NewScreenRepository(db *sqlx.DB) *ScreenRepository {
	return &ScreenRepository{db: db}
}

func (r *ScreenRepository) Create(ctx context.Context, record screen.Screen) error {
	model := screenInsertModel{
		ID:      record.ID,
		UserID:  record.UserID,
		Name:    record.Name,
		Filters: record.Filters,
	}

	query, args, err := qb.InsertModel("screens", model, "")
	if err != nil {
		return fmt.Errorf("build insert screen query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert screen: %w", err)
	}
	return nil
}

func (r *ScreenRepository) GetByID(ctx context.Context, userID, id string) (*screen.Screen, error) {
	query, args, err := qb.Select("*").From("screens").
		Where(
			qb.Eq("id", id),
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get screen query: %w", err)
	}

	var row screenTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get screen: %w", err)
	}

	record := screenFromRow(row)
	return &record, nil
}

func (r *ScreenRepository) ListByUser(ctx context.Context, userID string) ([]screen.Screen, error) {
	query, args, err := qb.Select("*").From("screens").
		Where(
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select screens query: %w", err)
	}

	var rows []screenTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select screens: %w", err)
	}

	out := make([]screen.Screen, 0, len(rows))
	for _, row := range rows {
		out = append(out, screenFromRow(row))
	}
	return out, nil
}

func (r *ScreenRepository) Update(ctx context.Context, record screen.Screen) error {
	query, args, err := qb.Update("screens").
		Set("name", record.Name).
		Set("filters", record.Filters).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", record.ID),
			qb.Eq("user_id", record.UserID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update screen query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update screen: %w", err)
	}
	return nil
}

func (r *ScreenRepository) Delete(ctx context.Context, userID, id string) error {
	query, args, err := qb.Update("screens").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("id", id),
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete screen query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete screen: %w", err)
	}
	return nil
}

func screenFromRow(row screenTableModel) screen.Screen {
	return screen.Screen{
		ID:        row.ID,
		UserID:    row.UserID,
		Name:      row.Name,
		Filters:   row.Filters,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
