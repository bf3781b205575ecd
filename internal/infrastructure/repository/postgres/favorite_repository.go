package postgres

import (
	"context"
	"fmt"

	"github.com/giladtamam/football-insights-sub001/internal/domain/favorite"
	qb "github.com/giladtamam/football-insights-sub001/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type FavoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepository(db *sqlx.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Create(ctx context.Context, record favorite.Favorite) error {
	model := favoriteInsertModel{
		ID:     record.ID,
		UserID: record.UserID,
		Kind:   record.Kind,
		RefID:  record.RefID,
	}

	// Re-favoriting the same target is a no-op rather than an error.
	query, args, err := qb.InsertModel("favorites", model, `ON CONFLICT (user_id, kind, ref_id) WHERE deleted_at IS NULL
DO NOTHING`)
	if err != nil {
		return fmt.Errorf("build insert favorite query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string) ([]favorite.Favorite, error) {
	query, args, err := qb.Select("*").From("favorites").
		Where(
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("created_at DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select favorites query: %w", err)
	}

	var rows []favoriteTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select favorites: %w", err)
	}

	out := make([]favorite.Favorite, 0, len(rows))
	for _, row := range rows {
		out = append(out, favorite.Favorite{
			ID:        row.ID,
			UserID:    row.UserID,
			Kind:      row.Kind,
			RefID:     row.RefID,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

func (r *FavoriteRepository) Delete(ctx context.Context, userID, id string) error {
	query, args, err := qb.Update("favorites").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("id", id),
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete favorite query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	return nil
}
