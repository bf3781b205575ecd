package postgres

import (
	"context"
	"fmt"

	"github.com/giladtamam/football-insights-sub001/internal/domain/selection"
	qb "github.com/giladtamam/football-insights-sub001/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type SelectionRepository struct {
	db *sqlx.DB
}

func NewSelectionRepository(db *sqlx.DB) *SelectionRepository {
	return &SelectionRepository{db: db}
}

func (r *SelectionRepository) Create(ctx context.Context, record selection.Selection) error {
	model := selectionInsertModel{
		ID:          record.ID,
		UserID:      record.UserID,
		FixtureID:   record.FixtureID,
		Market:      record.Market,
		Pick:        record.Pick,
		Odds:        record.Odds,
		OpeningOdds: record.OpeningOdds,
		ClosingOdds: record.ClosingOdds,
		Stake:       record.Stake,
		Result:      string(record.Result),
	}

	query, args, err := qb.InsertModel("selections", model, "")
	if err != nil {
		return fmt.Errorf("build insert selection query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert selection: %w", err)
	}
	return nil
}

func (r *SelectionRepository) GetByID(ctx context.Context, userID, id string) (*selection.Selection, error) {
	query, args, err := qb.Select("*").From("selections").
		Where(
			qb.Eq("id", id),
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get selection query: %w", err)
	}

	var row selectionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get selection: %w", err)
	}

	record := selectionFromRow(row)
	return &record, nil
}

func (r *SelectionRepository) ListByUser(ctx context.Context, userID string) ([]selection.Selection, error) {
	query, args, err := qb.Select("*").From("selections").
		Where(
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("created_at DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select selections query: %w", err)
	}

	var rows []selectionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select selections: %w", err)
	}

	out := make([]selection.Selection, 0, len(rows))
	for _, row := range rows {
		out = append(out, selectionFromRow(row))
	}
	return out, nil
}

func (r *SelectionRepository) Update(ctx context.Context, record selection.Selection) error {
	builder := qb.Update("selections").
		Set("result", string(record.Result)).
		SetExpr("updated_at", "NOW()")
	if record.ClosingOdds != nil {
		builder = builder.Set("closing_odds", *record.ClosingOdds)
	}

	query, args, err := builder.
		Where(
			qb.Eq("id", record.ID),
			qb.Eq("user_id", record.UserID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update selection query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update selection: %w", err)
	}
	return nil
}

func (r *SelectionRepository) Delete(ctx context.Context, userID, id string) error {
	query, args, err := qb.Update("selections").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("id", id),
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete selection query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete selection: %w", err)
	}
	return nil
}

func selectionFromRow(row selectionTableModel) selection.Selection {
	record := selection.Selection{
		ID:        row.ID,
		UserID:    row.UserID,
		FixtureID: row.FixtureID,
		Market:    row.Market,
		Pick:      row.Pick,
		Odds:      row.Odds,
		Result:    selection.Result(row.Result),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.OpeningOdds.Valid {
		value := row.OpeningOdds.Float64
		record.OpeningOdds = &value
	}
	if row.ClosingOdds.Valid {
		value := row.ClosingOdds.Float64
		record.ClosingOdds = &value
	}
	if row.Stake.Valid {
		value := row.Stake.Float64
		record.Stake = &value
	}
	return record
}
