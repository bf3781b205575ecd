package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/giladtamam/football-insights-sub001/internal/domain/alert"
	qb "github.com/giladtamam/football-insights-sub001/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type AlertRepository struct {
	db *sqlx.DB
}

func NewAlertRepository(db *sqlx.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(ctx context.Context, record alert.Alert) error {
	model := alertInsertModel{
		ID:        record.ID,
		UserID:    record.UserID,
		FixtureID: record.FixtureID,
		Kind:      record.Kind,
		Active:    record.Active,
	}

	query, args, err := qb.InsertModel("alerts", model, "")
	if err != nil {
		return fmt.Errorf("build insert alert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

func (r *AlertRepository) ListByUser(ctx context.Context, userID string) ([]alert.Alert, error) {
	query, args, err := qb.Select("*").From("alerts").
		Where(
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("created_at DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select alerts query: %w", err)
	}

	return r.selectAlerts(ctx, query, args)
}

func (r *AlertRepository) ListActive(ctx context.Context) ([]alert.Alert, error) {
	query, args, err := qb.Select("*").From("alerts").
		Where(
			qb.Eq("active", true),
			qb.IsNull("deleted_at"),
		).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select active alerts query: %w", err)
	}

	return r.selectAlerts(ctx, query, args)
}

func (r *AlertRepository) MarkTriggered(ctx context.Context, id string, at time.Time) error {
	query, args, err := qb.Update("alerts").
		Set("active", false).
		Set("triggered_at", at).
		Where(
			qb.Eq("id", id),
			qb.Eq("active", true),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark alert triggered query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark alert triggered: %w", err)
	}
	return nil
}

func (r *AlertRepository) Delete(ctx context.Context, userID, id string) error {
	query, args, err := qb.Update("alerts").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("id", id),
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete alert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete alert: %w", err)
	}
	return nil
}

func (r *AlertRepository) selectAlerts(ctx context.Context, query string, args []any) ([]alert.Alert, error) {
	var rows []alertTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select alerts: %w", err)
	}

	out := make([]alert.Alert, 0, len(rows))
	for _, row := range rows {
		out = append(out, alert.Alert{
			ID:          row.ID,
			UserID:      row.UserID,
			FixtureID:   row.FixtureID,
			Kind:        row.Kind,
			Active:      row.Active,
			TriggeredAt: row.TriggeredAt,
			CreatedAt:   row.CreatedAt,
		})
	}
	return out, nil
}
