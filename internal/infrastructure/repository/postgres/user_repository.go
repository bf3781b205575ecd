package postgres

import (
	"context"
	"fmt"

	"github.com/giladtamam/football-insights-sub001/internal/domain/user"
	qb "github.com/giladtamam/football-insights-sub001/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, record user.User) error {
	model := userInsertModel{
		ID:           record.ID,
		Email:        record.Email,
		Name:         record.Name,
		PasswordHash: optionalString(record.PasswordHash),
		GoogleID:     optionalString(record.GoogleID),
		AvatarURL:    optionalString(record.AvatarURL),
	}

	query, args, err := qb.InsertModel("users", model, "")
	if err != nil {
		return fmt.Errorf("build insert user query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getOne(ctx, qb.Eq("email", email))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	return r.getOne(ctx, qb.Eq("id", id))
}

func (r *UserRepository) getOne(ctx context.Context, condition qb.Condition) (*user.User, error) {
	query, args, err := qb.Select("*").From("users").
		Where(condition, qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	record := userFromRow(row)
	return &record, nil
}

func (r *UserRepository) Update(ctx context.Context, record user.User) error {
	query, args, err := qb.Update("users").
		Set("email", record.Email).
		Set("name", record.Name).
		Set("password_hash", optionalString(record.PasswordHash)).
		Set("google_id", optionalString(record.GoogleID)).
		Set("avatar_url", optionalString(record.AvatarURL)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", record.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update user query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func userFromRow(row userTableModel) user.User {
	return user.User{
		ID:           row.ID,
		Email:        row.Email,
		Name:         row.Name,
		PasswordHash: row.PasswordHash.String,
		GoogleID:     row.GoogleID.String,
		AvatarURL:    row.AvatarURL.String,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
