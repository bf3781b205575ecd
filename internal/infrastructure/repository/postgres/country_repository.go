package postgres

import (
	"context"
	"fmt"

	"github.com/giladtamam/football-insights-sub001/internal/domain/country"
	qb "github.com/giladtamam/football-insights-sub001/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type CountryRepository struct {
	db *sqlx.DB
}

func NewCountryRepository(db *sqlx.DB) *CountryRepository {
	return &CountryRepository{db: db}
}

func (r *CountryRepository) Upsert(ctx context.Context, record country.Country) error {
	model := countryInsertModel{
		ID:   record.ID,
		Name: record.Name,
		Code: record.Code,
		Flag: record.Flag,
	}

	query, args, err := qb.InsertModel("countries", model, `ON CONFLICT (id)
DO UPDATE SET
    name = EXCLUDED.name,
    code = EXCLUDED.code,
    flag = EXCLUDED.flag,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert country query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert country: %w", err)
	}
	return nil
}

func (r *CountryRepository) List(ctx context.Context) ([]country.Country, error) {
	query, args, err := qb.Select("*").From("countries").
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select countries query: %w", err)
	}

	var rows []countryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select countries: %w", err)
	}

	out := make([]country.Country, 0, len(rows))
	for _, row := range rows {
		out = append(out, country.Country{
			ID:   row.ID,
			Name: row.Name,
			Code: row.Code,
			Flag: row.Flag,
		})
	}
	return out, nil
}
