package category

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

type Repository interface {
	ProductCategories(ctx context.Context) ([]Facet, error)
	ServiceTags(ctx context.Context) ([]Facet, error)
}

const (
	productCategoriesQuery = `SELECT category, COUNT(*) FROM products WHERE category IS NOT NULL GROUP BY category ORDER BY category`
	serviceTagsQuery       = `SELECT tag, COUNT(*) FROM services WHERE tag IS NOT NULL GROUP BY tag ORDER BY tag`
)

type SQLRepository struct {
	db *sql.DB
}

func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) ProductCategories(ctx context.Context) ([]Facet, error) {
	return r.facets(ctx, productCategoriesQuery)
}

func (r *SQLRepository) ServiceTags(ctx context.Context) ([]Facet, error) {
	return r.facets(ctx, serviceTagsQuery)
}

func (r *SQLRepository) facets(ctx context.Context, query string) ([]Facet, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "query facets")
	}
	defer rows.Close()

	out := make([]Facet, 0)
	for rows.Next() {
		var f Facet
		if err := rows.Scan(&f.Name, &f.Count); err != nil {
			return nil, errors.Wrap(err, "scan facet")
		}
		out = append(out, f)
	}
	return out, errors.Wrap(rows.Err(), "iterate facets")
}
