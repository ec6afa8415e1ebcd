package product

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

// SQLRepository stores products in the `products` table. Placeholders are
// numbered in order of appearance so the same statements run on sqlite3 and pgx.
type SQLRepository struct {
	db *sql.DB
}

const (
	listProductsQuery = `
		SELECT id, name, description, price, image_url, category, created_at
		FROM products
		ORDER BY created_at DESC
	`
	getProductByIDQuery = `
		SELECT id, name, description, price, image_url, category, created_at
		FROM products
		WHERE id = $1
	`
	insertProductQuery = `
		INSERT INTO products (id, name, description, price, image_url, category, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`
	updateProductQuery = `
		UPDATE products
		SET name = $1,
			description = $2,
			price = $3,
			image_url = $4,
			category = $5
		WHERE id = $6
	`
	deleteProductQuery = `DELETE FROM products WHERE id = $1`
)

func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	var description, price, imageURL, category sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &description, &price, &imageURL, &category, &p.CreatedAt); err != nil {
		return Product{}, err
	}
	p.Description = nullable(description)
	p.Price = nullable(price)
	p.ImageURL = nullable(imageURL)
	p.Category = nullable(category)
	return p, nil
}

func nullable(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func (r *SQLRepository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, listProductsQuery)
	if err != nil {
		return nil, errors.Wrap(err, "query products")
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan product")
		}
		out = append(out, p)
	}
	return out, errors.Wrap(rows.Err(), "iterate products")
}

func (r *SQLRepository) GetByID(ctx context.Context, id string) (Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, getProductByIDQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, errors.Wrap(err, "get product")
	}
	return p, nil
}

func (r *SQLRepository) Create(ctx context.Context, p Product) error {
	_, err := r.db.ExecContext(ctx, insertProductQuery,
		p.ID, p.Name, p.Description, p.Price, p.ImageURL, p.Category, p.CreatedAt)
	return errors.Wrap(err, "insert product")
}

func (r *SQLRepository) Update(ctx context.Context, p Product) error {
	res, err := r.db.ExecContext(ctx, updateProductQuery,
		p.Name, p.Description, p.Price, p.ImageURL, p.Category, p.ID)
	if err != nil {
		return errors.Wrap(err, "update product")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, deleteProductQuery, id)
	return errors.Wrap(err, "delete product")
}
