package services

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

const (
	selectServiceColumns = `SELECT id, title, description, tag, icon_name, image_url, created_at FROM services`

	listServicesQuery  = selectServiceColumns + ` ORDER BY created_at DESC`
	getServiceQuery    = selectServiceColumns + ` WHERE id = $1`
	insertServiceQuery = `
		INSERT INTO services (id, title, description, tag, icon_name, image_url, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`
	updateServiceQuery = `
		UPDATE services
		SET title = $1, description = $2, tag = $3, icon_name = $4, image_url = $5
		WHERE id = $6
	`
	deleteServiceQuery = `DELETE FROM services WHERE id = $1`
)

type SQLRepository struct {
	db *sql.DB
}

func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func scanService(scan func(dest ...any) error) (Service, error) {
	var s Service
	var description, tag, iconName, imgURL sql.NullString
	if err := scan(&s.ID, &s.Title, &description, &tag, &iconName, &imgURL, &s.CreatedAt); err != nil {
		return Service{}, err
	}
	s.Description = fromNull(description)
	s.Tag = fromNull(tag)
	s.IconName = fromNull(iconName)
	s.ImageURL = fromNull(imgURL)
	return s, nil
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func (r *SQLRepository) List(ctx context.Context) ([]Service, error) {
	rows, err := r.db.QueryContext(ctx, listServicesQuery)
	if err != nil {
		return nil, errors.Wrap(err, "query services")
	}
	defer rows.Close()

	out := []Service{}
	for rows.Next() {
		s, err := scanService(rows.Scan)
		if err != nil {
			return nil, errors.Wrap(err, "scan service")
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate services")
	}
	return out, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id string) (Service, error) {
	s, err := scanService(r.db.QueryRowContext(ctx, getServiceQuery, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Service{}, ErrNotFound
	}
	if err != nil {
		return Service{}, errors.Wrap(err, "get service")
	}
	return s, nil
}

func (r *SQLRepository) Create(ctx context.Context, s Service) error {
	_, err := r.db.ExecContext(ctx, insertServiceQuery,
		s.ID, s.Title, s.Description, s.Tag, s.IconName, s.ImageURL, s.CreatedAt)
	return errors.Wrap(err, "insert service")
}

func (r *SQLRepository) Update(ctx context.Context, s Service) error {
	res, err := r.db.ExecContext(ctx, updateServiceQuery,
		s.Title, s.Description, s.Tag, s.IconName, s.ImageURL, s.ID)
	if err != nil {
		return errors.Wrap(err, "update service")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "update service")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, deleteServiceQuery, id)
	return errors.Wrap(err, "delete service")
}
