package project

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

type SQLRepository struct {
	db *sql.DB
}

const (
	listProjectsQuery   = `SELECT id, title, description, image_url, created_at FROM projects ORDER BY created_at DESC`
	getProjectByIDQuery = `SELECT id, title, description, image_url, created_at FROM projects WHERE id = $1`
	insertProjectQuery  = `
		INSERT INTO projects (id, title, description, image_url, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`
	updateProjectQuery = `UPDATE projects SET title = $1, description = $2, image_url = $3 WHERE id = $4`
	deleteProjectQuery = `DELETE FROM projects WHERE id = $1`
)

func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (Project, error) {
	var (
		p           Project
		description sql.NullString
		imageURL    sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Title, &description, &imageURL, &p.CreatedAt); err != nil {
		return Project{}, err
	}
	if description.Valid {
		p.Description = &description.String
	}
	if imageURL.Valid {
		p.ImageURL = &imageURL.String
	}
	return p, nil
}

func (r *SQLRepository) List(ctx context.Context) ([]Project, error) {
	rows, err := r.db.QueryContext(ctx, listProjectsQuery)
	if err != nil {
		return nil, errors.Wrap(err, "query projects")
	}
	defer rows.Close()

	out := make([]Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan project")
		}
		out = append(out, p)
	}
	return out, errors.Wrap(rows.Err(), "iterate projects")
}

func (r *SQLRepository) GetByID(ctx context.Context, id string) (Project, error) {
	p, err := scanProject(r.db.QueryRowContext(ctx, getProjectByIDQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Project{}, ErrNotFound
	}
	return p, errors.Wrap(err, "get project")
}

func (r *SQLRepository) Create(ctx context.Context, p Project) error {
	_, err := r.db.ExecContext(ctx, insertProjectQuery, p.ID, p.Title, p.Description, p.ImageURL, p.CreatedAt)
	return errors.Wrap(err, "insert project")
}

func (r *SQLRepository) Update(ctx context.Context, p Project) error {
	res, err := r.db.ExecContext(ctx, updateProjectQuery, p.Title, p.Description, p.ImageURL, p.ID)
	if err != nil {
		return errors.Wrap(err, "update project")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, deleteProjectQuery, id)
	return errors.Wrap(err, "delete project")
}
