package appointment

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

type Repository interface {
	Create(ctx context.Context, a Appointment) error
	List(ctx context.Context) ([]Appointment, error)
}

type InMemoryRepository struct {
	mu      sync.Mutex
	storage []Appointment
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Create(ctx context.Context, a Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storage = append(r.storage, a)
	return nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]Appointment(nil), r.storage...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

const (
	insertAppointmentQuery = `
		INSERT INTO appointments (id, name, phone, email, message, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`
	listAppointmentsQuery = `SELECT id, name, phone, email, message, created_at FROM appointments ORDER BY created_at DESC`
)

type SQLRepository struct {
	db *sql.DB
}

func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, a Appointment) error {
	_, err := r.db.ExecContext(ctx, insertAppointmentQuery, a.ID, a.Name, a.Phone, a.Email, a.Message, a.CreatedAt)
	return errors.Wrap(err, "insert appointment")
}

func (r *SQLRepository) List(ctx context.Context) ([]Appointment, error) {
	rows, err := r.db.QueryContext(ctx, listAppointmentsQuery)
	if err != nil {
		return nil, errors.Wrap(err, "query appointments")
	}
	defer rows.Close()

	out := []Appointment{}
	for rows.Next() {
		var (
			a                     Appointment
			phone, email, message sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.Name, &phone, &email, &message, &a.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan appointment")
		}
		if phone.Valid {
			a.Phone = &phone.String
		}
		if email.Valid {
			a.Email = &email.String
		}
		if message.Valid {
			a.Message = &message.String
		}
		out = append(out, a)
	}
	return out, errors.Wrap(rows.Err(), "iterate appointments")
}
