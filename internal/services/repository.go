package services

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var (
	ErrNotFound = errors.New("service not found")
	ErrInvalid  = errors.New("service title is required")
)

type Repository interface {
	List(ctx context.Context) ([]Service, error)
	GetByID(ctx context.Context, id string) (Service, error)
	Create(ctx context.Context, s Service) error
	Update(ctx context.Context, s Service) error
	Delete(ctx context.Context, id string) error
}

type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Service
}

func NewInMemoryRepository(seed []Service) *InMemoryRepository {
	return &InMemoryRepository{storage: append([]Service(nil), seed...)}
}

func (r *InMemoryRepository) List(ctx context.Context) ([]Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]Service(nil), r.storage...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.storage {
		if s.ID == id {
			return s, nil
		}
	}
	return Service{}, ErrNotFound
}

func (r *InMemoryRepository) Create(ctx context.Context, s Service) error {
	r.mu.Lock()
	r.storage = append(r.storage, s)
	r.mu.Unlock()
	return nil
}

func (r *InMemoryRepository) Update(ctx context.Context, s Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == s.ID {
			r.storage[i] = s
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return nil
}
