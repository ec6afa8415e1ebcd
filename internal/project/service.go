package project

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wichananm65/disma-site/internal/metrics"
)

type ImageStore interface {
	Save(ctx context.Context, fh *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, url string)
}

var validate = validator.New()

// Service orchestrates project persistence and the images attached to them.
type Service struct {
	repo   Repository
	images ImageStore
	log    *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, images ImageStore, log *zap.Logger) *Service {
	return &Service{repo: repo, images: images, log: log, now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("error fetching projects", zap.Error(err))
		return nil, err
	}
	return projects, nil
}

func (s *Service) Get(ctx context.Context, id string) (Project, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) Create(ctx context.Context, f Form, image *multipart.FileHeader) (Project, error) {
	f.normalize()
	if err := validate.Struct(f); err != nil {
		return Project{}, ErrInvalid
	}

	p := Project{
		ID:          uuid.NewString(),
		Title:       f.Title,
		Description: optional(f.Description),
		CreatedAt:   s.now().UTC(),
	}
	if image != nil && image.Size > 0 {
		url, err := s.images.Save(ctx, image)
		if err != nil {
			return Project{}, s.fail("create", err)
		}
		p.ImageURL = &url
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if p.ImageURL != nil {
			s.images.Delete(ctx, *p.ImageURL)
		}
		return Project{}, s.fail("create", err)
	}
	metrics.RecordWrite("project", "create", nil)
	return p, nil
}

func (s *Service) Update(ctx context.Context, id string, f Form, image *multipart.FileHeader) (Project, error) {
	id = strings.TrimSpace(id)
	f.normalize()
	if id == "" || validate.Struct(f) != nil {
		return Project{}, ErrInvalid
	}

	existing, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Project{}, err
	}
	if err != nil {
		return Project{}, s.fail("update", err)
	}

	updated := existing
	updated.Title = f.Title
	updated.Description = optional(f.Description)

	var uploaded string
	if image != nil && image.Size > 0 {
		if uploaded, err = s.images.Save(ctx, image); err != nil {
			return Project{}, s.fail("update", err)
		}
		updated.ImageURL = &uploaded
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		if uploaded != "" {
			s.images.Delete(ctx, uploaded)
		}
		if errors.Is(err, ErrNotFound) {
			return Project{}, err
		}
		return Project{}, s.fail("update", err)
	}
	// the row now points at the new file, so the old one can go
	if uploaded != "" && existing.ImageURL != nil {
		s.images.Delete(ctx, *existing.ImageURL)
	}
	metrics.RecordWrite("project", "update", nil)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalid
	}

	existing, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return s.fail("delete", err)
	}

	if existing.ImageURL != nil {
		s.images.Delete(ctx, *existing.ImageURL)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.fail("delete", err)
	}
	metrics.RecordWrite("project", "delete", nil)
	return nil
}

func (s *Service) fail(op string, err error) error {
	s.log.Error("project write failed", zap.String("op", op), zap.Error(err))
	metrics.RecordWrite("project", op, err)
	return err
}
