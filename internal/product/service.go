package product

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

// ImageStore ingests uploaded images and removes them again by URL.
type ImageStore interface {
	Save(ctx context.Context, fh *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, url string)
}

var validate = validator.New()

type Service struct {
	repo   Repository
	images ImageStore
	log    *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, images ImageStore, log *zap.Logger) *Service {
	return &Service{repo: repo, images: images, log: log, now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("error fetching products", zap.Error(err))
		return nil, err
	}
	return products, nil
}

func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

// Create stores a new product. A blank name yields ErrInvalid without touching
// the store; a failed upload aborts before any row is written.
func (s *Service) Create(ctx context.Context, f Form, image *multipart.FileHeader) (Product, error) {
	f.normalize()
	if err := validate.Struct(f); err != nil {
		return Product{}, ErrInvalid
	}

	p := Product{
		ID:          uuid.NewString(),
		Name:        f.Name,
		Description: optional(f.Description),
		Price:       optional(f.Price),
		Category:    optional(f.Category),
		CreatedAt:   s.now().UTC(),
	}

	if hasImage(image) {
		url, err := s.images.Save(ctx, image)
		if err != nil {
			return Product{}, s.fail("create", err)
		}
		p.ImageURL = &url
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if p.ImageURL != nil {
			s.images.Delete(ctx, *p.ImageURL)
		}
		return Product{}, s.fail("create", err)
	}
	metrics.RecordWrite("product", "create", nil)
	return p, nil
}

// Update replaces the mutable fields of an existing product. When a new image
// is supplied the previous file is removed once the row points at the new one.
func (s *Service) Update(ctx context.Context, id string, f Form, image *multipart.FileHeader) (Product, error) {
	id = strings.TrimSpace(id)
	f.normalize()
	if id == "" {
		return Product{}, ErrInvalid
	}
	if err := validate.Struct(f); err != nil {
		return Product{}, ErrInvalid
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Product{}, err
		}
		return Product{}, s.fail("update", err)
	}

	updated := existing
	updated.Name = f.Name
	updated.Description = optional(f.Description)
	updated.Price = optional(f.Price)
	updated.Category = optional(f.Category)

	var uploaded string
	if hasImage(image) {
		url, err := s.images.Save(ctx, image)
		if err != nil {
			return Product{}, s.fail("update", err)
		}
		uploaded = url
		updated.ImageURL = &uploaded
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		if uploaded != "" {
			s.images.Delete(ctx, uploaded)
		}
		if errors.Is(err, ErrNotFound) {
			return Product{}, err
		}
		return Product{}, s.fail("update", err)
	}
	if uploaded != "" && existing.ImageURL != nil {
		s.images.Delete(ctx, *existing.ImageURL)
	}
	metrics.RecordWrite("product", "update", nil)
	return updated, nil
}

// Delete removes the product and its image. Unknown ids are a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalid
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return s.fail("delete", err)
	}

	if existing.ImageURL != nil {
		s.images.Delete(ctx, *existing.ImageURL)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.fail("delete", err)
	}
	metrics.RecordWrite("product", "delete", nil)
	return nil
}

func (s *Service) fail(op string, err error) error {
	s.log.Error("product write failed", zap.String("op", op), zap.Error(err))
	metrics.RecordWrite("product", op, err)
	return err
}

func hasImage(fh *multipart.FileHeader) bool {
	return fh != nil && fh.Size > 0
}
