package services

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/wichananm65/disma-site/internal/metrics"
)

type ImageStore interface {
	Save(ctx context.Context, fh *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, url string)
}

var validate = validator.New()

// Catalog manages the service offerings and their images.
type Catalog struct {
	repo   Repository
	images ImageStore
	log    *zap.Logger
	now    func() time.Time
}

func NewCatalog(repo Repository, images ImageStore, log *zap.Logger) *Catalog {
	return &Catalog{repo: repo, images: images, log: log, now: time.Now}
}

func (c *Catalog) List(ctx context.Context) ([]Service, error) {
	all, err := c.repo.List(ctx)
	if err != nil {
		c.log.Error("error fetching services", zap.Error(err))
		return nil, err
	}
	return all, nil
}

// ListByTag returns services whose tag equals tag, ignoring case.
func (c *Catalog) ListByTag(ctx context.Context, tag string) ([]Service, error) {
	all, err := c.List(ctx)
	if err != nil || tag == "" {
		return all, err
	}
	out := make([]Service, 0, len(all))
	for _, s := range all {
		if s.Tag != nil && strings.EqualFold(*s.Tag, tag) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (c *Catalog) Get(ctx context.Context, id string) (Service, error) {
	return c.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (c *Catalog) Create(ctx context.Context, f Form, image *multipart.FileHeader) (Service, error) {
	f.normalize()
	if validate.Struct(f) != nil {
		return Service{}, ErrInvalid
	}

	s := Service{
		ID:          uuid.NewString(),
		Title:       f.Title,
		Description: optional(f.Description),
		Tag:         optional(f.Tag),
		IconName:    optional(f.IconName),
		CreatedAt:   c.now().UTC(),
	}
	if image != nil && image.Size > 0 {
		url, err := c.images.Save(ctx, image)
		if err != nil {
			return Service{}, c.fail("create", err)
		}
		s.ImageURL = &url
	}

	if err := c.repo.Create(ctx, s); err != nil {
		if s.ImageURL != nil {
			c.images.Delete(ctx, *s.ImageURL)
		}
		return Service{}, c.fail("create", err)
	}
	metrics.RecordWrite("service", "create", nil)
	return s, nil
}

func (c *Catalog) Update(ctx context.Context, id string, f Form, image *multipart.FileHeader) (Service, error) {
	id = strings.TrimSpace(id)
	f.normalize()
	if id == "" || validate.Struct(f) != nil {
		return Service{}, ErrInvalid
	}

	current, err := c.repo.GetByID(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		return Service{}, err
	case err != nil:
		return Service{}, c.fail("update", err)
	}

	next := current
	next.Title = f.Title
	next.Description = optional(f.Description)
	next.Tag = optional(f.Tag)
	next.IconName = optional(f.IconName)

	var uploaded string
	if image != nil && image.Size > 0 {
		if uploaded, err = c.images.Save(ctx, image); err != nil {
			return Service{}, c.fail("update", err)
		}
		next.ImageURL = &uploaded
	}

	if err := c.repo.Update(ctx, next); err != nil {
		if uploaded != "" {
			c.images.Delete(ctx, uploaded)
		}
		if errors.Is(err, ErrNotFound) {
			return Service{}, err
		}
		return Service{}, c.fail("update", err)
	}
	if uploaded != "" && current.ImageURL != nil {
		c.images.Delete(ctx, *current.ImageURL)
	}
	metrics.RecordWrite("service", "update", nil)
	return next, nil
}

func (c *Catalog) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalid
	}

	current, err := c.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return c.fail("delete", err)
	}

	if current.ImageURL != nil {
		c.images.Delete(ctx, *current.ImageURL)
	}
	if err := c.repo.Delete(ctx, id); err != nil {
		return c.fail("delete", err)
	}
	metrics.RecordWrite("service", "delete", nil)
	return nil
}

func (c *Catalog) fail(op string, err error) error {
	c.log.Error("service write failed", zap.String("op", op), zap.Error(err))
	metrics.RecordWrite("service", op, err)
	return err
}
