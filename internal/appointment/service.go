package appointment

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/wichananm65/disma-site/internal/metrics"
)

var ErrInvalid = errors.New("name and email are required")

var validate = validator.New()

type Service struct {
	repo Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *zap.Logger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

// Create records a contact request. Name and email are mandatory.
func (s *Service) Create(ctx context.Context, f Form) (Appointment, error) {
	f.normalize()
	if err := validate.Struct(f); err != nil {
		return Appointment{}, ErrInvalid
	}

	a := Appointment{
		ID:        uuid.NewString(),
		Name:      f.Name,
		Phone:     optional(f.Phone),
		Email:     optional(f.Email),
		Message:   optional(f.Message),
		CreatedAt: s.now().UTC(),
	}
	err := s.repo.Create(ctx, a)
	metrics.RecordWrite("appointment", "create", err)
	if err != nil {
		s.log.Error("appointment write failed", zap.Error(err))
		return Appointment{}, err
	}
	s.log.Info("appointment received", zap.String("id", a.ID))
	return a, nil
}

func (s *Service) List(ctx context.Context) ([]Appointment, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("error fetching appointments", zap.Error(err))
		return nil, err
	}
	return list, nil
}
