package category

import (
	"context"

	"go.uber.org/zap"
)

type Service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(r Repository, log *zap.Logger) *Service {
	return &Service{repo: r, log: log}
}

// List returns the product categories and service tags currently in use.
func (s *Service) List(ctx context.Context) (Facets, error) {
	categories, err := s.repo.ProductCategories(ctx)
	if err != nil {
		s.log.Error("error fetching product categories", zap.Error(err))
		return Facets{}, err
	}
	tags, err := s.repo.ServiceTags(ctx)
	if err != nil {
		s.log.Error("error fetching service tags", zap.Error(err))
		return Facets{}, err
	}
	return Facets{ProductCategories: categories, ServiceTags: tags}, nil
}
