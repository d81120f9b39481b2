package catalog

import (
	"context"
	"fmt"

	"shopsmart/domain"
)

// ProductRepository contract interface
type ProductRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
	FindActive(ctx context.Context, categoryID uint64) ([]domain.Product, error)
}

type CategoryRepository interface {
	FindAll(ctx context.Context) ([]domain.Category, error)
}

// Service is the read-only catalog surface. The catalog itself is owned
// elsewhere; this service only lists what the recommender can score.
type Service struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
}

func NewService(productRepo ProductRepository, categoryRepo CategoryRepository) *Service {
	return &Service{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *Service) GetProduct(ctx context.Context, id uint64) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	return s.productRepo.FindByID(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context, categoryID uint64) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.productRepo.FindActive(ctx, categoryID)
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.categoryRepo.FindAll(ctx)
}
