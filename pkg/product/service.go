package product

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, product Product) (Product, error)
	Get(ctx context.Context, id string) (Product, error)
	List(ctx context.Context, vendorUid string, category string) ([]Product, error)
	Update(ctx context.Context, product Product) (Product, error)
	Delete(ctx context.Context, id string) error
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Create(ctx context.Context, product Product) (Product, error) {
	if err := product.Validate(); err != nil {
		return Product{}, err
	}
	product.ID = uuid.New().String()
	if err := s.repo.Store(ctx, product); err != nil {
		return Product{}, err
	}
	return product, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (Product, error) {
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) List(ctx context.Context, vendorUid string, category string) ([]Product, error) {
	return s.repo.List(ctx, vendorUid, category)
}

func (s *ServiceImpl) Update(ctx context.Context, product Product) (Product, error) {
	if err := product.Validate(); err != nil {
		return Product{}, err
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return Product{}, err
	}
	return product, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
