package product

import "context"

type StubRepository struct {
	data map[string]Product
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[string]Product{}}
}

func (s *StubRepository) Store(ctx context.Context, product Product) error {
	s.data[product.ID] = product
	return nil
}

func (s *StubRepository) Get(ctx context.Context, id string) (Product, error) {
	product, ok := s.data[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return product, nil
}

func (s *StubRepository) List(ctx context.Context, vendorUid string, category string) ([]Product, error) {
	products := make([]Product, 0, len(s.data))
	for _, product := range s.data {
		if vendorUid != "" && product.VendorID != vendorUid {
			continue
		}
		if category != "" && product.Category != category {
			continue
		}
		products = append(products, product)
	}
	return products, nil
}

func (s *StubRepository) Update(ctx context.Context, product Product) error {
	if _, ok := s.data[product.ID]; !ok {
		return ErrNotFound
	}
	s.data[product.ID] = product
	return nil
}

func (s *StubRepository) Delete(ctx context.Context, id string) error {
	if _, ok := s.data[id]; !ok {
		return ErrNotFound
	}
	delete(s.data, id)
	return nil
}

func (s *StubRepository) Cleanup() {
	s.data = map[string]Product{}
}
