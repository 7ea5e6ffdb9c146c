package testutil

import (
	"context"

	"github.com/greyskit/subtest/domain/product"
)

// InMemoryProductStore implements product.Repository
type InMemoryProductStore struct {
	*InMemoryStore[*product.Product]
}

func NewInMemoryProductStore() *InMemoryProductStore {
	return &InMemoryProductStore{
		InMemoryStore: NewInMemoryStore[*product.Product](),
	}
}

func (s *InMemoryProductStore) Create(ctx context.Context, p *product.Product) error {
	return s.InMemoryStore.Create(ctx, p.ID, p)
}

func (s *InMemoryProductStore) Get(ctx context.Context, id string) (*product.Product, error) {
	return s.InMemoryStore.Get(ctx, id)
}

func (s *InMemoryProductStore) Update(ctx context.Context, p *product.Product) error {
	return s.InMemoryStore.Update(ctx, p.ID, p)
}

func (s *InMemoryProductStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemoryProductStore) ListVariations(ctx context.Context, parentID string) ([]*product.Product, error) {
	return s.InMemoryStore.List(ctx, nil,
		func(ctx context.Context, p *product.Product, _ interface{}) bool {
			return p.ParentID == parentID && p.Type == product.ProductTypeVariation
		},
		func(i, j *product.Product) bool { return i.ID < j.ID })
}
