package testutil

import (
	"context"

	"github.com/greyskit/subtest/domain/order"
	"github.com/greyskit/subtest/types"
)

// InMemoryOrderStore implements order.Repository
type InMemoryOrderStore struct {
	*InMemoryStore[*order.Order]
}

func NewInMemoryOrderStore() *InMemoryOrderStore {
	return &InMemoryOrderStore{
		InMemoryStore: NewInMemoryStore[*order.Order](),
	}
}

func (s *InMemoryOrderStore) Create(ctx context.Context, o *order.Order) error {
	return s.InMemoryStore.Create(ctx, o.ID, o)
}

func (s *InMemoryOrderStore) Get(ctx context.Context, id string) (*order.Order, error) {
	return s.InMemoryStore.Get(ctx, id)
}

func (s *InMemoryOrderStore) Update(ctx context.Context, o *order.Order) error {
	return s.InMemoryStore.Update(ctx, o.ID, o)
}

func (s *InMemoryOrderStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

// ListByRelation returns related orders in creation order, ULID order is
// creation order
func (s *InMemoryOrderStore) ListByRelation(ctx context.Context, subscriptionID string, relation types.OrderRelation) ([]*order.Order, error) {
	return s.InMemoryStore.List(ctx, nil,
		func(ctx context.Context, o *order.Order, _ interface{}) bool {
			return o.SubscriptionID == subscriptionID && o.Relation == relation
		},
		func(i, j *order.Order) bool { return i.ID < j.ID })
}
