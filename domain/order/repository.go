package order

import (
	"context"

	"github.com/greyskit/subtest/types"
)

// Repository is the backing-store surface for orders
type Repository interface {
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, id string) (*Order, error)
	Update(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id string) error

	// ListByRelation returns all orders linked to the subscription through
	// the given relation, in store order
	ListByRelation(ctx context.Context, subscriptionID string, relation types.OrderRelation) ([]*Order, error)
}
