package subscription

import "context"

// Repository is the backing-store surface for subscriptions. Production
// integrations implement it over their persistence layer; testutil provides
// the in-memory implementation.
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	Get(ctx context.Context, id string) (*Subscription, error)
	Update(ctx context.Context, sub *Subscription) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Subscription, error)
}
