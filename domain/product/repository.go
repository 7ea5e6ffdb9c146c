package product

import "context"

// Repository is the backing-store surface for products
type Repository interface {
	Create(ctx context.Context, p *Product) error
	Get(ctx context.Context, id string) (*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error

	// ListVariations returns the variations of a variable product in
	// creation order
	ListVariations(ctx context.Context, parentID string) ([]*Product, error)
}
