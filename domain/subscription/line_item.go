package subscription

import (
	"github.com/shopspring/decimal"

	ierr "github.com/greyskit/subtest/errors"
	"github.com/greyskit/subtest/types"
)

// LineItem represents a recurring line item in a subscription
type LineItem struct {
	ID             string          `db:"id" json:"id"`
	SubscriptionID string          `db:"subscription_id" json:"subscription_id"`
	ProductID      string          `db:"product_id" json:"product_id"`
	Quantity       decimal.Decimal `db:"quantity" json:"quantity"`
	Subtotal       decimal.Decimal `db:"subtotal" json:"subtotal"`
	Total          decimal.Decimal `db:"total" json:"total"`

	types.BaseModel
}

// NewLineItem returns a line item with a generated ID. Total defaults to
// subtotal when zero-valued.
func NewLineItem(productID string, quantity, subtotal, total decimal.Decimal) *LineItem {
	if total.IsZero() {
		total = subtotal
	}
	return &LineItem{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION_LINE_ITEM),
		ProductID: productID,
		Quantity:  quantity,
		Subtotal:  subtotal,
		Total:     total,
	}
}

func (li *LineItem) Validate() error {
	if li.ProductID == "" {
		return ierr.NewError("product id is required").
			WithHint("Line item must reference a product").
			Mark(ierr.ErrValidation)
	}
	if !li.Quantity.IsPositive() {
		return ierr.NewError("quantity must be positive").
			WithHintf("Line item quantity %s is invalid", li.Quantity.String()).
			Mark(ierr.ErrValidation)
	}
	if li.Subtotal.IsNegative() || li.Total.IsNegative() {
		return ierr.NewError("amounts must be non-negative").
			WithHint("Line item subtotal and total may not be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}
