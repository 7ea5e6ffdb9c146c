package order

import (
	"github.com/shopspring/decimal"

	"github.com/greyskit/subtest/types"
)

// LineItem represents a line item in an order
type LineItem struct {
	ID        string          `db:"id" json:"id"`
	OrderID   string          `db:"order_id" json:"order_id"`
	ProductID string          `db:"product_id" json:"product_id"`
	Quantity  decimal.Decimal `db:"quantity" json:"quantity"`
	Subtotal  decimal.Decimal `db:"subtotal" json:"subtotal"`
	Total     decimal.Decimal `db:"total" json:"total"`

	types.BaseModel
}

// NewLineItem returns an order line item with a generated ID
func NewLineItem(productID string, quantity, subtotal, total decimal.Decimal) *LineItem {
	if total.IsZero() {
		total = subtotal
	}
	return &LineItem{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ORDER_LINE_ITEM),
		ProductID: productID,
		Quantity:  quantity,
		Subtotal:  subtotal,
		Total:     total,
	}
}
