package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/greyskit/subtest/errors"
	"github.com/greyskit/subtest/types"
)

// Order is an order-like record related to a subscription through a typed
// relation. Renewal orders carry Relation=renewal and a back-reference to
// the subscription they renew; the subscription itself never holds them.
type Order struct {
	// ID is the unique identifier for the order
	ID string `db:"id" json:"id"`

	// OrderNumber is the short human-readable order reference
	OrderNumber string `db:"order_number" json:"order_number"`

	// OrderStatus is the payment status of the order
	OrderStatus types.OrderStatus `db:"order_status" json:"order_status"`

	// CustomerID is the identifier for the customer in our system
	CustomerID string `db:"customer_id" json:"customer_id"`

	// PaymentMethod is the gateway identifier the order was paid with
	PaymentMethod string `db:"payment_method" json:"payment_method"`

	// SubscriptionID is the subscription this order is related to
	SubscriptionID string `db:"subscription_id" json:"subscription_id"`

	// Relation is the typed link back to the subscription
	Relation types.OrderRelation `db:"relation" json:"relation"`

	// LineItems are the items billed on this order
	LineItems []*LineItem `json:"line_items"`

	// Total is the order total across all line items
	Total decimal.Decimal `db:"total" json:"total"`

	// Notes is the audit trail appended to by status transitions
	Notes []string `json:"notes,omitempty"`

	types.BaseModel
}

// New returns a bare pending order with a generated ID
func New(ctx context.Context) *Order {
	return &Order{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ORDER),
		OrderNumber: types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_ORDER),
		OrderStatus: types.OrderStatusPending,
		Total:       decimal.Zero,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
}

// AddLineItem appends an item to the order
func (o *Order) AddLineItem(item *LineItem) {
	item.OrderID = o.ID
	o.LineItems = append(o.LineItems, item)
}

// CalculateTotals recomputes the order total from the line items
func (o *Order) CalculateTotals() {
	total := decimal.Zero
	for _, item := range o.LineItems {
		total = total.Add(item.Total)
	}
	o.Total = total
	o.UpdatedAt = time.Now().UTC()
}

// UpdateStatus transitions the order status and records the note
func (o *Order) UpdateStatus(status types.OrderStatus, note string) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.OrderStatus = status
	if note != "" {
		o.Notes = append(o.Notes, note)
	}
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// PaymentComplete marks the order paid. Terminal orders stay put.
func (o *Order) PaymentComplete() error {
	if o.OrderStatus.IsTerminal() {
		return ierr.NewError("order already settled").
			WithHintf("Order %s is %s and cannot complete payment", o.ID, o.OrderStatus).
			Mark(ierr.ErrInvalidOperation)
	}
	o.OrderStatus = types.OrderStatusCompleted
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// Fail transitions the order to the terminal failed status with an
// optional free-text reason
func (o *Order) Fail(reason string) {
	o.OrderStatus = types.OrderStatusFailed
	if reason != "" {
		o.Notes = append(o.Notes, reason)
	}
	o.UpdatedAt = time.Now().UTC()
}
