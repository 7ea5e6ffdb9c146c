package types

import (
	ierr "github.com/greyskit/subtest/errors"
)

// SubscriptionStatus is the status of a subscription
type SubscriptionStatus string

const (
	SubscriptionStatusPending   SubscriptionStatus = "pending"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusOnHold    SubscriptionStatus = "on-hold"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

func (s SubscriptionStatus) Validate() error {
	allowed := []SubscriptionStatus{
		SubscriptionStatusPending,
		SubscriptionStatusActive,
		SubscriptionStatusOnHold,
		SubscriptionStatusCancelled,
		SubscriptionStatusExpired,
	}
	for _, status := range allowed {
		if s == status {
			return nil
		}
	}
	return ierr.NewError("invalid subscription status").
		WithHintf("Subscription status must be one of: pending, active, on-hold, cancelled, expired, got %s", s).
		Mark(ierr.ErrValidation)
}

// OrderStatus is the status of an order-like record
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusFailed     OrderStatus = "failed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) Validate() error {
	allowed := []OrderStatus{
		OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusCompleted,
		OrderStatusFailed,
		OrderStatusCancelled,
	}
	for _, status := range allowed {
		if s == status {
			return nil
		}
	}
	return ierr.NewError("invalid order status").
		WithHintf("Order status must be one of: pending, processing, completed, failed, cancelled, got %s", s).
		Mark(ierr.ErrValidation)
}

// IsTerminal returns true once no further payment transitions are allowed
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusFailed || s == OrderStatusCancelled
}

// OrderRelation is the typed link between an order and a subscription
type OrderRelation string

const (
	OrderRelationParent      OrderRelation = "parent"
	OrderRelationRenewal     OrderRelation = "renewal"
	OrderRelationSwitch      OrderRelation = "switch"
	OrderRelationResubscribe OrderRelation = "resubscribe"
)

func (r OrderRelation) String() string {
	return string(r)
}

func (r OrderRelation) Validate() error {
	allowed := []OrderRelation{
		OrderRelationParent,
		OrderRelationRenewal,
		OrderRelationSwitch,
		OrderRelationResubscribe,
	}
	for _, relation := range allowed {
		if r == relation {
			return nil
		}
	}
	return ierr.NewError("invalid order relation").
		WithHintf("Order relation must be one of: parent, renewal, switch, resubscribe, got %s", r).
		Mark(ierr.ErrValidation)
}
