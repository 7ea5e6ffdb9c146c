package service

import (
	"context"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/greyskit/subtest/domain/subscription"
	ierr "github.com/greyskit/subtest/errors"
)

// RecurringCartService computes recurring-cart totals from products and
// subscription line items
type RecurringCartService interface {
	// CalculateTotals sums price x quantity over the resolvable cart
	// items. Unresolvable products are skipped.
	CalculateTotals(ctx context.Context, items []CartItem) (CartTotals, error)

	// GetRecurringCart snapshots the subscription's line items as cart rows
	GetRecurringCart(sub *subscription.Subscription) []CartRow

	// RecurringTotal returns the subscription's recurring total
	RecurringTotal(sub *subscription.Subscription) decimal.Decimal
}

type CartItem struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity,omitempty"`
}

type CartTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Total    decimal.Decimal `json:"total"`
}

type CartRow struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Total     decimal.Decimal `json:"total"`
}

type recurringCartService struct {
	ServiceParams
}

func NewRecurringCartService(params ServiceParams) RecurringCartService {
	return &recurringCartService{
		ServiceParams: params,
	}
}

func (s *recurringCartService) CalculateTotals(ctx context.Context, items []CartItem) (CartTotals, error) {
	subtotal := decimal.Zero
	total := decimal.Zero

	for _, item := range items {
		p, err := s.ProductRepo.Get(ctx, item.ProductID)
		if err != nil {
			if ierr.IsNotFound(err) {
				continue
			}
			return CartTotals{}, err
		}

		quantity := item.Quantity
		if quantity.IsZero() {
			quantity = decimal.NewFromInt(1)
		}

		line := p.Price().Mul(quantity)
		subtotal = subtotal.Add(line)
		total = total.Add(line)
	}

	return CartTotals{Subtotal: subtotal, Total: total}, nil
}

func (s *recurringCartService) GetRecurringCart(sub *subscription.Subscription) []CartRow {
	return lo.Map(sub.LineItems, func(item *subscription.LineItem, _ int) CartRow {
		return CartRow{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal,
			Total:     item.Total,
		}
	})
}

func (s *recurringCartService) RecurringTotal(sub *subscription.Subscription) decimal.Decimal {
	return sub.Total
}
