package service

import (
	"context"
	"time"

	"github.com/greyskit/subtest/domain/order"
	"github.com/greyskit/subtest/domain/subscription"
	"github.com/greyskit/subtest/types"
)

// RenewalService derives renewal orders from a subscription and manages
// their payment outcomes
type RenewalService interface {
	// CreateRenewalOrder builds a renewal order for the subscription. When
	// a RenewalBuilder capability is configured it is delegated to;
	// otherwise line items are copied verbatim with no re-pricing.
	CreateRenewalOrder(ctx context.Context, sub *subscription.Subscription, req CreateRenewalRequest) (*order.Order, error)

	// TriggerEarlyRenewal is a convenience alias over CreateRenewalOrder
	// with default arguments, same capability precedence
	TriggerEarlyRenewal(ctx context.Context, sub *subscription.Subscription) (*order.Order, error)

	ProcessRenewalPayment(ctx context.Context, o *order.Order) error
	FailRenewalPayment(ctx context.Context, o *order.Order, reason string) error

	GetRenewalOrders(ctx context.Context, sub *subscription.Subscription) ([]*order.Order, error)

	// ScheduleNextPayment moves the subscription's next payment date and,
	// when a scheduler capability is present, enqueues a one-shot payment
	// job. Scheduling failures are best-effort and never surfaced.
	ScheduleNextPayment(ctx context.Context, sub *subscription.Subscription, date time.Time) error
}

type CreateRenewalRequest struct {
	Status types.OrderStatus `json:"status,omitempty"`
}

type renewalService struct {
	ServiceParams
}

func NewRenewalService(params ServiceParams) RenewalService {
	return &renewalService{
		ServiceParams: params,
	}
}

func (s *renewalService) CreateRenewalOrder(ctx context.Context, sub *subscription.Subscription, req CreateRenewalRequest) (*order.Order, error) {
	var renewal *order.Order
	var err error

	if s.RenewalBuilder != nil {
		renewal, err = s.RenewalBuilder.BuildRenewalOrder(ctx, sub)
		if err != nil {
			return nil, err
		}
	} else {
		renewal = s.buildRenewalOrder(ctx, sub)
	}

	status := req.Status
	if status == "" {
		status = types.OrderStatusPending
	}
	if err := renewal.UpdateStatus(status, ""); err != nil {
		return nil, err
	}

	if err := s.OrderRepo.Create(ctx, renewal); err != nil {
		return nil, err
	}

	s.Logger.Debugw("created renewal order",
		"order_id", renewal.ID,
		"subscription_id", sub.ID,
		"status", renewal.OrderStatus)

	return renewal, nil
}

// buildRenewalOrder is the manual fallback: a bare order with the
// subscription's line items copied verbatim and a renewal back-reference
func (s *renewalService) buildRenewalOrder(ctx context.Context, sub *subscription.Subscription) *order.Order {
	renewal := order.New(ctx)
	renewal.CustomerID = sub.CustomerID
	renewal.PaymentMethod = sub.PaymentMethod
	renewal.SubscriptionID = sub.ID
	renewal.Relation = types.OrderRelationRenewal

	for _, item := range sub.LineItems {
		renewal.AddLineItem(order.NewLineItem(item.ProductID, item.Quantity, item.Subtotal, item.Total))
	}
	renewal.CalculateTotals()

	return renewal
}

func (s *renewalService) TriggerEarlyRenewal(ctx context.Context, sub *subscription.Subscription) (*order.Order, error) {
	return s.CreateRenewalOrder(ctx, sub, CreateRenewalRequest{})
}

func (s *renewalService) ProcessRenewalPayment(ctx context.Context, o *order.Order) error {
	if err := o.PaymentComplete(); err != nil {
		return err
	}
	return s.OrderRepo.Update(ctx, o)
}

func (s *renewalService) FailRenewalPayment(ctx context.Context, o *order.Order, reason string) error {
	o.Fail(reason)
	return s.OrderRepo.Update(ctx, o)
}

func (s *renewalService) GetRenewalOrders(ctx context.Context, sub *subscription.Subscription) ([]*order.Order, error) {
	return s.OrderRepo.ListByRelation(ctx, sub.ID, types.OrderRelationRenewal)
}

func (s *renewalService) ScheduleNextPayment(ctx context.Context, sub *subscription.Subscription, date time.Time) error {
	if err := sub.UpdateDates(map[types.DateType]time.Time{
		types.DateTypeNextPayment: date,
	}); err != nil {
		return err
	}
	if err := s.SubRepo.Update(ctx, sub); err != nil {
		return err
	}

	if s.Scheduler != nil {
		err := s.Scheduler.ScheduleSingle(ctx, date, types.JobHookPayment, types.Metadata{
			"subscription_id": sub.ID,
		})
		if err != nil {
			s.Logger.Warnw("failed to schedule next payment job",
				"subscription_id", sub.ID,
				"error", err)
		}
	}

	return nil
}
