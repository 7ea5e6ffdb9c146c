package service

import (
	"context"
	"time"

	"github.com/greyskit/subtest/config"
	"github.com/greyskit/subtest/domain/order"
	"github.com/greyskit/subtest/domain/product"
	"github.com/greyskit/subtest/domain/scheduledjob"
	"github.com/greyskit/subtest/domain/subscription"
	"github.com/greyskit/subtest/logger"
)

// Clock is the time source for fixture creation. testutil.Clock satisfies
// it; nil falls back to the wall clock.
type Clock interface {
	Now() time.Time
}

// RenewalBuilder is the optional host-provided renewal-construction
// capability. When present the renewal service delegates to it instead of
// copying line items manually.
type RenewalBuilder interface {
	BuildRenewalOrder(ctx context.Context, sub *subscription.Subscription) (*order.Order, error)
}

// ServiceParams is the common dependency bundle for all services.
// Scheduler and RenewalBuilder are optional capabilities; nil selects the
// local fallback behaviour once at construction time.
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Clock  Clock

	SubRepo     subscription.Repository
	OrderRepo   order.Repository
	ProductRepo product.Repository

	Scheduler      scheduledjob.Scheduler
	RenewalBuilder RenewalBuilder
}

func (p ServiceParams) now() time.Time {
	if p.Clock != nil {
		return p.Clock.Now()
	}
	return time.Now().UTC()
}
