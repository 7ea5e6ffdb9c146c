package assert

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/greyskit/subtest/domain/order"
	"github.com/greyskit/subtest/domain/subscription"
	"github.com/greyskit/subtest/testutil"
	"github.com/greyskit/subtest/types"
)

// captureT records failures instead of reporting them
type captureT struct {
	failed bool
	msg    string
}

func (c *captureT) Errorf(format string, args ...interface{}) {
	c.failed = true
	c.msg = fmt.Sprintf(format, args...)
}

func newSubscription(t *testing.T) *subscription.Subscription {
	t.Helper()
	sub := subscription.New(context.Background())
	sub.StartDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return sub
}

func TestStatusAssertions(t *testing.T) {
	sub := newSubscription(t)

	c := &captureT{}
	require.True(t, SubscriptionActive(c, sub))
	require.False(t, c.failed)

	require.False(t, SubscriptionCancelled(c, sub))
	require.True(t, c.failed)
	require.Contains(t, c.msg, "cancelled")

	sub.SubscriptionStatus = types.SubscriptionStatusOnHold
	require.True(t, SubscriptionOnHold(&captureT{}, sub))
	require.False(t, SubscriptionPending(&captureT{}, sub))
	require.False(t, SubscriptionExpired(&captureT{}, sub))
}

func TestCustomMessageOverride(t *testing.T) {
	sub := newSubscription(t)
	sub.SubscriptionStatus = types.SubscriptionStatusPending

	c := &captureT{}
	SubscriptionActive(c, sub, "subscription %s should be active after checkout", sub.ID)
	require.True(t, c.failed)
	require.Contains(t, c.msg, "should be active after checkout")
	require.Contains(t, c.msg, sub.ID)
}

func TestSubscriptionSchedule(t *testing.T) {
	sub := newSubscription(t)
	sub.BillingPeriod = types.BILLING_PERIOD_ANNUAL
	sub.BillingInterval = 2

	require.True(t, SubscriptionSchedule(&captureT{}, types.BILLING_PERIOD_ANNUAL, 2, sub))

	// both period and interval must match
	require.False(t, SubscriptionSchedule(&captureT{}, types.BILLING_PERIOD_ANNUAL, 1, sub))
	require.False(t, SubscriptionSchedule(&captureT{}, types.BILLING_PERIOD_MONTHLY, 2, sub))
}

func TestNextPaymentDateDayGranularity(t *testing.T) {
	sub := newSubscription(t)
	expected := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	// unset date fails
	require.False(t, NextPaymentDate(&captureT{}, expected, sub))

	// 2024-01-15 23:59:00 matches 2024-01-15
	stored := time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC)
	require.NoError(t, sub.UpdateDates(map[types.DateType]time.Time{
		types.DateTypeNextPayment: stored,
	}))
	require.True(t, NextPaymentDate(&captureT{}, expected, sub))

	// 2024-01-16 00:00:01 does not
	stored = time.Date(2024, 1, 16, 0, 0, 1, 0, time.UTC)
	require.NoError(t, sub.UpdateDates(map[types.DateType]time.Time{
		types.DateTypeNextPayment: stored,
	}))
	c := &captureT{}
	require.False(t, NextPaymentDate(c, expected, sub))
	require.Contains(t, c.msg, "2024-01-15")
	require.Contains(t, c.msg, "2024-01-16")
}

func TestSubscriptionTotalCoercion(t *testing.T) {
	sub := newSubscription(t)
	sub.AddLineItem(subscription.NewLineItem("prod_a", decimal.NewFromInt(3), decimal.RequireFromString("45.00"), decimal.Zero))
	sub.CalculateTotals()

	// "45" and "45.00" compare equal
	require.True(t, SubscriptionTotal(&captureT{}, "45", sub))
	require.True(t, SubscriptionTotal(&captureT{}, "45.00", sub))
	require.False(t, SubscriptionTotal(&captureT{}, "45.01", sub))

	c := &captureT{}
	require.False(t, SubscriptionTotal(c, "not-a-number", sub))
	require.Contains(t, c.msg, "not-a-number")
}

func TestTrialAndFlags(t *testing.T) {
	sub := newSubscription(t)
	require.False(t, SubscriptionHasTrial(&captureT{}, sub))
	require.False(t, RequiresManualRenewal(&captureT{}, sub))
	require.False(t, HasEndDate(&captureT{}, sub))
	require.False(t, HasParentOrder(&captureT{}, sub))

	require.NoError(t, sub.UpdateDates(map[types.DateType]time.Time{
		types.DateTypeTrialEnd: sub.StartDate.AddDate(0, 0, 14),
		types.DateTypeEnd:      sub.StartDate.AddDate(1, 0, 0),
	}))
	sub.IsManual = true
	sub.ParentOrderID = "order_1"

	require.True(t, SubscriptionHasTrial(&captureT{}, sub))
	require.True(t, RequiresManualRenewal(&captureT{}, sub))
	require.True(t, HasEndDate(&captureT{}, sub))
	require.True(t, HasParentOrder(&captureT{}, sub))
}

func TestContainsProduct(t *testing.T) {
	sub := newSubscription(t)
	sub.AddLineItem(subscription.NewLineItem("prod_a", decimal.NewFromInt(1), decimal.NewFromInt(10), decimal.Zero))

	require.True(t, ContainsProduct(&captureT{}, "prod_a", sub))

	c := &captureT{}
	require.False(t, ContainsProduct(c, "prod_b", sub))
	require.Contains(t, c.msg, "prod_b")
}

func TestPaymentMethod(t *testing.T) {
	sub := newSubscription(t)
	sub.PaymentMethod = "stripe"
	require.True(t, PaymentMethod(&captureT{}, "stripe", sub))
	require.False(t, PaymentMethod(&captureT{}, "paypal", sub))
}

func TestRenewalAssertions(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewInMemoryOrderStore()
	sub := newSubscription(t)

	require.False(t, RenewalOrderCreated(&captureT{}, ctx, repo, sub))
	require.True(t, RenewalCount(&captureT{}, ctx, repo, 0, sub))

	renewal := order.New(ctx)
	renewal.SubscriptionID = sub.ID
	renewal.Relation = types.OrderRelationRenewal
	require.NoError(t, repo.Create(ctx, renewal))

	// parent orders don't count towards renewals
	parent := order.New(ctx)
	parent.SubscriptionID = sub.ID
	parent.Relation = types.OrderRelationParent
	require.NoError(t, repo.Create(ctx, parent))

	require.True(t, RenewalOrderCreated(&captureT{}, ctx, repo, sub))
	require.True(t, RenewalCount(&captureT{}, ctx, repo, 1, sub))

	c := &captureT{}
	require.False(t, RenewalCount(c, ctx, repo, 2, sub))
	require.Contains(t, c.msg, "expected 2 renewal orders, got 1")
}
