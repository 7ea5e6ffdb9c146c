// Package assert provides named assertions over subscription fixtures.
// Every helper reports through the testify-compatible TestingT interface
// and returns true on success, so the helpers compose with any test runner
// that exposes Errorf.
package assert

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/greyskit/subtest/domain/order"
	"github.com/greyskit/subtest/domain/subscription"
	"github.com/greyskit/subtest/types"
)

// TestingT is the minimal assertion surface, satisfied by *testing.T and
// testify suites alike
type TestingT interface {
	Errorf(format string, args ...interface{})
}

type tHelper interface {
	Helper()
}

// failf reports a failure using the caller-supplied message when present,
// else the default
func failf(t TestingT, defaultMsg string, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	msg := messageFromMsgAndArgs(msgAndArgs...)
	if msg == "" {
		msg = defaultMsg
	}
	t.Errorf("%s", msg)
	return false
}

func messageFromMsgAndArgs(msgAndArgs ...interface{}) string {
	switch len(msgAndArgs) {
	case 0:
		return ""
	case 1:
		if s, ok := msgAndArgs[0].(string); ok {
			return s
		}
		return fmt.Sprintf("%+v", msgAndArgs[0])
	default:
		if format, ok := msgAndArgs[0].(string); ok {
			return fmt.Sprintf(format, msgAndArgs[1:]...)
		}
		return fmt.Sprintf("%+v", msgAndArgs)
	}
}

// SubscriptionStatus asserts the subscription has the expected status
func SubscriptionStatus(t TestingT, expected types.SubscriptionStatus, sub *subscription.Subscription, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if sub.SubscriptionStatus == expected {
		return true
	}
	return failf(t, fmt.Sprintf("expected subscription status %q, got %q", expected, sub.SubscriptionStatus), msgAndArgs...)
}

// SubscriptionActive asserts the subscription is active
func SubscriptionActive(t TestingT, sub *subscription.Subscription, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return SubscriptionStatus(t, types.SubscriptionStatusActive, sub, msgAndArgs...)
}

// SubscriptionPending asserts the subscription is pending
func SubscriptionPending(t TestingT, sub *subscription.Subscription, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return SubscriptionStatus(t, types.SubscriptionStatusPending, sub, msgAndArgs...)
}

// SubscriptionOnHold asserts the subscription is on hold
func SubscriptionOnHold(t TestingT, sub *subscription.Subscription, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return SubscriptionStatus(t, types.SubscriptionStatusOnHold, sub, msgAndArgs...)
}

// SubscriptionCancelled asserts the subscription is cancelled
func SubscriptionCancelled(t TestingT, sub *subscription.Subscription, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return SubscriptionStatus(t, types.SubscriptionStatusCancelled, sub, msgAndArgs...)
}

// SubscriptionExpired asserts the subscription is expired
func SubscriptionExpired(t TestingT, sub *subscription.Subscription, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return SubscriptionStatus(t, types.SubscriptionStatusExpired, sub, msgAndArgs...)
}

// SubscriptionSchedule asserts both the billing period and the billing
// interval match
func SubscriptionSchedule(t TestingT, period types.BillingPeriod, interval int, sub *subscription.Subscription, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if sub.BillingPeriod == period && sub.BillingInterval == interval {
		return true
	}
	return failf(t, fmt.Sprintf("expected billing schedule (%s, %d), got (%s, %d)",
		period, interval, sub.BillingPeriod, sub.BillingInterval), msgAndArgs...)
}

// SubscriptionHasTrial asserts a trial end date is set
func SubscriptionHasTrial(t TestingT, sub *subscription.Subscription, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if sub.HasTrial() {
		return true
	}
	return failf(t, "expected subscription to have a trial period", msgAndArgs...)
}

// RequiresManualRenewal asserts the manual-renewal flag is set
func RequiresManualRenewal(t TestingT, sub *subscription.Subscription, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if sub.IsManual {
		return true
	}
	return failf(t, "expected subscription to require manual renewal", msgAndArgs...)
}

// NextPaymentDate asserts the next payment date at UTC day granularity,
// time-of-day is ignored for stability across slow-running suites
func NextPaymentDate(t TestingT, expected time.Time, sub *subscription.Subscription, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	next := sub.GetDate(types.DateTypeNextPayment)
	if !next.IsZero() && types.SameDay(expected, next) {
		return true
	}
	return failf(t, fmt.Sprintf("expected next payment date %s, got %s",
		expected.UTC().Format("2006-01-02"), formatDay(next)), msgAndArgs...)
}

// SubscriptionTotal asserts the recurring total. The expected value is a
// decimal string so "45" and "45.00" compare equal.
func SubscriptionTotal(t TestingT, expected string, sub *subscription.Subscription, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	want, err := decimal.NewFromString(expected)
	if err != nil {
		return failf(t, fmt.Sprintf("invalid expected total %q: %v", expected, err), msgAndArgs...)
	}
	if sub.Total.Equal(want) {
		return true
	}
	return failf(t, fmt.Sprintf("expected subscription total %s, got %s",
		want.String(), sub.Total.String()), msgAndArgs...)
}

// HasParentOrder asserts the subscription has a parent order reference
func HasParentOrder(t TestingT, sub *subscription.Subscription, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if sub.ParentOrderID != "" {
		return true
	}
	return failf(t, "expected subscription to have a parent order", msgAndArgs...)
}

// HasEndDate asserts an end date is set
func HasEndDate(t TestingT, sub *subscription.Subscription, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if sub.GetTime(types.DateTypeEnd) != 0 {
		return true
	}
	return failf(t, "expected subscription to have an end date", msgAndArgs...)
}

// ContainsProduct asserts a line item references the product, linear scan,
// first match wins
func ContainsProduct(t TestingT, productID string, sub *subscription.Subscription, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	for _, item := range sub.LineItems {
		if item.ProductID == productID {
			return true
		}
	}
	return failf(t, fmt.Sprintf("expected subscription to contain product %s", productID), msgAndArgs...)
}

// PaymentMethod asserts the subscription's payment method
func PaymentMethod(t TestingT, expected string, sub *subscription.Subscription, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if sub.PaymentMethod == expected {
		return true
	}
	return failf(t, fmt.Sprintf("expected payment method %q, got %q",
		expected, sub.PaymentMethod), msgAndArgs...)
}

// RenewalCount asserts the number of renewal orders linked to the
// subscription in the order store
func RenewalCount(t TestingT, ctx context.Context, repo order.Repository, expected int, sub *subscription.Subscription, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	renewals, err := repo.ListByRelation(ctx, sub.ID, types.OrderRelationRenewal)
	if err != nil {
		return failf(t, fmt.Sprintf("failed listing renewal orders: %v", err), msgAndArgs...)
	}
	if len(renewals) == expected {
		return true
	}
	return failf(t, fmt.Sprintf("expected %d renewal orders, got %d", expected, len(renewals)), msgAndArgs...)
}

// RenewalOrderCreated asserts at least one renewal order exists for the
// subscription
func RenewalOrderCreated(t TestingT, ctx context.Context, repo order.Repository, sub *subscription.Subscription, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	renewals, err := repo.ListByRelation(ctx, sub.ID, types.OrderRelationRenewal)
	if err != nil {
		return failf(t, fmt.Sprintf("failed listing renewal orders: %v", err), msgAndArgs...)
	}
	if len(renewals) > 0 {
		return true
	}
	return failf(t, "expected a renewal order to have been created", msgAndArgs...)
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return "<unset>"
	}
	return t.UTC().Format("2006-01-02")
}
