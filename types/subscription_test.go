package types

import (
	"testing"

	"github.com/stretchr/testify/assert"

	ierr "github.com/greyskit/subtest/errors"
)

func TestSubscriptionStatusValidate(t *testing.T) {
	for _, status := range []SubscriptionStatus{
		SubscriptionStatusPending,
		SubscriptionStatusActive,
		SubscriptionStatusOnHold,
		SubscriptionStatusCancelled,
		SubscriptionStatusExpired,
	} {
		assert.NoError(t, status.Validate(), status)
	}

	err := SubscriptionStatus("trialing").Validate()
	assert.True(t, ierr.IsValidation(err))
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusProcessing.IsTerminal())
	assert.True(t, OrderStatusCompleted.IsTerminal())
	assert.True(t, OrderStatusFailed.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
}

func TestOrderRelationValidate(t *testing.T) {
	assert.NoError(t, OrderRelationRenewal.Validate())
	assert.True(t, ierr.IsValidation(OrderRelation("upgrade").Validate()))
}

func TestBillingPeriodValidate(t *testing.T) {
	assert.NoError(t, BILLING_PERIOD_ANNUAL.Validate())
	assert.True(t, ierr.IsValidation(BillingPeriod("fortnight").Validate()))
}

func TestDateTypeValidate(t *testing.T) {
	assert.NoError(t, DateTypeNextPayment.Validate())
	assert.True(t, ierr.IsValidation(DateType("renewal").Validate()))
}
