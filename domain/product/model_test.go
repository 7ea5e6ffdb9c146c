package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	ierr "github.com/greyskit/subtest/errors"
	"github.com/greyskit/subtest/types"
)

func TestPriceFallsBackToRegular(t *testing.T) {
	p := New(context.Background(), ProductTypeSubscription)
	p.Name = "Monthly Box"
	p.RegularPrice = decimal.RequireFromString("10.00")

	assert.True(t, p.Price().Equal(decimal.RequireFromString("10.00")))

	p.SubscriptionPrice = decimal.RequireFromString("8.00")
	assert.True(t, p.Price().Equal(decimal.RequireFromString("8.00")))
}

func TestHasTrial(t *testing.T) {
	p := New(context.Background(), ProductTypeSubscription)
	assert.False(t, p.HasTrial())

	p.TrialLength = 14
	assert.False(t, p.HasTrial())

	p.TrialPeriod = types.BILLING_PERIOD_DAILY
	assert.True(t, p.HasTrial())
}

func TestValidate(t *testing.T) {
	p := New(context.Background(), ProductTypeSubscription)
	assert.True(t, ierr.IsValidation(p.Validate()), "name is required")

	p.Name = "Monthly Box"
	assert.NoError(t, p.Validate())

	p.RegularPrice = decimal.RequireFromString("-1")
	assert.True(t, ierr.IsValidation(p.Validate()))

	v := New(context.Background(), ProductTypeVariation)
	assert.True(t, ierr.IsValidation(v.Validate()), "variation needs a parent")
	v.ParentID = "prod_parent"
	assert.NoError(t, v.Validate())
}
