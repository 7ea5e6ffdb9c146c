package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/greyskit/subtest/domain/product"
	ierr "github.com/greyskit/subtest/errors"
	"github.com/greyskit/subtest/service"
	"github.com/greyskit/subtest/testutil"
	"github.com/greyskit/subtest/types"
)

type FixtureServiceSuite struct {
	testutil.BaseFixtureSuite
}

func TestFixtureService(t *testing.T) {
	suite.Run(t, new(FixtureServiceSuite))
}

func (s *FixtureServiceSuite) TestCreateSubscriptionDefaults() {
	sub := s.CreateSubscriptionFixture(service.CreateSubscriptionRequest{})

	s.Equal(types.SubscriptionStatusActive, sub.SubscriptionStatus)
	s.Equal(types.BILLING_PERIOD_MONTHLY, sub.BillingPeriod)
	s.Equal(1, sub.BillingInterval)
	s.Equal("unit-test", sub.CreatedVia)
	s.False(sub.IsManual)
	s.Nil(sub.TrialEnd)
	s.Nil(sub.NextPayment)
	s.Nil(sub.EndDate)
	s.WithinDuration(time.Now().UTC(), sub.StartDate, time.Minute)

	// persisted before returning
	stored, err := s.GetStores().SubscriptionRepo.Get(s.GetContext(), sub.ID)
	s.NoError(err)
	s.Equal(sub.ID, stored.ID)
}

func (s *FixtureServiceSuite) TestCreateSubscriptionOverrides() {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	trialEnd := start.AddDate(0, 0, 14)
	nextPayment := start.AddDate(0, 1, 0)

	sub := s.CreateSubscriptionFixture(service.CreateSubscriptionRequest{
		Status:          types.SubscriptionStatusOnHold,
		BillingPeriod:   types.BILLING_PERIOD_ANNUAL,
		BillingInterval: 2,
		StartDate:       &start,
		TrialEnd:        &trialEnd,
		NextPayment:     &nextPayment,
		CustomerID:      "cust_42",
		PaymentMethod:   "stripe",
		IsManual:        true,
	})

	s.Equal(types.SubscriptionStatusOnHold, sub.SubscriptionStatus)
	s.Equal(types.BILLING_PERIOD_ANNUAL, sub.BillingPeriod)
	s.Equal(2, sub.BillingInterval)
	s.Equal(start, sub.StartDate)
	s.Equal(trialEnd, *sub.TrialEnd)
	s.Equal(nextPayment, *sub.NextPayment)
	s.Equal("cust_42", sub.CustomerID)
	s.Equal("stripe", sub.PaymentMethod)
	s.True(sub.IsManual)
}

func (s *FixtureServiceSuite) TestCreateSubscriptionRejectsOutOfOrderDates() {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	nextPayment := start.Add(-time.Hour)

	sub, err := s.Fixtures().CreateSubscription(s.GetContext(), service.CreateSubscriptionRequest{
		StartDate:   &start,
		NextPayment: &nextPayment,
	})
	s.Error(err)
	s.Nil(sub)
	s.True(ierr.IsValidation(err))
}

func (s *FixtureServiceSuite) TestCreateProductDefaults() {
	p, err := s.Fixtures().CreateProduct(s.GetContext(), service.CreateProductRequest{})
	s.NoError(err)

	s.Equal("Test Subscription Product", p.Name)
	s.Equal(product.ProductTypeSubscription, p.Type)
	s.True(p.RegularPrice.Equal(decimal.RequireFromString("10.00")))
	s.True(p.SubscriptionPrice.Equal(p.RegularPrice))
	s.Equal(types.BILLING_PERIOD_MONTHLY, p.Period)
	s.Equal(1, p.Interval)
	s.Equal(0, p.Length)
	s.False(p.HasTrial())
	s.True(p.SignUpFee.IsZero())
}

func (s *FixtureServiceSuite) TestCreateProductTrialRequiresBothFields() {
	// both supplied, trial metadata written
	p, err := s.Fixtures().CreateProduct(s.GetContext(), service.CreateProductRequest{
		TrialLength: 14,
		TrialPeriod: types.BILLING_PERIOD_DAILY,
		SignUpFee:   "2.50",
	})
	s.NoError(err)
	s.True(p.HasTrial())
	s.Equal(14, p.TrialLength)
	s.Equal(types.BILLING_PERIOD_DAILY, p.TrialPeriod)
	s.True(p.SignUpFee.Equal(decimal.RequireFromString("2.50")))

	// lone field silently dropped under the default lenient config
	p, err = s.Fixtures().CreateProduct(s.GetContext(), service.CreateProductRequest{
		TrialLength: 7,
	})
	s.NoError(err)
	s.False(p.HasTrial())
	s.Zero(p.TrialLength)
}

func (s *FixtureServiceSuite) TestCreateProductRejectsNegativeFields() {
	_, err := s.Fixtures().CreateProduct(s.GetContext(), service.CreateProductRequest{
		TrialLength: -7,
		TrialPeriod: types.BILLING_PERIOD_DAILY,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *FixtureServiceSuite) TestCreateProductPartialTrialStrictMode() {
	cfg := *s.GetConfig()
	cfg.Fixtures.StrictTrialFields = true

	strict := service.NewFixtureService(service.ServiceParams{
		Logger:      s.GetLogger(),
		Config:      &cfg,
		SubRepo:     s.GetStores().SubscriptionRepo,
		ProductRepo: s.GetStores().ProductRepo,
		OrderRepo:   s.GetStores().OrderRepo,
	})

	_, err := strict.CreateProduct(s.GetContext(), service.CreateProductRequest{
		TrialPeriod: types.BILLING_PERIOD_WEEKLY,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *FixtureServiceSuite) TestAddLineItem() {
	sub := s.CreateSubscriptionFixture(service.CreateSubscriptionRequest{})
	p, err := s.Fixtures().CreateProduct(s.GetContext(), service.CreateProductRequest{
		RegularPrice: "15.00",
	})
	s.NoError(err)

	itemID, err := s.Fixtures().AddLineItem(s.GetContext(), sub, p.ID, service.AddLineItemRequest{
		Quantity: decimal.NewFromInt(3),
	})
	s.NoError(err)
	s.NotEmpty(itemID)

	s.Len(sub.LineItems, 1)
	s.True(sub.LineItems[0].Subtotal.Equal(decimal.RequireFromString("45.00")))
	s.True(sub.LineItems[0].Total.Equal(sub.LineItems[0].Subtotal))
	s.True(sub.Total.Equal(decimal.RequireFromString("45.00")))

	stored, err := s.GetStores().SubscriptionRepo.Get(s.GetContext(), sub.ID)
	s.NoError(err)
	s.True(stored.Total.Equal(decimal.RequireFromString("45.00")))
}

func (s *FixtureServiceSuite) TestAddLineItemOverrides() {
	sub := s.CreateSubscriptionFixture(service.CreateSubscriptionRequest{})
	p, err := s.Fixtures().CreateProduct(s.GetContext(), service.CreateProductRequest{})
	s.NoError(err)

	_, err = s.Fixtures().AddLineItem(s.GetContext(), sub, p.ID, service.AddLineItemRequest{
		Quantity: decimal.NewFromInt(2),
		Subtotal: "18.00",
		Total:    "16.20",
	})
	s.NoError(err)
	s.True(sub.LineItems[0].Subtotal.Equal(decimal.RequireFromString("18.00")))
	s.True(sub.LineItems[0].Total.Equal(decimal.RequireFromString("16.20")))
}

func (s *FixtureServiceSuite) TestAddLineItemUnknownProductFailsSoftly() {
	sub := s.CreateSubscriptionFixture(service.CreateSubscriptionRequest{})

	itemID, err := s.Fixtures().AddLineItem(s.GetContext(), sub, "prod_missing", service.AddLineItemRequest{})
	s.NoError(err)
	s.Empty(itemID)
	s.Empty(sub.LineItems)
	s.True(sub.Total.IsZero())
}

func (s *FixtureServiceSuite) TestCreateVariableProduct() {
	parent, err := s.Fixtures().CreateVariableProduct(s.GetContext(),
		service.CreateProductRequest{},
		[]service.CreateVariationRequest{
			{RegularPrice: "10.00", Attributes: map[string]string{"tier": "basic"}},
			{RegularPrice: "25.00", Attributes: map[string]string{"tier": "pro"}},
		})
	s.NoError(err)
	s.Equal(product.ProductTypeVariable, parent.Type)
	s.Equal("Test Variable Subscription", parent.Name)

	variations, err := s.GetStores().ProductRepo.ListVariations(s.GetContext(), parent.ID)
	s.NoError(err)
	s.Len(variations, 2)
	// creation order is preserved
	s.Equal("basic", variations[0].Attributes["tier"])
	s.Equal("pro", variations[1].Attributes["tier"])
	s.Equal(parent.ID, variations[0].ParentID)
}

func (s *FixtureServiceSuite) TestCreateVariationUnknownParent() {
	_, err := s.Fixtures().CreateVariation(s.GetContext(), "prod_missing", service.CreateVariationRequest{})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *FixtureServiceSuite) TestUpdateStatusPersists() {
	sub := s.CreateSubscriptionFixture(service.CreateSubscriptionRequest{})

	s.NoError(s.Fixtures().UpdateStatus(s.GetContext(), sub, types.SubscriptionStatusCancelled, "requested by customer"))

	stored, err := s.GetStores().SubscriptionRepo.Get(s.GetContext(), sub.ID)
	s.NoError(err)
	s.Equal(types.SubscriptionStatusCancelled, stored.SubscriptionStatus)
	s.Contains(stored.Notes, "requested by customer")
}

func (s *FixtureServiceSuite) TestProcessPayment() {
	sub := s.CreateSubscriptionFixture(service.CreateSubscriptionRequest{
		Status: types.SubscriptionStatusPending,
	})

	s.NoError(s.Fixtures().ProcessPayment(s.GetContext(), sub))
	s.Equal(types.SubscriptionStatusActive, sub.SubscriptionStatus)
}
