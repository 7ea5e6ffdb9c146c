package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/greyskit/subtest/domain/product"
	"github.com/greyskit/subtest/domain/subscription"
	ierr "github.com/greyskit/subtest/errors"
	"github.com/greyskit/subtest/types"
	"github.com/greyskit/subtest/validator"
)

// FixtureService constructs subscription and product fixtures, applying
// default-then-override semantics before persisting
type FixtureService interface {
	CreateSubscription(ctx context.Context, req CreateSubscriptionRequest) (*subscription.Subscription, error)
	CreateProduct(ctx context.Context, req CreateProductRequest) (*product.Product, error)
	CreateVariableProduct(ctx context.Context, req CreateProductRequest, variations []CreateVariationRequest) (*product.Product, error)
	CreateVariation(ctx context.Context, parentID string, req CreateVariationRequest) (*product.Product, error)

	// AddLineItem resolves the product and attaches a line item. An
	// unresolvable product is a soft failure: the returned item ID is
	// empty and the subscription is left untouched.
	AddLineItem(ctx context.Context, sub *subscription.Subscription, productID string, req AddLineItemRequest) (string, error)

	UpdateStatus(ctx context.Context, sub *subscription.Subscription, status types.SubscriptionStatus, note string) error
	ProcessPayment(ctx context.Context, sub *subscription.Subscription) error
}

// CreateSubscriptionRequest overrides the factory defaults. Zero-valued
// fields keep their defaults; schedule dates are applied only when set.
type CreateSubscriptionRequest struct {
	Status          types.SubscriptionStatus `json:"status,omitempty"`
	BillingPeriod   types.BillingPeriod      `json:"billing_period,omitempty"`
	BillingInterval int                      `json:"billing_interval,omitempty"`
	StartDate       *time.Time               `json:"start_date,omitempty"`
	TrialEnd        *time.Time               `json:"trial_end,omitempty"`
	NextPayment     *time.Time               `json:"next_payment,omitempty"`
	EndDate         *time.Time               `json:"end_date,omitempty"`
	CustomerID      string                   `json:"customer_id,omitempty"`
	ParentOrderID   string                   `json:"parent_order_id,omitempty"`
	PaymentMethod   string                   `json:"payment_method,omitempty"`
	IsManual        bool                     `json:"is_manual,omitempty"`
	CreatedVia      string                   `json:"created_via,omitempty"`
}

// CreateProductRequest overrides the product defaults. Prices are decimal
// strings so test tables read like money; empty means default.
type CreateProductRequest struct {
	Name              string              `json:"name,omitempty"`
	RegularPrice      string              `json:"regular_price,omitempty"`
	SubscriptionPrice string              `json:"subscription_price,omitempty"`
	Period            types.BillingPeriod `json:"period,omitempty"`
	Interval          int                 `json:"interval,omitempty" validate:"gte=0"`
	Length            int                 `json:"length,omitempty" validate:"gte=0"`
	TrialLength       int                 `json:"trial_length,omitempty" validate:"gte=0"`
	TrialPeriod       types.BillingPeriod `json:"trial_period,omitempty"`
	SignUpFee         string              `json:"sign_up_fee,omitempty"`
}

type CreateVariationRequest struct {
	RegularPrice string            `json:"regular_price,omitempty"`
	Attributes   map[string]string `json:"attributes,omitempty"`
}

type AddLineItemRequest struct {
	Quantity decimal.Decimal `json:"quantity,omitempty"`
	Subtotal string          `json:"subtotal,omitempty"`
	Total    string          `json:"total,omitempty"`
}

type fixtureService struct {
	ServiceParams
}

func NewFixtureService(params ServiceParams) FixtureService {
	return &fixtureService{
		ServiceParams: params,
	}
}

func (s *fixtureService) CreateSubscription(ctx context.Context, req CreateSubscriptionRequest) (*subscription.Subscription, error) {
	cfg := s.Config.Fixtures

	sub := subscription.New(ctx)
	sub.StartDate = s.now()
	sub.BillingPeriod = cfg.DefaultBillingPeriod
	sub.BillingInterval = cfg.DefaultBillingInterval
	sub.CreatedVia = cfg.CreatedVia

	if req.Status != "" {
		sub.SubscriptionStatus = req.Status
	}
	if req.BillingPeriod != "" {
		sub.BillingPeriod = req.BillingPeriod
	}
	if req.BillingInterval != 0 {
		sub.SetBillingInterval(req.BillingInterval)
	}
	if req.StartDate != nil {
		sub.StartDate = *req.StartDate
	}
	if req.CustomerID != "" {
		sub.CustomerID = req.CustomerID
	}
	if req.ParentOrderID != "" {
		sub.ParentOrderID = req.ParentOrderID
	}
	if req.PaymentMethod != "" {
		sub.PaymentMethod = req.PaymentMethod
	}
	if req.CreatedVia != "" {
		sub.CreatedVia = req.CreatedVia
	}
	sub.IsManual = req.IsManual

	dates := map[types.DateType]time.Time{}
	if req.TrialEnd != nil {
		dates[types.DateTypeTrialEnd] = *req.TrialEnd
	}
	if req.NextPayment != nil {
		dates[types.DateTypeNextPayment] = *req.NextPayment
	}
	if req.EndDate != nil {
		dates[types.DateTypeEnd] = *req.EndDate
	}
	if len(dates) > 0 {
		if err := sub.UpdateDates(dates); err != nil {
			return nil, err
		}
	}

	if err := sub.Validate(); err != nil {
		return nil, err
	}

	if err := s.SubRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.Logger.Debugw("created subscription fixture",
		"subscription_id", sub.ID,
		"status", sub.SubscriptionStatus,
		"billing_period", sub.BillingPeriod,
		"billing_interval", sub.BillingInterval)

	return sub, nil
}

func (s *fixtureService) CreateProduct(ctx context.Context, req CreateProductRequest) (*product.Product, error) {
	return s.createProduct(ctx, product.ProductTypeSubscription, req)
}

func (s *fixtureService) createProduct(ctx context.Context, productType product.ProductType, req CreateProductRequest) (*product.Product, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return nil, err
	}

	cfg := s.Config.Fixtures

	p := product.New(ctx, productType)
	p.Name = cfg.DefaultProductName
	p.Period = cfg.DefaultBillingPeriod
	p.Interval = cfg.DefaultBillingInterval

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Period != "" {
		p.Period = req.Period
	}
	if req.Interval != 0 {
		p.Interval = req.Interval
	}
	p.Length = req.Length

	regularPrice, err := parseAmount(req.RegularPrice, cfg.DefaultRegularPrice)
	if err != nil {
		return nil, err
	}
	p.RegularPrice = regularPrice

	p.SubscriptionPrice = regularPrice
	if req.SubscriptionPrice != "" {
		subscriptionPrice, err := parseAmount(req.SubscriptionPrice, "")
		if err != nil {
			return nil, err
		}
		p.SubscriptionPrice = subscriptionPrice
	}

	// Trial metadata is only written when both fields are supplied. Strict
	// mode turns a lone field into a validation error instead of dropping it.
	hasLength := req.TrialLength != 0
	hasPeriod := req.TrialPeriod != ""
	switch {
	case hasLength && hasPeriod:
		p.TrialLength = req.TrialLength
		p.TrialPeriod = req.TrialPeriod
	case hasLength || hasPeriod:
		if cfg.StrictTrialFields {
			return nil, ierr.NewError("partial trial metadata").
				WithHint("Trial length and trial period must be supplied together").
				Mark(ierr.ErrValidation)
		}
		s.Logger.Warnw("dropping partial trial metadata",
			"trial_length", req.TrialLength,
			"trial_period", req.TrialPeriod)
	}

	if req.SignUpFee != "" {
		signUpFee, err := parseAmount(req.SignUpFee, "")
		if err != nil {
			return nil, err
		}
		p.SignUpFee = signUpFee
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.ProductRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *fixtureService) CreateVariableProduct(ctx context.Context, req CreateProductRequest, variations []CreateVariationRequest) (*product.Product, error) {
	if req.Name == "" {
		req.Name = "Test Variable Subscription"
	}

	parent, err := s.createProduct(ctx, product.ProductTypeVariable, req)
	if err != nil {
		return nil, err
	}

	// Variations are created sequentially in the given order, variation
	// creation is not idempotent and order affects attribute indexing
	for _, variation := range variations {
		if _, err := s.CreateVariation(ctx, parent.ID, variation); err != nil {
			return nil, err
		}
	}

	return parent, nil
}

func (s *fixtureService) CreateVariation(ctx context.Context, parentID string, req CreateVariationRequest) (*product.Product, error) {
	parent, err := s.ProductRepo.Get(ctx, parentID)
	if err != nil {
		return nil, err
	}

	v := product.New(ctx, product.ProductTypeVariation)
	v.ParentID = parent.ID
	v.Name = parent.Name
	v.Period = parent.Period
	v.Interval = parent.Interval
	v.Attributes = req.Attributes

	price, err := parseAmount(req.RegularPrice, s.Config.Fixtures.DefaultRegularPrice)
	if err != nil {
		return nil, err
	}
	v.RegularPrice = price
	v.SubscriptionPrice = price

	if err := v.Validate(); err != nil {
		return nil, err
	}

	if err := s.ProductRepo.Create(ctx, v); err != nil {
		return nil, err
	}

	return v, nil
}

func (s *fixtureService) AddLineItem(ctx context.Context, sub *subscription.Subscription, productID string, req AddLineItemRequest) (string, error) {
	p, err := s.ProductRepo.Get(ctx, productID)
	if err != nil {
		if ierr.IsNotFound(err) {
			s.Logger.Warnw("product not found, skipping line item",
				"product_id", productID,
				"subscription_id", sub.ID)
			return "", nil
		}
		return "", err
	}

	quantity := req.Quantity
	if quantity.IsZero() {
		quantity = decimal.NewFromInt(1)
	}

	subtotal := p.Price().Mul(quantity)
	if req.Subtotal != "" {
		subtotal, err = parseAmount(req.Subtotal, "")
		if err != nil {
			return "", err
		}
	}

	total := subtotal
	if req.Total != "" {
		total, err = parseAmount(req.Total, "")
		if err != nil {
			return "", err
		}
	}

	item := subscription.NewLineItem(p.ID, quantity, subtotal, total)
	if err := item.Validate(); err != nil {
		return "", err
	}

	sub.AddLineItem(item)
	sub.CalculateTotals()

	if err := s.SubRepo.Update(ctx, sub); err != nil {
		return "", err
	}

	return item.ID, nil
}

func (s *fixtureService) UpdateStatus(ctx context.Context, sub *subscription.Subscription, status types.SubscriptionStatus, note string) error {
	if err := sub.UpdateStatus(status, note); err != nil {
		return err
	}
	return s.SubRepo.Update(ctx, sub)
}

func (s *fixtureService) ProcessPayment(ctx context.Context, sub *subscription.Subscription) error {
	sub.PaymentComplete()
	return s.SubRepo.Update(ctx, sub)
}

// parseAmount parses a decimal money string, falling back to fallback when
// the value is empty
func parseAmount(value, fallback string) (decimal.Decimal, error) {
	if value == "" {
		value = fallback
	}
	if value == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, ierr.WithError(err).
			WithHintf("Invalid monetary amount %q", value).
			Mark(ierr.ErrValidation)
	}
	return amount, nil
}
