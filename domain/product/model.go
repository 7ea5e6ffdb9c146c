package product

import (
	"context"

	"github.com/shopspring/decimal"

	ierr "github.com/greyskit/subtest/errors"
	"github.com/greyskit/subtest/types"
)

// ProductType distinguishes simple subscription products from variable
// products and their variations
type ProductType string

const (
	ProductTypeSubscription ProductType = "subscription"
	ProductTypeVariable     ProductType = "variable-subscription"
	ProductTypeVariation    ProductType = "subscription-variation"
)

// Product is a subscription product carrying its recurring-billing metadata
type Product struct {
	// ID is the unique identifier for the product
	ID string `db:"id" json:"id"`

	Name string `db:"name" json:"name"`

	Type ProductType `db:"type" json:"type"`

	// RegularPrice is the one-off list price
	RegularPrice decimal.Decimal `db:"regular_price" json:"regular_price"`

	// SubscriptionPrice is the recurring price, defaults to RegularPrice
	SubscriptionPrice decimal.Decimal `db:"subscription_price" json:"subscription_price"`

	// Period and Interval describe the recurring billing schedule
	Period   types.BillingPeriod `db:"period" json:"period"`
	Interval int                 `db:"interval" json:"interval"`

	// Length is the number of periods the subscription runs, 0 = forever
	Length int `db:"length" json:"length"`

	// TrialLength and TrialPeriod are only meaningful together
	TrialLength int                 `db:"trial_length" json:"trial_length"`
	TrialPeriod types.BillingPeriod `db:"trial_period" json:"trial_period"`

	// SignUpFee is charged once at sign-up
	SignUpFee decimal.Decimal `db:"sign_up_fee" json:"sign_up_fee"`

	// ParentID links a variation to its variable parent
	ParentID string `db:"parent_id" json:"parent_id"`

	// Attributes are the variation attributes, e.g. billing tier
	Attributes map[string]string `json:"attributes,omitempty"`

	types.BaseModel
}

// New returns a product with a generated ID
func New(ctx context.Context, productType ProductType) *Product {
	return &Product{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PRODUCT),
		Type:      productType,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

// Price returns the effective recurring price: the subscription price when
// set, else the regular price
func (p *Product) Price() decimal.Decimal {
	if !p.SubscriptionPrice.IsZero() {
		return p.SubscriptionPrice
	}
	return p.RegularPrice
}

// HasTrial returns true when trial metadata is fully specified
func (p *Product) HasTrial() bool {
	return p.TrialLength > 0 && p.TrialPeriod != ""
}

func (p *Product) Validate() error {
	if p.Name == "" && p.Type != ProductTypeVariation {
		return ierr.NewError("product name is required").
			WithHint("Product must have a name").
			Mark(ierr.ErrValidation)
	}
	if p.RegularPrice.IsNegative() || p.SubscriptionPrice.IsNegative() || p.SignUpFee.IsNegative() {
		return ierr.NewError("prices must be non-negative").
			WithHint("Product prices may not be negative").
			Mark(ierr.ErrValidation)
	}
	if p.Type == ProductTypeVariation && p.ParentID == "" {
		return ierr.NewError("variation requires a parent product").
			WithHint("Variation must reference its variable parent product").
			Mark(ierr.ErrValidation)
	}
	if p.Period != "" {
		if err := p.Period.Validate(); err != nil {
			return err
		}
	}
	if p.TrialPeriod != "" {
		if err := p.TrialPeriod.Validate(); err != nil {
			return err
		}
	}
	return nil
}
