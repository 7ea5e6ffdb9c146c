package subscription

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/greyskit/subtest/errors"
	"github.com/greyskit/subtest/types"
)

// Subscription is the in-memory stand-in for a recurring-billing record.
// It carries the billing schedule, the schedule dates and the line items;
// related orders are not owned here and are resolved through the order
// repository by subscription ID.
type Subscription struct {
	// ID is the unique identifier for the subscription
	ID string `db:"id" json:"id"`

	// CustomerID is the identifier for the customer in our system
	CustomerID string `db:"customer_id" json:"customer_id"`

	// SubscriptionStatus is the domain status of the subscription
	SubscriptionStatus types.SubscriptionStatus `db:"subscription_status" json:"subscription_status"`

	// BillingPeriod is the unit of the billing cycle
	BillingPeriod types.BillingPeriod `db:"billing_period" json:"billing_period"`

	// BillingInterval is the number of billing periods between renewals
	BillingInterval int `db:"billing_interval" json:"billing_interval"`

	// StartDate is the start date of the subscription
	StartDate time.Time `db:"start_date" json:"start_date"`

	// TrialEnd is the end date of the trial period, nil when no trial
	TrialEnd *time.Time `db:"trial_end" json:"trial_end"`

	// NextPayment is the next scheduled payment date
	NextPayment *time.Time `db:"next_payment" json:"next_payment"`

	// EndDate is the end date of the subscription
	EndDate *time.Time `db:"end_date" json:"end_date"`

	// IsManual marks subscriptions renewed manually rather than by a gateway
	IsManual bool `db:"is_manual" json:"is_manual"`

	// ParentOrderID is the order the subscription was purchased through
	ParentOrderID string `db:"parent_order_id" json:"parent_order_id"`

	// PaymentMethod is the gateway identifier used for renewals
	PaymentMethod string `db:"payment_method" json:"payment_method"`

	// CreatedVia records which surface created the subscription
	CreatedVia string `db:"created_via" json:"created_via"`

	// LineItems are the recurring items billed each cycle
	LineItems []*LineItem `json:"line_items"`

	// Total is the recurring total across all line items
	Total decimal.Decimal `db:"total" json:"total"`

	// Notes is the audit trail appended to by status transitions
	Notes []string `json:"notes,omitempty"`

	Metadata types.Metadata `json:"metadata,omitempty"`

	types.BaseModel
}

// New returns a subscription with a generated ID and defaults applied
func New(ctx context.Context) *Subscription {
	return &Subscription{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		SubscriptionStatus: types.SubscriptionStatusActive,
		BillingPeriod:      types.BILLING_PERIOD_MONTHLY,
		BillingInterval:    1,
		Total:              decimal.Zero,
		BaseModel:          types.GetDefaultBaseModel(ctx),
	}
}

// GetDate returns the stored value for the given date type, zero when unset
func (s *Subscription) GetDate(dateType types.DateType) time.Time {
	switch dateType {
	case types.DateTypeStart:
		return s.StartDate
	case types.DateTypeTrialEnd:
		return types.FromNillableTime(s.TrialEnd)
	case types.DateTypeNextPayment:
		return types.FromNillableTime(s.NextPayment)
	case types.DateTypeEnd:
		return types.FromNillableTime(s.EndDate)
	default:
		return time.Time{}
	}
}

// GetTime returns the epoch seconds for the given date type, 0 when unset
func (s *Subscription) GetTime(dateType types.DateType) int64 {
	date := s.GetDate(dateType)
	if date.IsZero() {
		return 0
	}
	return date.Unix()
}

// UpdateDates applies a partial set of date fields, last write wins per
// field. The schedule ordering invariant is enforced: trial end and next
// payment may not precede the effective start date.
func (s *Subscription) UpdateDates(dates map[types.DateType]time.Time) error {
	start := s.StartDate
	if v, ok := dates[types.DateTypeStart]; ok {
		start = v
	}

	for dateType, date := range dates {
		if err := dateType.Validate(); err != nil {
			return err
		}
		if (dateType == types.DateTypeTrialEnd || dateType == types.DateTypeNextPayment) &&
			!start.IsZero() && date.Before(start) {
			return ierr.NewError("date precedes subscription start").
				WithHintf("%s date %s must not be before start date %s",
					dateType, date.Format(time.RFC3339), start.Format(time.RFC3339)).
				Mark(ierr.ErrValidation)
		}
	}

	for dateType, date := range dates {
		switch dateType {
		case types.DateTypeStart:
			s.StartDate = date
		case types.DateTypeTrialEnd:
			s.TrialEnd = types.ToNillableTime(date)
		case types.DateTypeNextPayment:
			s.NextPayment = types.ToNillableTime(date)
		case types.DateTypeEnd:
			s.EndDate = types.ToNillableTime(date)
		}
	}
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// SetBillingInterval coerces the interval to a non-negative integer
func (s *Subscription) SetBillingInterval(interval int) {
	if interval < 0 {
		interval = 0
	}
	s.BillingInterval = interval
}

// HasTrial returns true when a trial end date is set
func (s *Subscription) HasTrial() bool {
	return s.TrialEnd != nil && !s.TrialEnd.IsZero()
}

// AddLineItem appends an item to the subscription without recalculating
// totals, callers recalculate once all items are attached
func (s *Subscription) AddLineItem(item *LineItem) {
	item.SubscriptionID = s.ID
	s.LineItems = append(s.LineItems, item)
}

// CalculateTotals recomputes the recurring total from the line items
func (s *Subscription) CalculateTotals() {
	total := decimal.Zero
	for _, item := range s.LineItems {
		total = total.Add(item.Total)
	}
	s.Total = total
	s.UpdatedAt = time.Now().UTC()
}

// UpdateStatus transitions the subscription status and records the note
func (s *Subscription) UpdateStatus(status types.SubscriptionStatus, note string) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.SubscriptionStatus = status
	if note != "" {
		s.Notes = append(s.Notes, note)
	}
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// PaymentComplete marks the subscription paid and active
func (s *Subscription) PaymentComplete() {
	s.SubscriptionStatus = types.SubscriptionStatusActive
	s.UpdatedAt = time.Now().UTC()
}

func (s *Subscription) Validate() error {
	if err := s.SubscriptionStatus.Validate(); err != nil {
		return err
	}
	if err := s.BillingPeriod.Validate(); err != nil {
		return err
	}
	if s.BillingInterval < 0 {
		return ierr.NewError("billing interval must be non-negative").
			WithHintf("Billing interval %d is invalid", s.BillingInterval).
			Mark(ierr.ErrValidation)
	}
	if s.TrialEnd != nil && !s.StartDate.IsZero() && s.TrialEnd.Before(s.StartDate) {
		return ierr.NewError("trial end precedes start date").
			WithHint("Trial end date must not be before the subscription start date").
			Mark(ierr.ErrValidation)
	}
	if s.NextPayment != nil && !s.StartDate.IsZero() && s.NextPayment.Before(s.StartDate) {
		return ierr.NewError("next payment precedes start date").
			WithHint("Next payment date must not be before the subscription start date").
			Mark(ierr.ErrValidation)
	}
	return nil
}
