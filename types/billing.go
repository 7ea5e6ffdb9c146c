package types

import (
	ierr "github.com/greyskit/subtest/errors"
)

// BillingPeriod is the unit of the recurring billing cycle
type BillingPeriod string

const (
	BILLING_PERIOD_DAILY   BillingPeriod = "day"
	BILLING_PERIOD_WEEKLY  BillingPeriod = "week"
	BILLING_PERIOD_MONTHLY BillingPeriod = "month"
	BILLING_PERIOD_ANNUAL  BillingPeriod = "year"
)

func (p BillingPeriod) String() string {
	return string(p)
}

func (p BillingPeriod) Validate() error {
	allowed := []BillingPeriod{
		BILLING_PERIOD_DAILY,
		BILLING_PERIOD_WEEKLY,
		BILLING_PERIOD_MONTHLY,
		BILLING_PERIOD_ANNUAL,
	}
	for _, period := range allowed {
		if p == period {
			return nil
		}
	}
	return ierr.NewError("invalid billing period").
		WithHintf("Billing period must be one of: day, week, month, year, got %s", p).
		Mark(ierr.ErrValidation)
}

// DateType names one of the schedule dates a subscription carries
type DateType string

const (
	DateTypeStart       DateType = "start"
	DateTypeTrialEnd    DateType = "trial_end"
	DateTypeNextPayment DateType = "next_payment"
	DateTypeEnd         DateType = "end"
)

func (d DateType) String() string {
	return string(d)
}

func (d DateType) Validate() error {
	allowed := []DateType{
		DateTypeStart,
		DateTypeTrialEnd,
		DateTypeNextPayment,
		DateTypeEnd,
	}
	for _, dateType := range allowed {
		if d == dateType {
			return nil
		}
	}
	return ierr.NewError("invalid date type").
		WithHintf("Date type must be one of: start, trial_end, next_payment, end, got %s", d).
		Mark(ierr.ErrValidation)
}
