package types

import (
	ierr "github.com/greyskit/subtest/errors"
)

// JobHook names a scheduled-job kind. Hooks the fixture lifecycle manager
// should reset between tests are registered with it explicitly rather than
// discovered from a fixed list.
type JobHook string

const (
	JobHookTrialEnd         JobHook = "scheduled_subscription_trial_end"
	JobHookPayment          JobHook = "scheduled_subscription_payment"
	JobHookExpiration       JobHook = "scheduled_subscription_expiration"
	JobHookEndOfPrepaidTerm JobHook = "scheduled_subscription_end_of_prepaid_term"
	JobHookPaymentRetry     JobHook = "subscription_payment_retry"
)

func (h JobHook) String() string {
	return string(h)
}

func (h JobHook) Validate() error {
	if h == "" {
		return ierr.NewError("job hook is required").
			WithHint("Scheduled job hook must be specified").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// DefaultSubscriptionHooks returns the job kinds a recurring-billing
// integration schedules, used to seed the fixture suite's hook registry.
func DefaultSubscriptionHooks() []JobHook {
	return []JobHook{
		JobHookTrialEnd,
		JobHookPayment,
		JobHookExpiration,
		JobHookEndOfPrepaidTerm,
		JobHookPaymentRetry,
	}
}
