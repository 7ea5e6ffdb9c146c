package testutil_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	ierr "github.com/greyskit/subtest/errors"
	"github.com/greyskit/subtest/service"
	"github.com/greyskit/subtest/testutil"
	"github.com/greyskit/subtest/types"
)

type FixtureLifecycleSuite struct {
	testutil.BaseFixtureSuite
}

func TestFixtureLifecycle(t *testing.T) {
	suite.Run(t, new(FixtureLifecycleSuite))
}

func (s *FixtureLifecycleSuite) TestTeardownDeletesTrackedFixtures() {
	ctx := s.GetContext()

	sub := s.CreateSubscriptionFixture(service.CreateSubscriptionRequest{})
	renewal := s.CreateRenewalFixture(sub, service.CreateRenewalRequest{})

	// running teardown by hand drains both tracked lists; the framework
	// teardown that follows must tolerate the already-deleted fixtures
	s.TearDownTest()

	_, err := s.GetStores().SubscriptionRepo.Get(ctx, sub.ID)
	s.True(ierr.IsNotFound(err))
	_, err = s.GetStores().OrderRepo.Get(ctx, renewal.ID)
	s.True(ierr.IsNotFound(err))
}

func (s *FixtureLifecycleSuite) TestEachTestGetsFreshStores() {
	subs, err := s.GetStores().SubscriptionRepo.List(s.GetContext())
	s.NoError(err)
	s.Empty(subs)
	s.Zero(s.GetScheduler().PendingCount())
}

func (s *FixtureLifecycleSuite) TestScheduledJobsClearedForRegisteredHooks() {
	ctx := s.GetContext()
	now := time.Now().UTC()

	s.NoError(s.GetScheduler().ScheduleSingle(ctx, now, types.JobHookPayment, nil))
	s.NoError(s.GetScheduler().ScheduleSingle(ctx, now, types.JobHookTrialEnd, nil))

	s.ClearScheduledJobs()
	s.Zero(s.GetScheduler().PendingCount())
}

func (s *FixtureLifecycleSuite) TestCustomHookRegistration() {
	ctx := s.GetContext()
	customHook := types.JobHook("scheduled_subscription_sync")

	s.NoError(s.GetScheduler().ScheduleSingle(ctx, time.Now().UTC(), customHook, nil))

	// not registered yet, the blunt reset must leave it alone
	s.ClearScheduledJobs()
	s.Equal(1, s.GetScheduler().PendingCount())

	s.RegisterScheduledHook(customHook)
	s.ClearScheduledJobs()
	s.Zero(s.GetScheduler().PendingCount())
}

func (s *FixtureLifecycleSuite) TestFastForward() {
	before := s.GetClock().Now()
	s.FastForward(72 * time.Hour)
	s.True(s.GetClock().Now().Sub(before) >= 72*time.Hour)

	// fixtures created after a fast-forward start in the future
	sub := s.CreateSubscriptionFixture(service.CreateSubscriptionRequest{})
	s.True(sub.StartDate.After(before.Add(71 * time.Hour)))
}

func (s *FixtureLifecycleSuite) TestTrackUntrackedFixture() {
	ctx := s.GetContext()

	sub, err := s.Fixtures().CreateSubscription(ctx, service.CreateSubscriptionRequest{})
	s.NoError(err)
	s.TrackSubscription(sub.ID)

	s.TearDownTest()
	_, err = s.GetStores().SubscriptionRepo.Get(ctx, sub.ID)
	s.True(ierr.IsNotFound(err))
}
