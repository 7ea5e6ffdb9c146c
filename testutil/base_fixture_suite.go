package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/greyskit/subtest/config"
	"github.com/greyskit/subtest/domain/order"
	"github.com/greyskit/subtest/domain/product"
	"github.com/greyskit/subtest/domain/subscription"
	ierr "github.com/greyskit/subtest/errors"
	"github.com/greyskit/subtest/logger"
	"github.com/greyskit/subtest/service"
	"github.com/greyskit/subtest/types"
	"github.com/greyskit/subtest/validator"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	SubscriptionRepo subscription.Repository
	OrderRepo        order.Repository
	ProductRepo      product.Repository
}

// BaseFixtureSuite provides common functionality for all fixture-driven
// test suites: fresh in-memory stores per test, fixture tracking with
// guaranteed teardown, and scheduled-job clearing around every test.
type BaseFixtureSuite struct {
	suite.Suite
	ctx       context.Context
	stores    Stores
	scheduler *InMemoryScheduler
	clock     *Clock
	logger    *logger.Logger
	config    *config.Configuration

	fixtures service.FixtureService
	renewals service.RenewalService
	cart     service.RecurringCartService

	// hooks is the registry of job kinds cleared before and after each
	// test, seeded from the default subscription hooks
	hooks []types.JobHook

	// tracked fixture IDs, drained FIFO during teardown
	subscriptionIDs []string
	renewalOrderIDs []string
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseFixtureSuite) SetupSuite() {
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	s.config = cfg

	var err error
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseFixtureSuite) SetupTest() {
	s.ctx = SetupContext()
	s.clock = NewClock()
	s.scheduler = NewInMemoryScheduler()
	s.stores = Stores{
		SubscriptionRepo: NewInMemorySubscriptionStore(),
		OrderRepo:        NewInMemoryOrderStore(),
		ProductRepo:      NewInMemoryProductStore(),
	}

	params := service.ServiceParams{
		Logger:      s.logger,
		Config:      s.config,
		Clock:       s.clock,
		SubRepo:     s.stores.SubscriptionRepo,
		OrderRepo:   s.stores.OrderRepo,
		ProductRepo: s.stores.ProductRepo,
		Scheduler:   s.scheduler,
	}
	s.fixtures = service.NewFixtureService(params)
	s.renewals = service.NewRenewalService(params)
	s.cart = service.NewRecurringCartService(params)

	s.hooks = types.DefaultSubscriptionHooks()
	s.subscriptionIDs = nil
	s.renewalOrderIDs = nil

	s.ClearScheduledJobs()
}

// TearDownTest is called after each test
func (s *BaseFixtureSuite) TearDownTest() {
	for _, id := range s.subscriptionIDs {
		if err := s.stores.SubscriptionRepo.Delete(s.ctx, id); err != nil && !ierr.IsNotFound(err) {
			s.T().Errorf("failed to delete subscription fixture %s: %v", id, err)
		}
	}
	for _, id := range s.renewalOrderIDs {
		if err := s.stores.OrderRepo.Delete(s.ctx, id); err != nil && !ierr.IsNotFound(err) {
			s.T().Errorf("failed to delete renewal order fixture %s: %v", id, err)
		}
	}
	s.subscriptionIDs = nil
	s.renewalOrderIDs = nil

	s.ClearScheduledJobs()
}

// RegisterScheduledHook adds a job kind to the registry cleared around
// each test
func (s *BaseFixtureSuite) RegisterScheduledHook(hook types.JobHook) {
	s.hooks = append(s.hooks, hook)
}

// ClearScheduledJobs unschedules all pending jobs for every registered hook
func (s *BaseFixtureSuite) ClearScheduledJobs() {
	for _, hook := range s.hooks {
		if err := s.scheduler.UnscheduleAll(s.ctx, hook); err != nil {
			s.T().Errorf("failed to clear scheduled jobs for hook %s: %v", hook, err)
		}
	}
}

// TrackSubscription registers a subscription ID for teardown cleanup
func (s *BaseFixtureSuite) TrackSubscription(id string) {
	s.subscriptionIDs = append(s.subscriptionIDs, id)
}

// TrackRenewalOrder registers a renewal order ID for teardown cleanup
func (s *BaseFixtureSuite) TrackRenewalOrder(id string) {
	s.renewalOrderIDs = append(s.renewalOrderIDs, id)
}

// CreateSubscriptionFixture creates a subscription and tracks it for
// cleanup
func (s *BaseFixtureSuite) CreateSubscriptionFixture(req service.CreateSubscriptionRequest) *subscription.Subscription {
	sub, err := s.fixtures.CreateSubscription(s.ctx, req)
	s.Require().NoError(err)
	s.TrackSubscription(sub.ID)
	return sub
}

// CreateRenewalFixture creates a renewal order and tracks it for cleanup
func (s *BaseFixtureSuite) CreateRenewalFixture(sub *subscription.Subscription, req service.CreateRenewalRequest) *order.Order {
	renewal, err := s.renewals.CreateRenewalOrder(s.ctx, sub, req)
	s.Require().NoError(err)
	s.TrackRenewalOrder(renewal.ID)
	return renewal
}

// FastForward advances the suite clock by d
func (s *BaseFixtureSuite) FastForward(d time.Duration) {
	s.clock.Advance(d)
}

func (s *BaseFixtureSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseFixtureSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseFixtureSuite) GetScheduler() *InMemoryScheduler {
	return s.scheduler
}

func (s *BaseFixtureSuite) GetClock() *Clock {
	return s.clock
}

func (s *BaseFixtureSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseFixtureSuite) GetConfig() *config.Configuration {
	return s.config
}

func (s *BaseFixtureSuite) Fixtures() service.FixtureService {
	return s.fixtures
}

func (s *BaseFixtureSuite) Renewals() service.RenewalService {
	return s.renewals
}

func (s *BaseFixtureSuite) Cart() service.RecurringCartService {
	return s.cart
}
