package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	ierr "github.com/greyskit/subtest/errors"
	"github.com/greyskit/subtest/types"
)

type Configuration struct {
	Logging  LoggingConfig `validate:"required"`
	Fixtures FixtureConfig `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `mapstructure:"level" validate:"required"`
}

// FixtureConfig controls the fixture factory's defaulting behaviour
type FixtureConfig struct {
	// StrictTrialFields rejects a product request that supplies only one of
	// trial length and trial period. When false the lone field is dropped.
	StrictTrialFields bool `mapstructure:"strict_trial_fields"`

	DefaultProductName     string              `mapstructure:"default_product_name" validate:"required"`
	DefaultRegularPrice    string              `mapstructure:"default_regular_price" validate:"required"`
	DefaultBillingPeriod   types.BillingPeriod `mapstructure:"default_billing_period" validate:"required"`
	DefaultBillingInterval int                 `mapstructure:"default_billing_interval" validate:"min=1"`
	CreatedVia             string              `mapstructure:"created_via" validate:"required"`
}

// NewConfig loads configuration from config.yaml and SUBTEST_* environment
// variables, falling back to defaults suitable for test runs.
func NewConfig() (*Configuration, error) {
	// Best effort, .env is optional in test environments
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("SUBTEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, ierr.WithError(err).
				WithHint("Failed to read config file").
				Mark(ierr.ErrSystem)
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to unmarshal configuration").
			Mark(ierr.ErrSystem)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// GetDefaultConfig returns the configuration used when no file or
// environment overrides are present
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Logging: LoggingConfig{
			Level: types.LogLevelInfo,
		},
		Fixtures: FixtureConfig{
			StrictTrialFields:      false,
			DefaultProductName:     "Test Subscription Product",
			DefaultRegularPrice:    "10.00",
			DefaultBillingPeriod:   types.BILLING_PERIOD_MONTHLY,
			DefaultBillingInterval: 1,
			CreatedVia:             "unit-test",
		},
	}
}

func setDefaults(v *viper.Viper) {
	defaults := GetDefaultConfig()
	v.SetDefault("logging.level", defaults.Logging.Level.String())
	v.SetDefault("fixtures.strict_trial_fields", defaults.Fixtures.StrictTrialFields)
	v.SetDefault("fixtures.default_product_name", defaults.Fixtures.DefaultProductName)
	v.SetDefault("fixtures.default_regular_price", defaults.Fixtures.DefaultRegularPrice)
	v.SetDefault("fixtures.default_billing_period", defaults.Fixtures.DefaultBillingPeriod.String())
	v.SetDefault("fixtures.default_billing_interval", defaults.Fixtures.DefaultBillingInterval)
	v.SetDefault("fixtures.created_via", defaults.Fixtures.CreatedVia)
}

func (c Configuration) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return ierr.WithError(err).
			WithHint("Configuration validation failed").
			Mark(ierr.ErrValidation)
	}
	return c.Fixtures.DefaultBillingPeriod.Validate()
}
