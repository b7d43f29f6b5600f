package config

import (
	customerrors "clinic-staffing/errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type (
	Config struct {
		App    App
		Logger Logger
		Data   Data
	}

	App struct {
		Env             string `validate:"oneof=development production test"`
		Address         string `validate:"required"`
		MetricsAddress  string
		Version         string `validate:"required"`
		EndpointPrefix  string `validate:"required"`
		MaxRequests     int    `validate:"gte=1"`
		ShutdownTimeout int    `validate:"gte=0"`
		AllowedOrigins  string
	}

	Logger struct {
		Level               string `validate:"oneof=debug info warn error"`
		OutputFileName      string `validate:"required"`
		OutputErrorFileName string `validate:"required"`
	}

	Data struct {
		Dir            string `validate:"required"`
		ForecastYear   int    `validate:"gte=1900,lte=2999"`
		ComparisonYear int    `validate:"gte=1900,lte=2999"`
	}
)

var validate = validator.New()

// Default returns the configuration used when no environment is set.
func Default() *Config {
	return &Config{
		App: App{
			Env:             "development",
			Address:         ":8080",
			Version:         "v1",
			EndpointPrefix:  "api",
			MaxRequests:     10,
			ShutdownTimeout: 10,
			AllowedOrigins:  "*",
		},
		Logger: Logger{
			Level:               "info",
			OutputFileName:      "staffing.log",
			OutputErrorFileName: "staffing_error.log",
		},
		Data: Data{
			Dir:            "data",
			ForecastYear:   2025,
			ComparisonYear: 2024,
		},
	}
}

// Load reads .env (when present) and the environment on top of Default and
// validates the result.
func Load() (*Config, error) {
	// a missing .env is fine; the environment alone may configure us
	_ = godotenv.Load()

	d := Default()
	cfg := &Config{
		App: App{
			Env:             GetEnvString("APP_ENV", d.App.Env),
			Address:         GetEnvString("APP_ADDRESS", d.App.Address),
			MetricsAddress:  GetEnvString("APP_METRICS_ADDRESS", d.App.MetricsAddress),
			Version:         GetEnvString("APP_VERSION", d.App.Version),
			EndpointPrefix:  GetEnvString("APP_ENDPOINT_PREFIX", d.App.EndpointPrefix),
			MaxRequests:     GetEnvInt("APP_MAX_REQUEST", d.App.MaxRequests),
			ShutdownTimeout: GetEnvInt("APP_SHUTDOWN_TIMEOUT", d.App.ShutdownTimeout),
			AllowedOrigins:  GetEnvString("APP_ALLOWED_ORIGINS", d.App.AllowedOrigins),
		},
		Logger: Logger{
			Level:               GetEnvString("LOGGER_LEVEL", d.Logger.Level),
			OutputFileName:      GetEnvString("LOGGER_OUTPUT_FILENAME", d.Logger.OutputFileName),
			OutputErrorFileName: GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", d.Logger.OutputErrorFileName),
		},
		Data: Data{
			Dir:            GetEnvString("DATA_DIR", d.Data.Dir),
			ForecastYear:   GetEnvInt("DATA_FORECAST_YEAR", d.Data.ForecastYear),
			ComparisonYear: GetEnvInt("DATA_COMPARISON_YEAR", d.Data.ComparisonYear),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", customerrors.ErrInvalidConfiguration, err)
	}
	return nil
}
