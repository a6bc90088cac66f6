package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	RateFeed RateFeedConfig
	Payroll  PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// RateFeedConfig points at the Vietcombank exchange-rate XML endpoint.
type RateFeedConfig struct {
	URL             string
	Timeout         time.Duration
	RefreshInterval time.Duration
}

// PayrollConfig carries the payroll constants that are configuration, not
// code: the default USD->VND fallback rate, the meal allowance unit (VND
// scale), the default probation percentage, and the two ledger account codes
// the vendor bill posts against.
type PayrollConfig struct {
	DefaultCurrencyRate    decimal.Decimal
	MealAllowanceUnit      decimal.Decimal
	DefaultProbationPct    decimal.Decimal
	SalaryExpenseAccount   string
	AccountsPayableAccount string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, relying on environment")
	}

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "wsp_payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	feedTimeout, err := time.ParseDuration(getEnv("RATE_FEED_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_FEED_TIMEOUT: %w", err)
	}
	feedInterval, err := time.ParseDuration(getEnv("RATE_FEED_REFRESH_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_FEED_REFRESH_INTERVAL: %w", err)
	}
	config.RateFeed = RateFeedConfig{
		URL:             getEnv("RATE_FEED_URL", "https://portal.vietcombank.com.vn/UserControls/TVPortal.TyGia/pXML.aspx"),
		Timeout:         feedTimeout,
		RefreshInterval: feedInterval,
	}

	fallbackRate, err := decimal.NewFromString(getEnv("PAYROLL_DEFAULT_CURRENCY_RATE", "23000"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_DEFAULT_CURRENCY_RATE: %w", err)
	}
	mealUnit, err := decimal.NewFromString(getEnv("PAYROLL_MEAL_ALLOWANCE_UNIT", "30000"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_MEAL_ALLOWANCE_UNIT: %w", err)
	}
	probationPct, err := decimal.NewFromString(getEnv("PAYROLL_DEFAULT_PROBATION_PCT", "85"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_DEFAULT_PROBATION_PCT: %w", err)
	}

	config.Payroll = PayrollConfig{
		DefaultCurrencyRate:    fallbackRate,
		MealAllowanceUnit:      mealUnit,
		DefaultProbationPct:    probationPct,
		SalaryExpenseAccount:   getEnv("PAYROLL_SALARY_EXPENSE_ACCOUNT", "630000"),
		AccountsPayableAccount: getEnv("PAYROLL_ACCOUNTS_PAYABLE_ACCOUNT", "211000"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if !c.Payroll.DefaultCurrencyRate.IsPositive() {
		return fmt.Errorf("PAYROLL_DEFAULT_CURRENCY_RATE must be positive")
	}
	if c.Payroll.MealAllowanceUnit.IsNegative() {
		return fmt.Errorf("PAYROLL_MEAL_ALLOWANCE_UNIT must be non-negative")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
