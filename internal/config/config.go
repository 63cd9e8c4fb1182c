package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type Config struct {
	ServerPort         string
	DBPath             string
	LogLevel           string
	Timezone           string
	Location           *time.Location
	CORSAllowedOrigins []string

	ExchangeRateURL     string
	ExchangeRateTimeout time.Duration

	// defaults for the settings row until an admin saves one
	DefaultMonthlyFeeUSD decimal.Decimal
	DefaultCurrency      string
	LocalCurrencyCode    string

	// values that were set but could not be parsed, reported by Validate
	parseProblems []string
}

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		DBPath:             getEnv("DB_PATH", "academy.db"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Timezone:           getEnv("ACADEMY_TIMEZONE", "UTC"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ExchangeRateURL:    getEnv("EXCHANGE_RATE_URL", "https://open.er-api.com/v6/latest/USD"),
		DefaultCurrency:    strings.ToUpper(getEnv("DEFAULT_CURRENCY", "LOCAL")),
		LocalCurrencyCode:  strings.ToUpper(getEnv("LOCAL_CURRENCY_CODE", "VES")),
	}
	cfg.ExchangeRateTimeout = cfg.getEnvDuration("EXCHANGE_RATE_TIMEOUT", 10*time.Second)
	cfg.DefaultMonthlyFeeUSD = cfg.getEnvDecimal("DEFAULT_MONTHLY_FEE_USD", decimal.NewFromInt(50))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("timezone", cfg.Timezone).
		Strs("cors_origins", cfg.CORSAllowedOrigins).
		Str("local_currency", cfg.LocalCurrencyCode).
		Msg("configuration loaded")

	return cfg, nil
}

// Validate checks every field and reports all problems at once. It also
// resolves Location from Timezone.
func (c *Config) Validate() error {
	problems := append([]string(nil), c.parseProblems...)

	if port, err := strconv.Atoi(c.ServerPort); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.ServerPort))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		problems = append(problems, fmt.Sprintf("invalid timezone '%s': %v", c.Timezone, err))
	} else {
		c.Location = loc
	}

	if c.DefaultMonthlyFeeUSD.IsNegative() {
		problems = append(problems, "DEFAULT_MONTHLY_FEE_USD cannot be negative")
	}

	if c.DefaultCurrency != "USD" && c.DefaultCurrency != "LOCAL" {
		problems = append(problems, fmt.Sprintf("invalid default currency '%s': must be USD or LOCAL", c.DefaultCurrency))
	}

	if !currencyCodePattern.MatchString(c.LocalCurrencyCode) {
		problems = append(problems, fmt.Sprintf("invalid local currency code '%s': must be three letters", c.LocalCurrencyCode))
	}

	if c.ExchangeRateTimeout < time.Second || c.ExchangeRateTimeout > time.Minute {
		problems = append(problems, fmt.Sprintf("invalid exchange rate timeout %v: must be between 1s and 1m", c.ExchangeRateTimeout))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (c *Config) getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		c.parseProblems = append(c.parseProblems, fmt.Sprintf("invalid %s '%s': must be a duration such as 10s", key, v))
		return fallback
	}
	return d
}

func (c *Config) getEnvDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		c.parseProblems = append(c.parseProblems, fmt.Sprintf("invalid %s '%s': must be a decimal number", key, v))
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
