package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// RateLimit is a ulule/limiter format string, e.g. "100-M" for 100
	// requests per minute per client.
	RateLimit string

	// Business parameters. Defaults mirror the legacy batch jobs; they are
	// overridable per environment so test regions can run with different
	// tariffs.
	CreditLimitCeiling        string
	MinPaymentFloor           string
	MinPaymentPercent         string
	AnnualInterestRatePercent string
	EarliestBirthYear         int

	// DevPhoneAreaCodes lists extra area codes accepted by phone validation,
	// for fixture data that uses reserved codes like 555.
	DevPhoneAreaCodes []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CREDIT_LIMIT_CEILING", "999999.99")
	viper.SetDefault("MIN_PAYMENT_FLOOR", "25.00")
	viper.SetDefault("MIN_PAYMENT_PERCENT", "2")
	viper.SetDefault("ANNUAL_INTEREST_RATE_PERCENT", "18.99")
	viper.SetDefault("EARLIEST_BIRTH_YEAR", 1900)
	viper.SetDefault("DEV_PHONE_AREA_CODES", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.CreditLimitCeiling = viper.GetString("CREDIT_LIMIT_CEILING")
	cfg.MinPaymentFloor = viper.GetString("MIN_PAYMENT_FLOOR")
	cfg.MinPaymentPercent = viper.GetString("MIN_PAYMENT_PERCENT")
	cfg.AnnualInterestRatePercent = viper.GetString("ANNUAL_INTEREST_RATE_PERCENT")

	cfg.EarliestBirthYear = viper.GetInt("EARLIEST_BIRTH_YEAR")
	if cfg.EarliestBirthYear <= 0 {
		log.Printf("Warning: Invalid EARLIEST_BIRTH_YEAR. Defaulting to 1900.\n")
		cfg.EarliestBirthYear = 1900
	}

	if raw := viper.GetString("DEV_PHONE_AREA_CODES"); raw != "" {
		for _, code := range strings.Split(raw, ",") {
			if code = strings.TrimSpace(code); code != "" {
				cfg.DevPhoneAreaCodes = append(cfg.DevPhoneAreaCodes, code)
			}
		}
	}

	return cfg, nil
}
