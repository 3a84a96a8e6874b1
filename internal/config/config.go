package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
}

// PricingConfig carries the engine policy knobs an operator does not set
// per contract.
type PricingConfig struct {
	// DiscountPolicy is "CLAMP" (legacy: a too-large fixed discount
	// silently zeroes the rental) or "REJECT".
	DiscountPolicy string
	PrintRate      float64
}

// FeeConfig is the default operating-fee rate per cost pool, in percent.
type FeeConfig struct {
	Regular              float64
	Partnership          float64
	Friend               float64
	IncludedInstallation float64
	IncludedPrint        float64
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Pricing     PricingConfig
	Fees        FeeConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Pricing: PricingConfig{
			DiscountPolicy: strings.ToUpper(v.GetString("PRICING_DISCOUNT_POLICY")),
			PrintRate:      v.GetFloat64("PRICING_PRINT_RATE"),
		},
		Fees: FeeConfig{
			Regular:              v.GetFloat64("FEE_RATE_REGULAR"),
			Partnership:          v.GetFloat64("FEE_RATE_PARTNERSHIP"),
			Friend:               v.GetFloat64("FEE_RATE_FRIEND"),
			IncludedInstallation: v.GetFloat64("FEE_RATE_INCLUDED_INSTALLATION"),
			IncludedPrint:        v.GetFloat64("FEE_RATE_INCLUDED_PRINT"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7092
	}
	if cfg.Pricing.DiscountPolicy == "" {
		cfg.Pricing.DiscountPolicy = "CLAMP"
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.Pricing.DiscountPolicy != "CLAMP" && cfg.Pricing.DiscountPolicy != "REJECT" {
		return fmt.Errorf("PRICING_DISCOUNT_POLICY must be CLAMP or REJECT")
	}
	return nil
}
