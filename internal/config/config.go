package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	minSecretLength = 32
)

// Config is the runtime configuration of the API.
type Config struct {
	AppPort            string
	DBDriver           string
	DatabaseDSN        string
	DBConnectAttempts  int
	JWTSecret          string
	JWTIssuer          string
	JWTAudience        string
	CORSAllowOrigins   string
	AuthRateLimitRPS   float64
	AuthRateLimitBurst int
	RequestTimeout     time.Duration
	SeedDemoData       bool
}

// SetDefaults registers the default value of every optional key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_CONNECT_ATTEMPTS", 5)
	v.SetDefault("JWT_ISSUER", "inventory-api")
	v.SetDefault("JWT_AUDIENCE", "inventory-clients")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("AUTH_RATE_LIMIT_RPS", 5.0)
	v.SetDefault("AUTH_RATE_LIMIT_BURST", 10)
	v.SetDefault("REQUEST_TIMEOUT", 10*time.Second)
	v.SetDefault("SEED_DEMO_DATA", false)
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to load .env file: %v", err)
	}

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv() // Load environment variables
	return FromViper(v)
}

// FromViper builds and validates a Config from the keys held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:            v.GetString("APP_PORT"),
		DBDriver:           strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER"))),
		DatabaseDSN:        v.GetString("DATABASE_DSN"),
		DBConnectAttempts:  v.GetInt("DB_CONNECT_ATTEMPTS"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		JWTAudience:        v.GetString("JWT_AUDIENCE"),
		CORSAllowOrigins:   v.GetString("CORS_ALLOW_ORIGINS"),
		AuthRateLimitRPS:   v.GetFloat64("AUTH_RATE_LIMIT_RPS"),
		AuthRateLimitBurst: v.GetInt("AUTH_RATE_LIMIT_BURST"),
		RequestTimeout:     v.GetDuration("REQUEST_TIMEOUT"),
		SeedDemoData:       v.GetBool("SEED_DEMO_DATA"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN is required")
	}
	if len(c.JWTSecret) < minSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes", minSecretLength)
	}
	if c.JWTIssuer == "" || c.JWTAudience == "" {
		return errors.New("JWT_ISSUER and JWT_AUDIENCE must not be empty")
	}
	if c.DBConnectAttempts < 1 {
		c.DBConnectAttempts = 1
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}
	return nil
}
