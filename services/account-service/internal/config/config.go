package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/vasapolrittideah/account-api/shared/mailer"
)

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

// AccountServiceConfig holds the configuration of the account service.
type AccountServiceConfig struct {
	ServiceName string `env:"SERVICE_NAME"   envDefault:"account-service"`
	Environment string `env:"APP_ENV"        envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL"      envDefault:"info"`

	HTTP      HTTPConfig
	Store     StoreConfig
	Token     TokenConfig
	Mailer    mailer.Config
	Discovery DiscoveryConfig
}

// HTTPConfig configures the HTTP and health listeners.
type HTTPConfig struct {
	Addr            string        `env:"HTTP_ADDR"            envDefault:":8000"`
	GRPCHealthAddr  string        `env:"GRPC_HEALTH_ADDR"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"    envDefault:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"   envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"     envDefault:"15s"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000,http://localhost:5173" envSeparator:","`
}

// StoreConfig selects and configures the document store.
type StoreConfig struct {
	Driver         string        `env:"STORE_DRIVER"    envDefault:"mongo"`
	MongoURI       string        `env:"MONGO_URI"       envDefault:"mongodb://localhost:27017"`
	MongoDatabase  string        `env:"MONGO_DATABASE"  envDefault:"accounts"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" envDefault:"10s"`
}

// TokenConfig configures access token issuance.
type TokenConfig struct {
	Secret    string        `env:"JWT_SECRET"`
	Issuer    string        `env:"JWT_ISSUER"`
	ExpiresIn time.Duration `env:"ACCESS_TOKEN_EXPIRES_IN" envDefault:"30m"`
}

// DiscoveryConfig configures optional Consul registration.
type DiscoveryConfig struct {
	ConsulAddr    string `env:"CONSUL_ADDR"`
	AdvertiseHost string `env:"SERVICE_ADVERTISE_HOST" envDefault:"127.0.0.1"`
}

// Load parses the configuration from environment variables and validates it.
func Load() (*AccountServiceConfig, error) {
	return LoadWithOptions(env.Options{})
}

// LoadWithOptions is Load with explicit parser options, e.g. a fixed environment map.
func LoadWithOptions(opts env.Options) (*AccountServiceConfig, error) {
	cfg, err := env.ParseAsWithOptions[AccountServiceConfig](opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *AccountServiceConfig) validate() error {
	if c.Token.Secret == "" {
		return errors.New("missing JWT_SECRET environment variable")
	}
	if c.Token.ExpiresIn <= 0 {
		return errors.New("ACCESS_TOKEN_EXPIRES_IN must be positive")
	}

	switch c.Store.Driver {
	case StoreDriverMongo:
		if c.Store.MongoURI == "" {
			return errors.New("missing MONGO_URI environment variable")
		}
		if c.Store.MongoDatabase == "" {
			return errors.New("missing MONGO_DATABASE environment variable")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	if c.Mailer.Enabled() {
		if err := c.Mailer.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// IsProduction reports whether the service runs in production.
func (c *AccountServiceConfig) IsProduction() bool {
	return c.Environment == "production"
}
