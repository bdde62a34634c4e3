// Package config loads process-wide configuration once at startup.
// Components receive their settings by constructor injection; nothing
// reads the environment mid-request.
package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// InsecureAuthSecretDefault signs session tokens when AUTH_SECRET is
// unset. It exists so local development works out of the box and MUST
// be overridden in any real deployment — anyone knowing it can forge
// admin sessions.
const InsecureAuthSecretDefault = "change-me-in-env"

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// AuthSecret signs advisor session tokens. See
	// InsecureAuthSecretDefault for why the default is unsafe.
	AuthSecret string `env:"AUTH_SECRET, default=change-me-in-env"`

	// PIIEncryptionKey is the base64 encoding of a 32-byte AES key used
	// for travel document numbers. When absent, document operations
	// fail individually with a configuration error; the rest of the
	// application keeps working.
	PIIEncryptionKey string `env:"PII_ENCRYPTION_KEY"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Notify NotifyConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=travel_backoffice"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type NotifyConfig struct {
	ResendAPIKey string `env:"RESEND_API_KEY"`
	To           string `env:"CONTACT_NOTIFY_TO"`
	From         string `env:"CONTACT_NOTIFY_FROM, default=onboarding@resend.dev"`
	Workers      int    `env:"NOTIFY_WORKERS, default=4"`
}

// IsProduction reports whether the process runs with production settings
// (secure cookies, JSON logs).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
