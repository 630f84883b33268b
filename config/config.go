package config

import (
	"fmt"
	"time"

	"github.com/saferide-app/saferide-go/pkg/configparser"
)

// Config contains all configuration variables of the application
type (
	Config struct {
		ServiceName string `env:"SERVICE_NAME" default:"saferide"`
		LogLevel    string `env:"LOG_LEVEL" default:"DEBUG"`

		Server    ServerConfig
		Database  DatabaseConfig
		RabbitMQ  RabbitMQConfig
		Auth      Auth
		Broadcast BroadcastConfig
	}

	ServerConfig struct {
		Host string `env:"SERVER_HOST" default:"0.0.0.0"`
		Port string `env:"SERVER_PORT" default:"8000"`
	}

	DatabaseConfig struct {
		Host     string `env:"DATABASE_HOST" default:"localhost"`
		Port     string `env:"DATABASE_PORT" default:"5432"`
		User     string `env:"DATABASE_USER" default:"saferide_user"`
		Password string `env:"DATABASE_PASSWORD" default:"saferide_pass"`
		Database string `env:"DATABASE_DATABASE" default:"saferide_db"`

		MaxConns        int32         `env:"DATABASE_MAXCONNS" default:"20"`
		MinConns        int32         `env:"DATABASE_MINCONNS" default:"2"`
		MaxConnLifetime time.Duration `env:"DATABASE_MAXCONNLIFETIME" default:"30m"`
		MaxConnIdleTime time.Duration `env:"DATABASE_MAXCONNIDLETIME" default:"5m"`
	}

	// RabbitMQConfig is optional: with Enabled=false the instance runs alone
	// and broadcast events stay local.
	RabbitMQConfig struct {
		Enabled  bool   `env:"RABBITMQ_ENABLED" default:"false"`
		Host     string `env:"RABBITMQ_HOST" default:"localhost"`
		Port     string `env:"RABBITMQ_PORT" default:"5672"`
		User     string `env:"RABBITMQ_USER" default:"guest"`
		Password string `env:"RABBITMQ_PASSWORD" default:"guest"`
	}

	Auth struct {
		// Mobile clients hold one long-lived access token, no refresh flow.
		AccessTokenTTL   time.Duration `env:"AUTH_ACCESS_TOKEN_TTL" default:"720h"`
		PasswordResetTTL time.Duration `env:"AUTH_PASSWORD_RESET_TTL" default:"15m"`
		JWTSecret        string        `env:"AUTH_JWT_SECRET" default:"supersecretkey"`
	}

	BroadcastConfig struct {
		// InstanceID marks envelopes relayed through RabbitMQ so an instance
		// skips its own. Empty means a random id is generated at startup.
		InstanceID string `env:"BROADCAST_INSTANCE_ID"`
	}
)

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

func (c RabbitMQConfig) GetDSN() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		c.User,
		c.Password,
		c.Host,
		c.Port,
	)
}

func NewConfig(filepath string) (*Config, error) {
	cfg := &Config{}

	// Loading enviromental variables and parsing to config struct.
	if err := configparser.LoadAndParseYaml(filepath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load and parse config: %w", err)
	}

	return cfg, nil
}
