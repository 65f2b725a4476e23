package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name   string `envconfig:"APP_NAME" default:"Billkerfy"`
		Port   int    `envconfig:"PORT" default:"8080"`
		Locale string `envconfig:"APP_LOCALE" default:"en"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"billkerfy"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Invoice struct {
		NumberPrefix      string `envconfig:"INVOICE_NUMBER_PREFIX" default:"INV-"`
		StrictTransitions bool   `envconfig:"INVOICE_STRICT_TRANSITIONS" default:"false"`
		DefaultCurrency   string `envconfig:"INVOICE_DEFAULT_CURRENCY" default:"EUR"`
		NodeID            int64  `envconfig:"INVOICE_NODE_ID" default:"1"`
	}

	// Broker is optional; an empty URL disables status-change events.
	Broker struct {
		URL        string `envconfig:"AMQP_URL"`
		Exchange   string `envconfig:"AMQP_EXCHANGE" default:"billkerfy"`
		RoutingKey string `envconfig:"AMQP_ROUTING_KEY" default:"invoice.status_changed"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
