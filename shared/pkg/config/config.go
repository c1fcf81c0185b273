package config

import (
	"fmt"
	"time"

	env "github.com/caarlos0/env/v11"
)

type CommonConfig struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"order-api"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPConfig struct {
	Addr              string        `env:"HTTP_ADDR" envDefault:":5000"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type AdminConfig struct {
	Enabled bool   `env:"ADMIN_ENABLED" envDefault:"true"`
	Addr    string `env:"ADMIN_HTTP_ADDR" envDefault:":9090"`
}

// RabbitConfig is optional: an empty URL disables order announcements.
type RabbitConfig struct {
	URL            string        `env:"RABBIT_URL"`
	Exchange       string        `env:"RABBIT_EXCHANGE" envDefault:"orders.events"`
	PublishTimeout time.Duration `env:"RABBIT_PUBLISH_TIMEOUT" envDefault:"5s"`
}

type Config struct {
	Common CommonConfig
	HTTP   HTTPConfig
	Admin  AdminConfig
	Rabbit RabbitConfig
}

func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the configuration from the given map instead of the process
// environment. A nil map means no variables are set.
func LoadFrom(vars map[string]string) (Config, error) {
	if vars == nil {
		vars = map[string]string{}
	}
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Common.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("log format %q is invalid: use json or console", c.Common.LogFormat)
	}
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http addr is empty: set HTTP_ADDR")
	}
	if c.Admin.Enabled {
		if c.Admin.Addr == "" {
			return fmt.Errorf("admin addr is empty: set ADMIN_HTTP_ADDR or ADMIN_ENABLED=false")
		}
		if c.Admin.Addr == c.HTTP.Addr {
			return fmt.Errorf("admin addr %q collides with HTTP_ADDR", c.Admin.Addr)
		}
	}
	if c.Rabbit.URL != "" && c.Rabbit.Exchange == "" {
		return fmt.Errorf("rabbit exchange is empty: set RABBIT_EXCHANGE")
	}
	return nil
}

// AnnouncementsEnabled reports whether placed orders are published to RabbitMQ.
func (c Config) AnnouncementsEnabled() bool {
	return c.Rabbit.URL != ""
}
