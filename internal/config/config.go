package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"tinycrm"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"tinycrm"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		FrontendOrigin string        `envconfig:"FRONTEND_URL" default:"http://localhost:3000"`
	}

	Auth struct {
		// GlobalToken is the optional static shared secret for trusted
		// backend-to-backend calls. Empty means the authenticator is not
		// configured and silently declines.
		GlobalToken    string        `envconfig:"GLOBAL_API_TOKEN"`
		GlobalUsername string        `envconfig:"GLOBAL_API_USERNAME" default:"global_api_user"`
		SessionSecret  string        `envconfig:"SESSION_SECRET" default:"super-secret-key-for-local-dev"`
		SessionTTL     time.Duration `envconfig:"SESSION_TTL" default:"720h"`
	}

	Google struct {
		ClientID     string        `envconfig:"GOOGLE_CLIENT_ID"`
		ClientSecret string        `envconfig:"GOOGLE_CLIENT_SECRET"`
		RedirectURL  string        `envconfig:"GOOGLE_REDIRECT_URL" default:"http://localhost:8080/api/calendar/auth/callback"`
		Timeout      time.Duration `envconfig:"GOOGLE_TIMEOUT" default:"15s"`
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
