// Package config loads server configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the server binary needs.
type Config struct {
	// HTTPAddr is the listen address.
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	// DBPath is the SQLite database file path.
	DBPath string `env:"DB_PATH" envDefault:"./data/camp.db"`

	// SessionSecret signs session tokens. Required; there is no safe
	// default for a signing key.
	SessionSecret string `env:"SESSION_SECRET,required"`

	// SessionTTL is how long sessions stay valid.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// ViaCEPBaseURL is the postal code lookup endpoint.
	ViaCEPBaseURL string `env:"VIACEP_BASE_URL" envDefault:"https://viacep.com.br"`

	// AdminEmail/AdminPassword, when both set, bootstrap an admin
	// account at startup if it does not exist yet.
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
