package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the service configuration, read from PRENOMINA_* environment
// variables.
type Config struct {
	Port            string `envconfig:"PORT" default:"8084"`
	GinMode         string `envconfig:"GIN_MODE" default:"release"`
	FechaReferencia string `envconfig:"FECHA_REFERENCIA" default:"01-01-2025"`
}

// Load reads and validates the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("prenomina", &cfg); err != nil {
		return nil, fmt.Errorf("error al leer la configuración: %w", err)
	}
	if _, err := cfg.FechaReferenciaDefecto(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FechaReferenciaDefecto parses the configured default reference date
// (dd-mm-yyyy).
func (c *Config) FechaReferenciaDefecto() (time.Time, error) {
	t, err := time.Parse("02-01-2006", c.FechaReferencia)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha de referencia por defecto inválida %q: %w", c.FechaReferencia, err)
	}
	return t, nil
}
