package env

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Environment variable keys
const (
	// Server
	EnvAddr         = "ADDR"
	EnvGinMode      = "GIN_MODE"
	EnvDatabasePath = "DATABASE_PATH"

	// Auth
	EnvJWTSecret   = "JWT_SECRET"
	EnvJWTIssuer   = "JWT_ISSUER"
	EnvJWTDuration = "JWT_DURATION"

	// Receipt printing service
	EnvReceiptURL          = "RECEIPT_SERVICE_URL"
	EnvReceiptClientID     = "RECEIPT_CLIENT_ID"
	EnvReceiptClientSecret = "RECEIPT_CLIENT_SECRET"
	EnvReceiptTokenURL     = "RECEIPT_TOKEN_URL"
	EnvReceiptTimeout      = "RECEIPT_TIMEOUT"

	// Tracing
	EnvOTelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
)

// DefaultDatabasePath is used when DATABASE_PATH is unset
const DefaultDatabasePath = "./internal/databases/totalhealth.db"

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Config holds every setting the API reads from the environment.
type Config struct {
	Addr         string `env:"ADDR" envDefault:":9237"`
	GinMode      string `env:"GIN_MODE" envDefault:"debug"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"./internal/databases/totalhealth.db"`

	JWTSecret   string        `env:"JWT_SECRET"`
	JWTIssuer   string        `env:"JWT_ISSUER" envDefault:"total-health"`
	JWTDuration time.Duration `env:"JWT_DURATION" envDefault:"24h"`

	ReceiptURL          string        `env:"RECEIPT_SERVICE_URL"`
	ReceiptClientID     string        `env:"RECEIPT_CLIENT_ID"`
	ReceiptClientSecret string        `env:"RECEIPT_CLIENT_SECRET"`
	ReceiptTokenURL     string        `env:"RECEIPT_TOKEN_URL"`
	ReceiptTimeout      time.Duration `env:"RECEIPT_TIMEOUT" envDefault:"5s"`

	OTelEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load parses the environment into a Config and checks required values.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.JWTSecret = strings.TrimSpace(cfg.JWTSecret)
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("%s is required", EnvJWTSecret)
	}
	if cfg.JWTDuration <= 0 {
		return Config{}, fmt.Errorf("%s must be positive", EnvJWTDuration)
	}
	return cfg, nil
}

// ReceiptsEnabled reports whether a receipt printing service is configured.
func (c Config) ReceiptsEnabled() bool {
	return strings.TrimSpace(c.ReceiptURL) != ""
}

/*
This project is the backend API for the Total Health meal-plan platform. Memberships, meal punching and table bookings for the ordering site and the admin dashboard.
API Copyright (C) 2025 Total Health
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
