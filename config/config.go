// Package config loads the application configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DB holds datastore settings.
type DB struct {
	Url string `envconfig:"URL"`
}

// Jwt holds token signing settings.
type Jwt struct {
	Secret string        `envconfig:"SECRET_KEY" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

// Server holds HTTP listener settings.
type Server struct {
	Host string `envconfig:"HOST" default:"localhost"`
	Port int    `envconfig:"PORT" default:"3000"`
}

// Log holds logger settings.
type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"bankcore"`
}

// RateLimit holds request throttling settings.
type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"20"`
	Window      time.Duration `envconfig:"WINDOW" default:"1s"`
}

// AppConfig is the full application configuration.
type AppConfig struct {
	Env       string    `envconfig:"APP_ENV" default:"development"`
	DB        DB        `envconfig:"DATABASE"`
	Jwt       Jwt       `envconfig:"JWT"`
	Server    Server    `envconfig:"SERVER"`
	Log       Log       `envconfig:"LOG"`
	RateLimit RateLimit `envconfig:"RATE_LIMIT"`
}

// Load reads the optional .env file and the process environment.
func Load(logger *slog.Logger, envFilePath ...string) (*AppConfig, error) {
	var err error
	if len(envFilePath) > 0 && envFilePath[0] != "" {
		err = godotenv.Load(envFilePath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		logger.Warn("No .env file found or specified, using system environment variables")
	} else {
		logger.Info("Environment variables loaded from .env file")
	}
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
