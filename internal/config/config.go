package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr     string     `env:"ADDR"      envDefault:":5000"`
	GinMode  string     `env:"GIN_MODE"  envDefault:"release"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	// HFToken is the optional access token for the model provider.
	HFToken       string        `env:"HF_TOKEN"`
	OpenAIAPIKey  string        `env:"OPENAI_API_KEY"`
	ModelProvider string        `env:"MODEL_PROVIDER" envDefault:"huggingface"`
	ModelName     string        `env:"MODEL_NAME"`
	ModelBaseURL  string        `env:"MODEL_BASE_URL"`
	ModelTimeout  time.Duration `env:"MODEL_TIMEOUT"  envDefault:"0s"`
	ModelWarmup   bool          `env:"MODEL_WARMUP"   envDefault:"true"`

	FetchTimeout  time.Duration `env:"FETCH_TIMEOUT"   envDefault:"0s"`
	FetchMaxBytes int64         `env:"FETCH_MAX_BYTES" envDefault:"10485760"`
}

// Load reads an optional .env file and parses the environment.
func Load() (Config, error) {
	// A missing .env file is fine; the environment alone is enough.
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err = cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("validate: %w", err)
	}

	return cfg, nil
}

// ModelAPIKey returns the credential for the configured provider.
func (c Config) ModelAPIKey() string {
	if strings.EqualFold(c.ModelProvider, "openai") {
		if key := strings.TrimSpace(c.OpenAIAPIKey); key != "" {
			return key
		}
	}

	return strings.TrimSpace(c.HFToken)
}

func (c Config) validate() error {
	var errs []error

	switch strings.ToLower(strings.TrimSpace(c.ModelProvider)) {
	case "", "huggingface", "openai":
	default:
		errs = append(errs, fmt.Errorf("MODEL_PROVIDER must be huggingface or openai, got %q", c.ModelProvider))
	}

	switch c.GinMode {
	case "", "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("GIN_MODE must be debug, release or test, got %q", c.GinMode))
	}

	if c.ModelTimeout < 0 {
		errs = append(errs, errors.New("MODEL_TIMEOUT must not be negative"))
	}

	if c.FetchTimeout < 0 {
		errs = append(errs, errors.New("FETCH_TIMEOUT must not be negative"))
	}

	if c.FetchMaxBytes <= 0 {
		errs = append(errs, errors.New("FETCH_MAX_BYTES must be positive"))
	}

	return errors.Join(errs...)
}
