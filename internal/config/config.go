// SPDX-License-Identifier: EPL-2.0

// Package config loads runtime settings from VOXMIX_* environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every variable name, e.g. VOXMIX_MUSIC_GAIN.
const Prefix = "VOXMIX"

// MaxMusicGain is the top of the supported gain envelope.
const MaxMusicGain = 0.5

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	// Server configuration
	ListenAddr     string        `envconfig:"LISTEN_ADDR" default:":8080"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"60s"` // applied per mix by the callers

	// Mixing
	MusicGain     float64 `envconfig:"MUSIC_GAIN" default:"0.15"`
	MaxAssetBytes int64   `envconfig:"MAX_ASSET_BYTES" default:"67108864"` // 64 MiB

	// Speech synthesis endpoint; say and /v1/generate need it
	SynthURL    string `envconfig:"SYNTH_URL"`
	SynthAPIKey string `envconfig:"SYNTH_API_KEY"`

	// Observability configuration
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	LogPretty      bool   `envconfig:"LOG_PRETTY" default:"false"`
	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
}

// Load reads a .env file from the working directory when present, then the
// environment, then validates.
func Load() (*Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	return LoadFromEnv()
}

// LoadFromEnv skips the .env file.
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.MusicGain < 0 || c.MusicGain > MaxMusicGain || c.MusicGain != c.MusicGain {
		return fmt.Errorf("%w: %s_MUSIC_GAIN %v outside [0, %v]", ErrInvalid, Prefix, c.MusicGain, MaxMusicGain)
	}

	if c.MaxAssetBytes <= 0 {
		return fmt.Errorf("%w: %s_MAX_ASSET_BYTES must be positive", ErrInvalid, Prefix)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: %s_REQUEST_TIMEOUT must be positive", ErrInvalid, Prefix)
	}

	return nil
}
