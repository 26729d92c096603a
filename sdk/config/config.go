// Copyright 2025 Nguyen Nhat Nguyen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/sul-dlss/dor-services-client-sub000/sdk/jobs"
)

// Default configuration constants tuned for client processes.
const (
	DefaultNATSHost = "localhost"
	DefaultNATSPort = "4222"

	DefaultRequestTimeout = 30 * time.Second
	DefaultDrainTimeout   = 30 * time.Second
	DefaultReconnectWait  = 2 * time.Second
	DefaultPingInterval   = 2 * time.Minute

	DefaultMaxReconnects = -1 // reconnect forever
	DefaultMaxPingsOut   = 2

	DefaultClientName = "dor-services-client"
)

// Mode selects the logging pipeline.
type Mode string

const (
	ModeDebug   Mode = "debug"
	ModeRelease Mode = "release"
)

// NATSConfig holds the transport knobs.
type NATSConfig struct {
	URL           string        `json:"url"             env:"URL"`
	Host          string        `json:"host"            env:"HOST"`
	Port          string        `json:"port"            env:"PORT"`
	MaxReconnects int           `json:"max_reconnects"  env:"MAX_RECONNECTS"`
	ReconnectWait time.Duration `json:"reconnect_wait"  env:"RECONNECT_WAIT"`
	DrainTimeout  time.Duration `json:"drain_timeout"   env:"DRAIN_TIMEOUT"`
	PingInterval  time.Duration `json:"ping_interval"   env:"PING_INTERVAL"`
	MaxPingsOut   int           `json:"max_pings_out"   env:"MAX_PINGS_OUT"`
	ClientName    string        `json:"client_name"     env:"CLIENT_NAME"`
	// SubjectPrefix namespaces request subjects, e.g. per environment.
	SubjectPrefix string `json:"subject_prefix" env:"SUBJECT_PREFIX"`
}

// TimeoutConfig bounds single requests.
type TimeoutConfig struct {
	RequestTimeout time.Duration `json:"request_timeout" env:"REQUEST_TIMEOUT"`
}

// PollConfig controls background job polling.
type PollConfig struct {
	InitialInterval time.Duration `json:"initial_interval" env:"INITIAL_INTERVAL"`
	Timeout         time.Duration `json:"timeout"          env:"TIMEOUT"`
	BackoffFactor   float64       `json:"backoff_factor"   env:"BACKOFF_FACTOR"`
	MaxInterval     time.Duration `json:"max_interval"     env:"MAX_INTERVAL"`
}

// Jobs converts the section into a jobs.Config.
func (p PollConfig) Jobs() jobs.Config {
	return jobs.Config{
		InitialInterval: p.InitialInterval,
		Timeout:         p.Timeout,
		BackoffFactor:   p.BackoffFactor,
		MaxInterval:     p.MaxInterval,
	}
}

// Config is the complete client configuration. It is built once by the
// caller and passed to constructors; nothing in the module reads it
// implicitly.
type Config struct {
	Mode     Mode          `json:"mode"     env:"MODE" envDefault:"debug"`
	NATS     NATSConfig    `json:"nats"     envPrefix:"NATS_"`
	Timeouts TimeoutConfig `json:"timeouts" envPrefix:"TIMEOUTS_"`
	Poll     PollConfig    `json:"poll"     envPrefix:"POLL_"`
	Logger   LoggerConfig  `json:"logger"   envPrefix:"LOG_"`
}

// Default returns the configuration used when no environment is set.
func Default() Config {
	return Config{
		Mode: ModeDebug,
		NATS: NATSConfig{
			Host:          DefaultNATSHost,
			Port:          DefaultNATSPort,
			MaxReconnects: DefaultMaxReconnects,
			ReconnectWait: DefaultReconnectWait,
			DrainTimeout:  DefaultDrainTimeout,
			PingInterval:  DefaultPingInterval,
			MaxPingsOut:   DefaultMaxPingsOut,
			ClientName:    DefaultClientName,
		},
		Timeouts: TimeoutConfig{
			RequestTimeout: DefaultRequestTimeout,
		},
		Poll: PollConfig{
			InitialInterval: jobs.DefaultInitialInterval,
			Timeout:         jobs.DefaultTimeout,
			BackoffFactor:   jobs.DefaultBackoffFactor,
			MaxInterval:     jobs.DefaultMaxInterval,
		},
		Logger: LoggerConfig{
			Level:        "info",
			Format:       "auto",
			Output:       "stderr",
			OTELExporter: "none",
		},
	}
}

// Load reads the process environment on top of Default.
func Load() (*Config, error) {
	return LoadWithOptions(env.Options{})
}

// LoadWithOptions is Load with caller-supplied env options, e.g. an explicit
// Environment map or a Prefix.
func LoadWithOptions(opts env.Options) (*Config, error) {
	cfg := Default()
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.NATS.URL == "" {
		cfg.NATS.URL = fmt.Sprintf("nats://%s:%s", cfg.NATS.Host, cfg.NATS.Port)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first problem found.
func (c *Config) Validate() error {
	if c.Mode != ModeDebug && c.Mode != ModeRelease {
		return fmt.Errorf("invalid mode %q", c.Mode)
	}
	if c.NATS.URL == "" {
		return errors.New("NATS URL is required")
	}
	if _, err := url.Parse(c.NATS.URL); err != nil {
		return fmt.Errorf("invalid NATS URL: %w", err)
	}
	if c.NATS.Port != "" {
		if _, err := strconv.Atoi(c.NATS.Port); err != nil {
			return fmt.Errorf("invalid NATS port %q", c.NATS.Port)
		}
	}
	if c.NATS.MaxReconnects < -1 {
		return errors.New("NATS max reconnects must be -1 or greater")
	}
	if c.Timeouts.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	if c.Poll.Timeout < 0 || c.Poll.InitialInterval < 0 || c.Poll.MaxInterval < 0 {
		return errors.New("poll durations must not be negative")
	}
	if c.Poll.BackoffFactor != 0 && c.Poll.BackoffFactor < 1 {
		return fmt.Errorf("poll backoff factor must be at least 1, got %v", c.Poll.BackoffFactor)
	}
	return nil
}

// Interface implementation for internal NATS connection.
func (c *Config) Endpoint() string                 { return c.NATS.URL }
func (c *Config) NATSMaxReconnects() int           { return c.NATS.MaxReconnects }
func (c *Config) NATSReconnectWait() time.Duration { return c.NATS.ReconnectWait }
func (c *Config) NATSDrainTimeout() time.Duration  { return c.NATS.DrainTimeout }
func (c *Config) NATSPingInterval() time.Duration  { return c.NATS.PingInterval }
func (c *Config) NATSMaxPingsOut() int             { return c.NATS.MaxPingsOut }
func (c *Config) NATSClientName() string           { return c.NATS.ClientName }
