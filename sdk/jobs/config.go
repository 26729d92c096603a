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

package jobs

import (
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Default polling parameters.
const (
	DefaultInitialInterval = 3 * time.Second
	DefaultTimeout         = 180 * time.Second
	DefaultBackoffFactor   = 2.0
	DefaultMaxInterval     = 60 * time.Second
)

// Config controls how often and for how long a job is polled.
type Config struct {
	// InitialInterval is the pause after the first unfinished check.
	InitialInterval time.Duration
	// Timeout bounds the whole wait, checks and pauses included.
	Timeout time.Duration
	// BackoffFactor multiplies the pause after every unfinished check.
	BackoffFactor float64
	// MaxInterval caps the pause.
	MaxInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		InitialInterval: DefaultInitialInterval,
		Timeout:         DefaultTimeout,
		BackoffFactor:   DefaultBackoffFactor,
		MaxInterval:     DefaultMaxInterval,
	}
}

// withDefaults fills zero or nonsensical fields from DefaultConfig.
func (c Config) withDefaults() Config {
	if c.InitialInterval <= 0 {
		c.InitialInterval = DefaultInitialInterval
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.BackoffFactor < 1 {
		c.BackoffFactor = DefaultBackoffFactor
	}
	if c.MaxInterval <= 0 {
		c.MaxInterval = DefaultMaxInterval
	}
	return c
}

// backOff returns a fresh pause schedule without jitter.
func (c Config) backOff() *backoff.ExponentialBackOff {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     c.InitialInterval,
		RandomizationFactor: 0,
		Multiplier:          c.BackoffFactor,
		MaxInterval:         c.MaxInterval,
	}
	b.Reset()
	return b
}
