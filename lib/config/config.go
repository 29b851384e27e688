// Copyright 2021 Silvio Böhler
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds the settings read from the environment.
type Config struct {
	// Logging
	LogLevel  string `env:"COINJAR_LOG_LEVEL"  envDefault:"warn"`
	LogFormat string `env:"COINJAR_LOG_FORMAT" envDefault:"console"`

	// Exchange rates
	RatesURL     string        `env:"COINJAR_RATES_URL"`
	RatesCache   string        `env:"COINJAR_RATES_CACHE"`
	RatesTimeout time.Duration `env:"COINJAR_RATES_TIMEOUT" envDefault:"10s"`
	RatesRetries int           `env:"COINJAR_RATES_RETRIES" envDefault:"3"`

	// Precision is the number of decimal places of split shares.
	Precision int32 `env:"COINJAR_PRECISION" envDefault:"2"`
}

// Load reads the configuration from the environment. Variables from
// the given env files (default .env) are loaded first, without
// overriding variables already set. Missing env files are ignored.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration defaults, ignoring the
// environment.
func Default() *Config {
	cfg := &Config{}
	// The defaults are constant and valid.
	_ = env.ParseWithOptions(cfg, env.Options{Environment: map[string]string{}})
	return cfg
}

type contextKey struct{}

// WithContext returns a copy of ctx carrying cfg.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, contextKey{}, cfg)
}

// FromContext returns the configuration stored in ctx, or the defaults.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(contextKey{}).(*Config); ok {
		return cfg
	}
	return Default()
}
