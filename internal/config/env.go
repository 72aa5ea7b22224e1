// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the settings revdiff reads from the environment.
type Env struct {
	Log      string `env:"REVDIFF_LOG"       envDefault:"error"`
	CfgFile  string `env:"REVDIFF_CFG_FILE"`
	CacheDir string `env:"REVDIFF_CACHE_DIR"`
	Cache    bool   `env:"REVDIFF_CACHE"     envDefault:"true"`
	Workers  int    `env:"REVDIFF_WORKERS"   envDefault:"0"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv returns the process environment settings.
func LoadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}
