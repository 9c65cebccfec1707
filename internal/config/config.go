// Package config содержит логику чтения конфигурации системы агроведа.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config содержит параметры конфигурации системы агроведа.
type Config struct {
	RunAddress string `env:"RUN_ADDRESS"`
	DataDir    string `env:"DATA_DIR"`
	SeedDemo   bool   `env:"SEED_DEMO"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDataDir := cfg.DataDir
	envSeedDemo := cfg.SeedDemo

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	flag.StringVar(&cfg.DataDir, "d", "data", "directory for persisted collections")
	flag.BoolVar(&cfg.SeedDemo, "s", false, "seed demo batches on first run")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDataDir != "" {
		cfg.DataDir = envDataDir
	}
	if envSeedDemo {
		cfg.SeedDemo = true
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8080"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}

	return cfg, nil
}
