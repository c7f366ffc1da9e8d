package config

import (
	"fmt"
	"time"

	coreconfig "github.com/go-core-fx/config"
)

type Config struct {
	BaseURL   string        `koanf:"base_url"`
	TokenFile string        `koanf:"token_file"`
	Timeout   time.Duration `koanf:"timeout"`
	LogFile   string        `koanf:"log_file"`
	Debug     bool          `koanf:"debug"`
	JSON      bool          `koanf:"json"`
}

func New() (Config, error) {
	cfg := Config{
		BaseURL:   "http://localhost:8000/api",
		TokenFile: "./kassa-token",
		Timeout:   20 * time.Second,
		LogFile:   "./kassa.log",
		Debug:     false,
	}

	if err := coreconfig.Load(&cfg); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}

	return cfg, nil
}
