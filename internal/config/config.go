package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/gimelloc/ignite-gym/pkg/log"
)

type Config struct {
	API     APIConfig
	Session SessionConfig
	Avatar  AvatarConfig
	Log     log.Config
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type SessionConfig struct {
	DBPath string `mapstructure:"db_path"`
}

type AvatarConfig struct {
	// SourceDir is the directory picked images are resolved against.
	SourceDir string `mapstructure:"source_dir"`
	MaxSizeMB int64  `mapstructure:"max_size_mb"`
}

// Load reads configuration from ./config/config.yaml (when present)
// and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, rely on defaults and env vars.
	}

	// Set defaults
	v.SetDefault("api.base_url", "http://localhost:3333")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("session.db_path", "./data/session.db")
	v.SetDefault("avatar.source_dir", ".")
	v.SetDefault("avatar.max_size_mb", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", true)
	v.SetDefault("log.app", "gymctl")

	// Bind environment variables
	v.BindEnv("api.base_url", "IGNITEGYM_API_URL")
	v.BindEnv("api.timeout", "IGNITEGYM_API_TIMEOUT")
	v.BindEnv("session.db_path", "IGNITEGYM_SESSION_DB")
	v.BindEnv("avatar.source_dir", "IGNITEGYM_AVATAR_DIR")
	v.BindEnv("avatar.max_size_mb", "IGNITEGYM_AVATAR_MAX_MB")
	v.BindEnv("log.level", "IGNITEGYM_LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	return &cfg, nil
}
