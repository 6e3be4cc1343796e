package auth

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Secret   string        `mapstructure:"Secret"`
	TokenTTL time.Duration `mapstructure:"TokenTTL"`
}

func NewConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.BindEnv("Secret", "AUTH_SECRET")
	v.BindEnv("TokenTTL", "AUTH_TOKEN_TTL")

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Warning: using only environment variables: %v\n", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("cannot unmarshal auth config: %w", err)
	}

	if cfg.Secret == "" {
		cfg.Secret = v.GetString("AUTH_SECRET")
	}
	if cfg.Secret == "" {
		return nil, fmt.Errorf("auth secret is not configured")
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = 24 * time.Hour
	}

	return &cfg, nil
}
