package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"Server"`
	Storage StorageConfig `mapstructure:"Storage"`
	Seed    SeedConfig    `mapstructure:"Seed"`
}

type ServerConfig struct {
	Port    string `mapstructure:"Port"`
	BaseURL string `mapstructure:"BaseURL"`
}

type StorageConfig struct {
	PageSize   int   `mapstructure:"PageSize"`
	QuotaBytes int64 `mapstructure:"QuotaBytes"`
}

// SeedConfig управляет генерацией демонстрационных данных при старте
type SeedConfig struct {
	Enabled    bool   `mapstructure:"Enabled"`
	OwnerID    string `mapstructure:"OwnerID"`
	OwnerEmail string `mapstructure:"OwnerEmail"`
}

func NewConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	// Привязываем переменные окружения
	v.BindEnv("Server.Port", "HTTP_PORT")
	v.BindEnv("Server.BaseURL", "BASE_URL")
	v.BindEnv("Storage.PageSize", "STORAGE_PAGE_SIZE")
	v.BindEnv("Storage.QuotaBytes", "STORAGE_QUOTA_BYTES")
	v.BindEnv("Seed.Enabled", "SEED_ENABLED")
	v.BindEnv("Seed.OwnerID", "SEED_OWNER_ID")
	v.BindEnv("Seed.OwnerEmail", "SEED_OWNER_EMAIL")

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Warning: using only environment variables: %v\n", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Значения по умолчанию
	if cfg.Server.Port == "" {
		cfg.Server.Port = v.GetString("HTTP_PORT")
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = "2525"
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = fmt.Sprintf("http://localhost:%s", cfg.Server.Port)
	}
	if cfg.Storage.PageSize <= 0 {
		cfg.Storage.PageSize = 20
	}
	if cfg.Storage.QuotaBytes <= 0 {
		cfg.Storage.QuotaBytes = 5368709120 // 5GB
	}
	if cfg.Seed.Enabled && cfg.Seed.OwnerID == "" {
		return nil, fmt.Errorf("seed is enabled but Seed.OwnerID is empty")
	}

	return &cfg, nil
}
