package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	DatasetPath    string `mapstructure:"DATASET_PATH"`
	DatasetLayout  string `mapstructure:"DATASET_LAYOUT"`
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	AdminKeyHash   string `mapstructure:"ADMIN_KEY_HASH"`
	HTTPAddr       string `mapstructure:"HTTP_ADDR"`
	LogMode        string `mapstructure:"LOG_MODE"`
	CORSOrigins    string `mapstructure:"CORS_ORIGINS"`
}

// Defaults applied before the .env file and the environment are read.
// Every key needs an entry here so that AutomaticEnv can see it on Unmarshal.
var defaults = map[string]string{
	"DATABASE_DRIVER": "postgres",
	"DATABASE_URL":    "",
	"DATASET_PATH":    "./games.csv",
	"DATASET_LAYOUT":  "standard",
	"JWT_SECRET":      "",
	"ADMIN_KEY_HASH":  "",
	"HTTP_ADDR":       ":8080",
	"LOG_MODE":        "development",
	"CORS_ORIGINS":    "*",
}

// LoadConfig loads the configuration from a .env file in dir and environment
// variables. Environment variables win over the file.
func LoadConfig(dir string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	cfg.DatabaseDriver = strings.ToLower(strings.TrimSpace(cfg.DatabaseDriver))
	return &cfg, nil
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, part := range strings.Split(c.CORSOrigins, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
