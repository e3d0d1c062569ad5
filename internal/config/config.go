package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Trash    TrashConfig    `mapstructure:"trash"`
}

// ServerConfig holds the HTTP server configuration
type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
}

// DatabaseConfig holds the embedded database configuration
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds the persistent log file configuration
type LogConfig struct {
	File string `mapstructure:"file"`
}

// TrashConfig holds the soft-delete retention configuration
type TrashConfig struct {
	RetentionDays int `mapstructure:"retention_days"`
}

// LoadConfig loads configuration from the given yaml file path with
// environment-variable overrides (prefix ACCOUNTS, e.g. ACCOUNTS_SERVER_PORT).
// An empty path loads config.yaml from the working directory if present;
// a missing file falls back to defaults.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.address", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.path", "data/accounts.db")
	v.SetDefault("log.file", "data/accounts.log")
	v.SetDefault("trash.retention_days", 30)

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("ACCOUNTS")
	// Nested keys hold dots; env var names can't, so server.port must be
	// reachable as ACCOUNTS_SERVER_PORT.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Defaults are complete, so only an explicitly named file is required.
		if _, notFound := err.(viper.ConfigFileNotFoundError); path != "" || !notFound {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
