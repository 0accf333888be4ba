package server

import (
	"strings"

	"github.com/spf13/viper"
)

// Config stores the process configuration. Values are read by viper from an
// optional config file or environment variables.
type Config struct {
	// Server configuration
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	GinMode       string `mapstructure:"GIN_MODE"`

	// Remote service configuration
	APIBaseURL      string `mapstructure:"API_BASE_URL"`
	APITimeoutSecs  int    `mapstructure:"API_TIMEOUT_SECONDS"`
	FetchTimeoutSec int    `mapstructure:"FETCH_TIMEOUT_SECONDS"`

	// Logging configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_ADDRESS", ":8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("API_BASE_URL", "")
	v.SetDefault("API_TIMEOUT_SECONDS", 30)
	v.SetDefault("FETCH_TIMEOUT_SECONDS", 30)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix("LIANKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
