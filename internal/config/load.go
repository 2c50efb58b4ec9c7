package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from an optional config.yaml in the working
// directory and from environment variables with the TASKRAIL_ prefix.
// Environment variables take precedence over file values
// (e.g. TASKRAIL_DATABASE_URL overrides database.url).
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults keep a bare environment bootable except for the database URL.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	// Registered empty so AutomaticEnv can populate it; validation rejects
	// a configuration that leaves it blank.
	v.SetDefault("database.url", "")
	v.SetDefault("password.hash_schemes", []string{"bcrypt"})
	v.SetDefault("password.validators", map[string]map[string]any{
		"levenshtein": {"coefficient": 0.7},
		"strength":    {"uppercase": 1, "numbers": 0, "special": 0},
	})
	v.SetDefault("task.worker_count", 2)
	v.SetDefault("task.queue_size", 100)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TASKRAIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; everything can come from the
		// environment. Any other read error is fatal.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
