package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from an optional config.yaml in the working
// directory and from ARCANA_-prefixed environment variables, with the
// environment taking precedence. Returns a validated Config or an error.
func Load() (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("auth.token_lifetime_minutes", 60*24*30)
	v.SetDefault("booster.cooldown_hours", 12)
	v.SetDefault("booster.size", 5)

	// Optional config file in the working directory
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; the environment can carry everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Configure environment variables
	v.SetEnvPrefix("ARCANA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind critical environment variables so they resolve even
	// without a config file entry.
	bindEnvs := []struct {
		key    string
		envVar string
	}{
		{"server.port", "ARCANA_SERVER_PORT"},
		{"server.log_level", "ARCANA_SERVER_LOG_LEVEL"},
		{"database.url", "ARCANA_DATABASE_URL"},
		{"auth.jwt_secret", "ARCANA_AUTH_JWT_SECRET"},
		{"auth.token_lifetime_minutes", "ARCANA_AUTH_TOKEN_LIFETIME_MINUTES"},
		{"booster.cooldown_hours", "ARCANA_BOOSTER_COOLDOWN_HOURS"},
		{"booster.size", "ARCANA_BOOSTER_SIZE"},
	}
	for _, env := range bindEnvs {
		if err := v.BindEnv(env.key, env.envVar); err != nil {
			return nil, fmt.Errorf("error binding environment variable %s: %w", env.envVar, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
