package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g.
// PRESENT_LLM_GEMINI_API_KEY for llm.gemini_api_key.
const EnvPrefix = "PRESENT"

// defaults lists every known key with its default value. Keys without a
// sensible default map to nil and are only bound to the environment.
var defaults = map[string]interface{}{
	"server.port":                  8080,
	"server.log_level":             "info",
	"server.read_timeout_seconds":  15,
	"server.write_timeout_seconds": 120,
	"llm.gemini_api_key":           nil,
	"llm.model_name":               "gemini-1.5-pro",
	"llm.prompt_template_path":     nil,
	"session.cookie_name":          "present_session",
	"session.cookie_secure":        false,
	"session.ttl_minutes":          120,
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind every key so Unmarshal sees values that only exist in the environment
	for key, value := range defaults {
		if value != nil {
			v.SetDefault(key, value)
		}
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	// Optional config.yaml in the working directory
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
