package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm" validate:"required"`
	Session SessionConfig `mapstructure:"session" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// ReadTimeoutSeconds bounds how long reading a request may take.
	ReadTimeoutSeconds int `mapstructure:"read_timeout_seconds" validate:"gt=0"`
	// WriteTimeoutSeconds must cover a full model round trip, since the
	// generation runs inside the request.
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" validate:"gt=0"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName    string `mapstructure:"model_name" validate:"required"`
	// PromptTemplatePath overrides the embedded prompt template when set.
	PromptTemplatePath string `mapstructure:"prompt_template_path"`
}

// SessionConfig controls the visitor session cookie and its lifetime.
type SessionConfig struct {
	CookieName   string `mapstructure:"cookie_name" validate:"required"`
	CookieSecure bool   `mapstructure:"cookie_secure"`
	TTLMinutes   int    `mapstructure:"ttl_minutes" validate:"gt=0"`
}
