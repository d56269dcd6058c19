package config

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
}

// ServerConfig contains HTTP server and logging settings.
type ServerConfig struct {
	Port                   int      `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string   `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	LogFormat              string   `mapstructure:"log_format"               validate:"required,oneof=auto json text"`
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds" validate:"required,gt=0"`
	CORSAllowedOrigins     []string `mapstructure:"cors_allowed_origins"     validate:"dive,required"`
}

// DatabaseConfig contains PostgreSQL connection settings.
type DatabaseConfig struct {
	URL          string `mapstructure:"url"            validate:"required,url"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gt=0"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"gte=0"`
}

// AuthConfig contains token signing and password hashing settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,min=1,max=44640"` // max 31 days
	BcryptCost           int    `mapstructure:"bcrypt_cost"            validate:"required,min=4,max=31"`
}

// LLMConfig selects and configures the flashcard generation provider.
// openrouter and openai share one chat-completions client; gemini uses the
// genai SDK.
type LLMConfig struct {
	Provider       string `mapstructure:"provider"        validate:"required,oneof=openrouter openai gemini"`
	APIKey         string `mapstructure:"api_key"         validate:"required"`
	BaseURL        string `mapstructure:"base_url"        validate:"omitempty,url"`
	DefaultModel   string `mapstructure:"default_model"   validate:"required,max=100"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries     int    `mapstructure:"max_retries"     validate:"gte=0,lte=5"`
	Referer        string `mapstructure:"referer"         validate:"omitempty,url"`
	AppTitle       string `mapstructure:"app_title"`
}
