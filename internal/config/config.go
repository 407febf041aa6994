package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Admin     AdminConfig     `yaml:"admin"`
	Translate TranslateConfig `yaml:"translate"`
	Classify  ClassifyConfig  `yaml:"classify"`
	Feed      FeedConfig      `yaml:"feed"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AdminConfig holds the operator API settings. An empty token disables
// authentication; that is only acceptable for local development, so the
// server logs a warning at startup.
type AdminConfig struct {
	Token string `yaml:"token" env:"ADMIN_TOKEN"`
}

// TranslateConfig holds translation service settings. An empty API key
// disables the service: every translation call degrades to the fallback
// (the source word).
type TranslateConfig struct {
	APIKey  string        `yaml:"api_key"  env:"TRANSLATE_API_KEY"`
	BaseURL string        `yaml:"base_url" env:"TRANSLATE_BASE_URL" env-default:"https://translation.googleapis.com/language/translate/v2"`
	Timeout time.Duration `yaml:"timeout"  env:"TRANSLATE_TIMEOUT"  env-default:"15s"`
}

// ClassifyConfig holds classification service (LLM) settings.
type ClassifyConfig struct {
	APIKey    string `yaml:"api_key"    env:"CLASSIFY_API_KEY"`
	Model     string `yaml:"model"      env:"CLASSIFY_MODEL"      env-default:"claude-sonnet-4-5"`
	MaxTokens int    `yaml:"max_tokens" env:"CLASSIFY_MAX_TOKENS" env-default:"1024"`
}

// FeedConfig holds change-feed settings.
type FeedConfig struct {
	Channel    string `yaml:"channel"     env:"FEED_CHANNEL"     env-default:"suggestion_changes"`
	BufferSize int    `yaml:"buffer_size" env:"FEED_BUFFER_SIZE" env-default:"64"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings for the admin panel frontend.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
