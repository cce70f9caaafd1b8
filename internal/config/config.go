package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root application configuration, populated from the
// environment. cmd binaries load a .env file first outside production.
type Config struct {
	AppEnv   string `env:"APP_ENV" env-default:"development"`
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Parser   ParserConfig
	LLM      LLMConfig
}

type ServerConfig struct {
	Port           int    `env:"SERVER_PORT" env-default:"8000"`
	AllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:3000,http://localhost:5173"`
}

type DatabaseConfig struct {
	URL      string `env:"DATABASE_URL" env-required:"true"`
	MaxConns int32  `env:"DATABASE_MAX_CONNS" env-default:"10"`
	MinConns int32  `env:"DATABASE_MIN_CONNS" env-default:"2"`
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET" env-required:"true"`
	TokenTTL  time.Duration `env:"JWT_TOKEN_TTL" env-default:"24h"`
}

type StorageConfig struct {
	Endpoint      string `env:"R2_ENDPOINT"`
	AccessKey     string `env:"R2_ACCESS_KEY"`
	SecretKey     string `env:"R2_SECRET_KEY"`
	Bucket        string `env:"R2_BUCKET_NAME"`
	PublicBaseURL string `env:"R2_PUBLIC_BASE_URL"`
}

type ParserConfig struct {
	// Backend picks the primary menu parser: "rules" or "llm". The other
	// one becomes the fallback.
	Backend      string        `env:"PARSER_BACKEND" env-default:"rules"`
	RulesFile    string        `env:"PARSER_RULES_FILE"`
	PollInterval time.Duration `env:"PARSER_POLL_INTERVAL" env-default:"2s"`
}

type LLMConfig struct {
	Provider     string `env:"LLM_PROVIDER" env-default:"gemini"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" env-default:"gemini-1.5-flash"`
	LlamaAPIKey  string `env:"LLAMA_API_KEY"`
	LlamaModel   string `env:"LLAMA_MODEL"`
	LlamaAPIURL  string `env:"LLAMA_API_URL"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
