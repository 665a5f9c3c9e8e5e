package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Firebase FirebaseConfig
	LLM      LLMConfig
	GitHub   GitHubConfig
	CORS     CORSConfig
	App      AppConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	DSN      string
	MaxConns int
	MinConns int
}

// RedisConfig is optional; an empty Addr disables the cross-instance detail lock.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type FirebaseConfig struct {
	CredentialsPath string
	// AuthMode is "firebase" (verify ID tokens) or "header" (trust X-User-Id, development only).
	AuthMode string
}

// LLMConfig holds one optional credential per provider. A provider without a
// key is skipped by the fan-out.
type LLMConfig struct {
	OpenAIKey string
	ClaudeKey string
	GeminiKey string
	Timeout   time.Duration

	// Base URLs are overridable for tests and proxies.
	OpenAIBaseURL string
	ClaudeBaseURL string
	GeminiBaseURL string
}

type GitHubConfig struct {
	Token   string
	BaseURL string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	LogFormat   string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("PORT"),
		},
		Database: DatabaseConfig{
			DSN:      v.GetString("DB_DSN"),
			MaxConns: v.GetInt("DB_MAX_CONNS"),
			MinConns: v.GetInt("DB_MIN_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: v.GetString("FIREBASE_CREDENTIALS_PATH"),
			AuthMode:        strings.ToLower(v.GetString("AUTH_MODE")),
		},
		LLM: LLMConfig{
			OpenAIKey:     v.GetString("OPENAI_API_KEY"),
			ClaudeKey:     v.GetString("CLAUDE_API_KEY"),
			GeminiKey:     v.GetString("GEMINI_API_KEY"),
			Timeout:       v.GetDuration("LLM_TIMEOUT"),
			OpenAIBaseURL: v.GetString("OPENAI_BASE_URL"),
			ClaudeBaseURL: v.GetString("CLAUDE_BASE_URL"),
			GeminiBaseURL: v.GetString("GEMINI_BASE_URL"),
		},
		GitHub: GitHubConfig{
			Token:   v.GetString("GITHUB_API_KEY"),
			BaseURL: v.GetString("GITHUB_BASE_URL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		App: AppConfig{
			Environment: v.GetString("APP_ENV"),
			LogLevel:    v.GetString("LOG_LEVEL"),
			LogFormat:   v.GetString("LOG_FORMAT"),
			Version:     v.GetString("APP_VERSION"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("AUTH_MODE", "firebase")
	v.SetDefault("LLM_TIMEOUT", "45s")
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com")
	v.SetDefault("CLAUDE_BASE_URL", "https://api.anthropic.com")
	v.SetDefault("GITHUB_BASE_URL", "https://api.github.com")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("APP_VERSION", "1.0.0")
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}

	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive")
	}

	switch c.Firebase.AuthMode {
	case "firebase":
		if c.Firebase.CredentialsPath == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required when AUTH_MODE=firebase")
		}
	case "header":
		if c.App.Environment == "production" {
			return fmt.Errorf("AUTH_MODE=header is not allowed in production")
		}
	default:
		return fmt.Errorf("unknown AUTH_MODE %q", c.Firebase.AuthMode)
	}

	return nil
}

// ConfiguredProviders lists the providers that have a credential set.
func (c LLMConfig) ConfiguredProviders() []string {
	var out []string
	if c.OpenAIKey != "" {
		out = append(out, "openai")
	}
	if c.ClaudeKey != "" {
		out = append(out, "claude")
	}
	if c.GeminiKey != "" {
		out = append(out, "gemini")
	}
	return out
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
