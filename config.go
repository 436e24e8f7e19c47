package main

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the root application configuration, read from the environment
// (a .env file is loaded first when present).
type Config struct {
	Server     ServerConfig
	Store      StoreConfig
	Dictionary DictionaryConfig
	Auth       AuthConfig
	Game       GameConfig
	RateLimit  RateLimitConfig
	CORS       CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port              string        `env:"PORT" env-default:"8080"`
	ReadHeaderTimeout time.Duration `env:"SERVER_READ_HEADER_TIMEOUT" env-default:"10s"`
	ReadTimeout       time.Duration `env:"SERVER_READ_TIMEOUT" env-default:"30s"`
	WriteTimeout      time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout       time.Duration `env:"SERVER_IDLE_TIMEOUT" env-default:"120s"`
	ShutdownTimeout   time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	TrustedProxies    []string      `env:"SERVER_TRUSTED_PROXIES" env-default:"127.0.0.1"`
}

// StoreConfig holds document store settings.
type StoreConfig struct {
	Path string `env:"STORE_PATH" env-default:"data/speedle.db"`
}

// DictionaryConfig holds WordsAPI client settings. With no key configured the
// client degrades to its built-in fallback word list.
type DictionaryConfig struct {
	Host    string        `env:"WORDSAPI_HOST" env-default:"wordsapiv1.p.rapidapi.com"`
	Key     string        `env:"WORDSAPI_KEY"`
	Timeout time.Duration `env:"WORDSAPI_TIMEOUT" env-default:"8s"`
}

// AuthConfig holds bearer-token verification settings.
type AuthConfig struct {
	JWTSecret string `env:"AUTH_JWT_SECRET"`
	JWTIssuer string `env:"AUTH_JWT_ISSUER" env-default:"speedle"`
}

// GameConfig holds gameplay tunables, including the bounded retry budgets for
// dictionary lookups so tests can exercise exhaustion.
type GameConfig struct {
	DefaultLang             string `env:"DEFAULT_LANG" env-default:"en-ZA"`
	SeedDefinitionRetries   int    `env:"SEED_DEFINITION_RETRIES" env-default:"5"`
	SeedSynonymRetries      int    `env:"SEED_SYNONYM_RETRIES" env-default:"5"`
	WordPickRetries         int    `env:"WORD_PICK_RETRIES" env-default:"10"`
	HintPenaltySec          int    `env:"HINT_PENALTY_SEC" env-default:"10"`
	HintMinRemainingSec     int    `env:"HINT_MIN_REMAINING_SEC" env-default:"10"`
	LeaderboardDefaultLimit int    `env:"LEADERBOARD_DEFAULT_LIMIT" env-default:"100"`
	LeaderboardMaxLimit     int    `env:"LEADERBOARD_MAX_LIMIT" env-default:"200"`
}

// RateLimitConfig holds per-client rate limiting settings.
type RateLimitConfig struct {
	RPS   int `env:"RATE_LIMIT_RPS" env-default:"5"`
	Burst int `env:"RATE_LIMIT_BURST" env-default:"10"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
}

// loadConfig reads the configuration from a .env file (if any) and the
// process environment.
func loadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}
