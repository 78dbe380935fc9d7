package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
)

// Config is the process configuration, read from the environment.
type Config struct {
	HTTPAddr      string
	GRPCAddr      string
	Store         string // memory | sqlite | redis
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Slot          string
	CatalogDir    string
	Profile       string
	WatchInterval time.Duration
	LogLevel      zapcore.Level
	LogFormat     string // json | console
	MatchDelay    time.Duration
	RevealDelay   time.Duration
	Seed          uint64 // 0 means crypto randomness

	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	LLMModel          string
	LLMFallbackModels []string
	LLMTimeout        time.Duration
}

func Load() (Config, error) {
	c := Config{
		HTTPAddr:          envOr("HOOPS_HTTP_ADDR", ":8080"),
		GRPCAddr:          os.Getenv("HOOPS_GRPC_ADDR"),
		Store:             strings.ToLower(envOr("HOOPS_STORE", "sqlite")),
		SQLitePath:        envOr("HOOPS_SQLITE_PATH", "hoops.db"),
		RedisAddr:         envOr("HOOPS_REDIS_ADDR", "localhost:6379"),
		RedisPassword:     os.Getenv("HOOPS_REDIS_PASSWORD"),
		Slot:              envOr("HOOPS_SLOT", "default"),
		CatalogDir:        os.Getenv("HOOPS_CATALOG_DIR"),
		Profile:           os.Getenv("HOOPS_PROFILE"),
		LogFormat:         envOr("HOOPS_LOG_FORMAT", "json"),
		OpenRouterAPIKey:  os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterBaseURL: envOr("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		LLMModel:          envOr("HOOPS_LLM_MODEL", "google/gemini-2.5-flash"),
		LLMFallbackModels: parseList(os.Getenv("HOOPS_LLM_FALLBACK_MODELS")),
	}

	var err error
	if c.WatchInterval, err = durationEnv("HOOPS_WATCH_INTERVAL", 2*time.Second); err != nil {
		return Config{}, err
	}
	if c.MatchDelay, err = durationEnv("HOOPS_MATCH_DELAY", 2500*time.Millisecond); err != nil {
		return Config{}, err
	}
	if c.RevealDelay, err = durationEnv("HOOPS_REVEAL_DELAY", 0); err != nil {
		return Config{}, err
	}
	if c.LLMTimeout, err = durationEnv("HOOPS_LLM_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}

	if v := os.Getenv("HOOPS_REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid HOOPS_REDIS_DB %q: %w", v, err)
		}
		c.RedisDB = db
	}
	if v := os.Getenv("HOOPS_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid HOOPS_SEED %q: %w", v, err)
		}
		c.Seed = seed
	}

	level, err := ParseLogLevel(envOr("HOOPS_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	switch c.Store {
	case "memory", "sqlite", "redis":
	default:
		return Config{}, fmt.Errorf("invalid HOOPS_STORE %q: want memory, sqlite or redis", c.Store)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return Config{}, fmt.Errorf("invalid HOOPS_LOG_FORMAT %q", c.LogFormat)
	}

	return c, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", key, v)
	}
	return d, nil
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, m := range strings.Split(s, ",") {
		m = strings.TrimSpace(m)
		if m != "" {
			out = append(out, m)
		}
	}
	return out
}

func ParseLogLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("invalid HOOPS_LOG_LEVEL %q", s)
	}
}
