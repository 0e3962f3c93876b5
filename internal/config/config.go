package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Data     DataConfig
	DB       DatabaseConfig
	News     NewsConfig
	Sessions SessionsConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DataConfig struct {
	CitiesPath      string
	ComparisonsPath string
}

type DatabaseConfig struct {
	Path string
}

type NewsConfig struct {
	Key1        string
	Key2        string
	BaseURL     string
	PageSize    int
	CacheTTL    time.Duration
	WarmCache   bool
	WarmWorkers int
	WarmBuffer  int
}

type SessionsConfig struct {
	TTL time.Duration
	// UI choreography defaults; clients receive the effective values in
	// each command, so tuning here never desyncs them.
	ZoomDuration       time.Duration
	RevealBuffer       time.Duration
	CompareRevealDelay time.Duration
	MessageTTL         time.Duration
	CompareBreakpoint  int
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Data: DataConfig{
			CitiesPath:      getEnv("CITIES_PATH", "./data/cities.json"),
			ComparisonsPath: getEnv("COMPARISONS_PATH", "./data/comparisons.json"),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/city-globe.db"),
		},
		News: NewsConfig{
			Key1:        getEnv("NEWS_API_KEY_1", ""),
			Key2:        getEnv("NEWS_API_KEY_2", ""),
			BaseURL:     getEnv("NEWS_BASE_URL", "https://newsdata.io"),
			PageSize:    getEnvInt("NEWS_PAGE_SIZE", 3),
			CacheTTL:    getEnvDuration("NEWS_CACHE_TTL", 60*time.Minute),
			WarmCache:   getEnvBool("NEWS_WARM_CACHE", false),
			WarmWorkers: getEnvInt("NEWS_WARM_WORKERS", 2),
			WarmBuffer:  getEnvInt("NEWS_WARM_BUFFER", 20),
		},
		Sessions: SessionsConfig{
			TTL:                getEnvDuration("SESSION_TTL", 30*time.Minute),
			ZoomDuration:       getEnvDuration("ZOOM_DURATION", 1000*time.Millisecond),
			RevealBuffer:       getEnvDuration("REVEAL_BUFFER", 100*time.Millisecond),
			CompareRevealDelay: getEnvDuration("COMPARE_REVEAL_DELAY", 1200*time.Millisecond),
			MessageTTL:         getEnvDuration("MESSAGE_TTL", 3000*time.Millisecond),
			CompareBreakpoint:  getEnvInt("COMPARE_BREAKPOINT", 1024),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.News.PageSize < 1 || c.News.PageSize > 10 {
		return fmt.Errorf("news page size must be between 1 and 10, got %d", c.News.PageSize)
	}
	if c.News.CacheTTL < time.Minute {
		return fmt.Errorf("news cache TTL must be at least 1 minute")
	}
	if c.Sessions.TTL < time.Minute {
		return fmt.Errorf("session TTL must be at least 1 minute")
	}
	if c.Sessions.CompareBreakpoint < 1 {
		return fmt.Errorf("invalid compare breakpoint: %d", c.Sessions.CompareBreakpoint)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
