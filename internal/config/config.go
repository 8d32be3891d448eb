package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/DoyleJ11/spell-draft-backend/internal/engine"
)

const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Config holds all configuration for the server
type Config struct {
	Port         int
	SpellsAmount int
	LobbyLinger  time.Duration
	Log          LogConfig
	Store        StoreConfig
}

type LogConfig struct {
	Level       string
	Development bool
}

// StoreConfig picks where draft sessions are saved for resuming
type StoreConfig struct {
	Kind        string
	RedisAddr   string
	RedisPass   string
	RedisDB     int
	SessionTTL  time.Duration
	DatabaseURL string
}

// Load reads an optional .env file, then the environment.
func Load(envFiles ...string) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load(envFiles...)

	port, err := getEnvAsInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	amount, err := getEnvAsInt("SPELLS_AMOUNT", 10)
	if err != nil {
		return nil, err
	}
	logDev, err := getEnvAsBool("LOG_DEV", false)
	if err != nil {
		return nil, err
	}
	redisDB, err := getEnvAsInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	ttl, err := getEnvAsDuration("SESSION_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	linger, err := getEnvAsDuration("LOBBY_LINGER", time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:         port,
		SpellsAmount: amount,
		LobbyLinger:  linger,
		Log: LogConfig{
			Level:       getEnvOrDefault("LOG_LEVEL", "info"),
			Development: logDev,
		},
		Store: StoreConfig{
			Kind:        getEnvOrDefault("STORE", StoreMemory),
			RedisAddr:   getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			RedisPass:   os.Getenv("REDIS_PASSWORD"),
			RedisDB:     redisDB,
			SessionTTL:  ttl,
			DatabaseURL: os.Getenv("DATABASE_URL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if !engine.ValidSpellsAmount(c.SpellsAmount) {
		return fmt.Errorf("SPELLS_AMOUNT must be between 1 and %d, got %d", engine.GridSlots, c.SpellsAmount)
	}
	if c.LobbyLinger <= 0 {
		return fmt.Errorf("LOBBY_LINGER must be positive, got %s", c.LobbyLinger)
	}
	switch c.Store.Kind {
	case StoreMemory, StoreRedis:
	case StorePostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE=%s", StorePostgres)
		}
	default:
		return fmt.Errorf("unknown STORE %q", c.Store.Kind)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
