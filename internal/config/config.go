// Package config centralizes process-scope settings loaded from the
// environment (and an optional .env file); nothing else in this module
// calls os.Getenv directly.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"scrabblesrv/internal/model"
)

// Config is every process-scope setting the rest of the module depends on.
type Config struct {
	Port                  string
	WordListPath          string
	Language              model.Language
	TurnDuration          time.Duration
	MaxConsecutivePasses  int
	ExchangeCountsAsStall bool
	IdleThreshold         time.Duration
	SweepInterval         time.Duration
	TickInterval          time.Duration
	AllowedOrigin         string
	LogLevel              string
}

// Load reads a .env file if present (missing is not an error) and then the
// environment, falling back to sensible defaults for anything unset.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:                  getEnv("PORT", "4000"),
		WordListPath:          getEnv("WORD_LIST_PATH", ""),
		Language:              model.Language(getEnv("LANGUAGE", string(model.LanguageEnglish))),
		TurnDuration:          getEnvDuration("TURN_DURATION", 120*time.Second),
		MaxConsecutivePasses:  getEnvInt("MAX_CONSECUTIVE_PASSES", 6),
		ExchangeCountsAsStall: getEnvBool("EXCHANGE_COUNTS_AS_STALL", true),
		IdleThreshold:         getEnvDuration("IDLE_ROOM_THRESHOLD", 30*time.Minute),
		SweepInterval:         getEnvDuration("SWEEP_INTERVAL", 5*time.Minute),
		TickInterval:          getEnvDuration("TURN_TICK_INTERVAL", 1*time.Second),
		AllowedOrigin:         getEnv("ALLOWED_ORIGIN", "*"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
