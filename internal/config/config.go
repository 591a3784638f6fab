// internal/config/config.go
package config

import (
	"os"
	"strconv"
)

// Config carries all environment-driven settings. Values are read once at
// startup; a .env file is honored via godotenv autoload in main.
type Config struct {
	Port        string
	DatabaseURL string

	RedisAddr string
	RedisDB   int

	DDragonBaseURL string
	DDragonLocale  string

	// HistorySecret gates the history view. HistorySecretHash, when set,
	// is an Argon2id encoded hash that takes precedence over the plain
	// secret.
	HistorySecret     string
	HistorySecretHash string
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		Port:              getEnv("PORT", "4000"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		DDragonBaseURL:    os.Getenv("DDRAGON_BASE_URL"),
		DDragonLocale:     getEnv("DDRAGON_LOCALE", "en_US"),
		HistorySecret:     os.Getenv("HISTORY_SECRET"),
		HistorySecretHash: os.Getenv("HISTORY_SECRET_HASH"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
