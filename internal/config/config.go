package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config - конфигурация сервиса, собирается из окружения
type Config struct {
	AppPort string

	// URL для REST-доставки результатов; пустая строка = доставка отключена
	CallbackURL string

	// секрет для подписи embed-токенов; пустая строка = токены не требуются
	EmbedTokenSecret string

	// разрешённый Origin для WebSocket; пустая строка = любой
	AllowedOrigin string

	// сколько держать завершённые сессии до уборки
	SessionTTL time.Duration
}

// Load читает конфигурацию из .env (если есть) и переменных окружения
func Load() *Config {
	// .env опционален - в проде переменные задаются окружением
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:          getEnv("APP_PORT", "8080"),
		CallbackURL:      os.Getenv("CALLBACK_URL"),
		EmbedTokenSecret: os.Getenv("EMBED_TOKEN_SECRET"),
		AllowedOrigin:    os.Getenv("ALLOWED_ORIGIN"),
		SessionTTL:       time.Duration(getEnvInt("SESSION_TTL_MINUTES", 60)) * time.Minute,
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
