package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramBotToken  string
	OpenRouterAPIKey  string
	OpenRouterModel   string
	DatabasePath      string
	GenerationTimeout time.Duration
}

// Load читает конфигурацию из переменных окружения.
// Файл .env подхватывается, если он есть.
func Load() (*Config, error) {
	_ = godotenv.Load()

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN не установлен")
	}

	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY не установлен")
	}

	dbPath := os.Getenv("GYM_BOT_DB")
	if dbPath == "" {
		dbPath = "gym_bot.db"
	}

	timeout := 60 * time.Second
	if raw := os.Getenv("GENERATION_TIMEOUT"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("некорректный GENERATION_TIMEOUT: %w", err)
		}
		timeout = parsed
	}

	return &Config{
		TelegramBotToken:  token,
		OpenRouterAPIKey:  apiKey,
		OpenRouterModel:   os.Getenv("OPENROUTER_MODEL"),
		DatabasePath:      dbPath,
		GenerationTimeout: timeout,
	}, nil
}
