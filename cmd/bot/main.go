package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ArturKamnev/TelegramGYMCalculate/internal/bot"
	"github.com/ArturKamnev/TelegramGYMCalculate/internal/config"
	"github.com/ArturKamnev/TelegramGYMCalculate/internal/database"
	"github.com/ArturKamnev/TelegramGYMCalculate/internal/dialog"
	"github.com/ArturKamnev/TelegramGYMCalculate/internal/openrouter"
)

func main() {
	// Загрузка конфигурации из переменных окружения
	log.Println("Загрузка конфигурации...")
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Не удалось загрузить конфигурацию: %v", err)
	}

	// Создание базы данных
	log.Println("Создание базы данных...")
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Не удалось создать базу данных: %v", err)
	}
	defer db.Close() // Закрыть соединение с БД при завершении

	// Клиент генерации планов и автомат диалога
	client := openrouter.NewClient(cfg.OpenRouterAPIKey, cfg.OpenRouterModel)
	machine := dialog.New(db, client)

	// Создание бота
	b, err := bot.New(cfg.TelegramBotToken, machine, cfg.GenerationTimeout)
	if err != nil {
		log.Fatalf("Не удалось создать бота: %v", err)
	}

	// Завершение по Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("Бот запущен. Нажмите Ctrl+C для остановки.")
	if err := b.Start(ctx); err != nil {
		log.Fatalf("Ошибка работы бота: %v", err)
	}
}
