// Package bot связывает Telegram-транспорт с автоматом диалога.
package bot

import (
	"context"
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ArturKamnev/TelegramGYMCalculate/internal/dialog"
)

// Bot представляет Telegram бота
type Bot struct {
	api        *tgbotapi.BotAPI
	machine    *dialog.Machine
	genTimeout time.Duration
}

// New создает нового бота
func New(token string, machine *dialog.Machine, genTimeout time.Duration) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания бота: %w", err)
	}

	log.Printf("Авторизован как @%s", api.Self.UserName)

	return &Bot{
		api:        api,
		machine:    machine,
		genTimeout: genTimeout,
	}, nil
}

// Start запускает обработку обновлений
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return nil
		case update := <-updates:
			b.handleUpdate(update)
		}
	}
}

// handleUpdate обрабатывает входящее обновление.
// События обрабатываются последовательно; в горутину уходит только
// долгая генерация плана (см. deliver).
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	b.handleMessage(update.Message)
}

// handleMessage направляет сообщение в автомат диалога
func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	ctx := context.Background()
	userID := msg.From.ID
	chatID := msg.Chat.ID

	var res dialog.Result
	if msg.IsCommand() {
		switch msg.Command() {
		case "cancel":
			res = b.machine.Cancel(ctx, userID)
		default:
			// /start и любая другая команда начинают диалог заново
			res = b.machine.Start(ctx, userID)
		}
	} else {
		res = b.machine.Handle(ctx, userID, msg.Text)
	}

	b.deliver(chatID, res)
}

// deliver отправляет директивы и запускает отложенную генерацию
func (b *Bot) deliver(chatID int64, res dialog.Result) {
	for _, d := range res.Directives {
		b.send(chatID, d)
	}

	if res.Task == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), b.genTimeout)
		defer cancel()
		for _, d := range res.Task(ctx) {
			b.send(chatID, d)
		}
	}()
}

// send преобразует директиву в сообщение Telegram
func (b *Bot) send(chatID int64, d dialog.Directive) {
	msg := tgbotapi.NewMessage(chatID, d.Text)
	if d.HTML {
		msg.ParseMode = tgbotapi.ModeHTML
	}

	switch {
	case d.RemoveKeyboard:
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	case len(d.Keyboard) > 0:
		rows := make([][]tgbotapi.KeyboardButton, 0, len(d.Keyboard))
		for _, row := range d.Keyboard {
			buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
			for _, label := range row {
				buttons = append(buttons, tgbotapi.NewKeyboardButton(label))
			}
			rows = append(rows, buttons)
		}
		keyboard := tgbotapi.NewReplyKeyboard(rows...)
		keyboard.ResizeKeyboard = true
		msg.ReplyMarkup = keyboard
	}

	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Ошибка отправки сообщения: %v", err)
	}
}
