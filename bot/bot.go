// Package bot adapts Telegram updates to the conversation engine: each
// incoming message becomes one engine event, each Response becomes one
// outgoing message with a reply keyboard built from the legal next inputs.
package bot

import (
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"waiter-telegram/config"
	"waiter-telegram/engine"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	engine *engine.Engine
}

func New(cfg *config.Config, eng *engine.Engine) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}
	return &Bot{api: api, engine: eng}, nil
}

func (b *Bot) setBotCommands() error {
	cfg := tgbotapi.SetMyCommandsConfig{
		Commands: []tgbotapi.BotCommand{
			{Command: "start", Description: "Запустить бота"},
			{Command: "help", Description: "Помощь"},
		},
	}
	_, err := b.api.Request(cfg)
	return err
}

func (b *Bot) Start() {
	if err := b.setBotCommands(); err != nil {
		log.Warn().Err(err).Msg("set bot commands failed")
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil || update.Message.Text == "" {
			continue
		}
		msg := update.Message
		sessionID := strconv.FormatInt(msg.From.ID, 10)

		resp := b.engine.HandleText(sessionID, strings.TrimSpace(msg.Text))
		b.reply(msg.Chat.ID, resp)
	}
}

func (b *Bot) reply(chatID int64, resp engine.Response) {
	msg := tgbotapi.NewMessage(chatID, resp.Text)
	if kb, ok := replyKeyboard(resp); ok {
		msg.ReplyMarkup = kb
	} else {
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	}
	if _, err := b.api.Send(msg); err != nil {
		log.Error().Int64("chat_id", chatID).Err(err).Msg("send failed")
	}
}

// replyKeyboard lays the engine's option list out as button rows. The layout
// is presentation only; the engine treats all options alike.
func replyKeyboard(resp engine.Response) (tgbotapi.ReplyKeyboardMarkup, bool) {
	if len(resp.Options) == 0 {
		return tgbotapi.ReplyKeyboardMarkup{}, false
	}

	var rows [][]tgbotapi.KeyboardButton
	var row []tgbotapi.KeyboardButton
	for _, opt := range resp.Options {
		row = append(row, tgbotapi.NewKeyboardButton(opt))
		if len(row) >= rowWidth(opt) {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb, true
}

func rowWidth(option string) int {
	switch {
	case isTableButton(option), isQuantityButton(option):
		return 3
	case isConfirmButton(option):
		return 2
	default:
		return 1
	}
}

func isTableButton(option string) bool {
	return strings.HasPrefix(option, "Стол ") && !strings.Contains(option, " - ")
}

func isQuantityButton(option string) bool {
	if _, err := strconv.Atoi(option); err == nil {
		return true
	}
	return false
}

func isConfirmButton(option string) bool {
	switch option {
	case "✅ Да", "❌ Нет", "✅ Да, закрыть заказ", "❌ Нет, отмена":
		return true
	}
	return false
}
