package common

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query всплывающим окном
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback извлекает сообщение из callback query
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// ParseIDFromCallback извлекает положительный ID после префикса.
// Например: ("swap_accept:", "swap_accept:123") -> 123
func ParseIDFromCallback(prefix, data string) (int64, error) {
	raw, ok := strings.CutPrefix(data, prefix)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	return id, nil
}

// IsMessageNotModifiedError проверяет ответ Telegram на редактирование без изменений
func IsMessageNotModifiedError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}

// ParseIDPairFromCallback извлекает два ID вида "<prefix><a>:<b>"
func ParseIDPairFromCallback(prefix, data string) (int64, int64, error) {
	raw, ok := strings.CutPrefix(data, prefix)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	first, second, ok := strings.Cut(raw, ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	a, err := ParseIDFromCallback("", first)
	if err != nil {
		return 0, 0, err
	}
	b, err := ParseIDFromCallback("", second)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
