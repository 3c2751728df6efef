package controller

import (
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// commandName возвращает команду из текста сообщения без упоминания бота:
// "/swap@SlotSwapperBot 3 8" -> "/swap"
func commandName(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return ""
	}
	name, _, _ := strings.Cut(fields[0], "@")
	return name
}

// matchCommand сравнивает команду целиком, поэтому /swap не перехватывает /swappable
func matchCommand(command string) bot.MatchFunc {
	return func(update *models.Update) bool {
		return update.Message != nil && commandName(update.Message.Text) == command
	}
}

func matchDialogText(update *models.Update) bool {
	return update.Message != nil &&
		update.Message.Text != "" &&
		!strings.HasPrefix(update.Message.Text, "/")
}
