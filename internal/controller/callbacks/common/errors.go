package common

import (
	"errors"

	"github.com/Freeeeeet/slot_swapper/internal/model"
)

// Общие ошибки для обработчиков
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
	ErrDialogExpired = errors.New("dialog expired")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return "❌ Пользователь не найден. Используйте /start"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.Is(err, ErrDialogExpired):
		return "⌛ Диалог устарел. Начните заново: /newslot"
	case errors.Is(err, model.ErrValidation):
		return "❌ Некорректные данные"
	case errors.Is(err, model.ErrNotFound):
		return "❌ Не найдено или недоступно"
	case errors.Is(err, model.ErrInvalidState):
		return "⚠️ Слот сейчас нельзя использовать для обмена"
	case errors.Is(err, model.ErrConflict):
		return "🔒 Слот уже участвует в другом обмене"
	default:
		return "❌ Произошла ошибка"
	}
}
