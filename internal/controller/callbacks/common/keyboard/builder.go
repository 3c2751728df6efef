package keyboard

import "github.com/go-telegram/bot/models"

// Builder упрощает создание inline клавиатур
type Builder struct {
	rows [][]models.InlineKeyboardButton
}

func NewBuilder() *Builder {
	return &Builder{
		rows: make([][]models.InlineKeyboardButton, 0),
	}
}

// Row добавляет ряд кнопок. Пустой ряд пропускается.
func (b *Builder) Row(buttons ...models.InlineKeyboardButton) *Builder {
	if len(buttons) > 0 {
		b.rows = append(b.rows, buttons)
	}
	return b
}

func Button(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: callbackData,
	}
}

// IsEmpty проверяет, добавлена ли хотя бы одна кнопка
func (b *Builder) IsEmpty() bool {
	return len(b.rows) == 0
}

// Build создаёт клавиатуру. Для пустого builder возвращает nil,
// чтобы сообщение отправлялось без клавиатуры.
func (b *Builder) Build() *models.InlineKeyboardMarkup {
	if b.IsEmpty() {
		return nil
	}
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: b.rows,
	}
}
