package model

import "time"

type User struct {
	ID         int64     `json:"id" db:"id"`
	TelegramID *int64    `json:"telegramId,omitempty" db:"telegram_id"` // nil для пользователей только из API
	Email      *string   `json:"email,omitempty" db:"email"`
	Name       string    `json:"name" db:"name"`
	Username   string    `json:"username" db:"username"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
