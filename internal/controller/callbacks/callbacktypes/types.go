package callbacktypes

import (
	"time"

	"github.com/Freeeeeet/slot_swapper/internal/service"
	"go.uber.org/zap"
)

// UserState представляет текущий шаг диалога пользователя
type UserState string

// StateManager интерфейс для управления состоянием пользователей
type StateManager interface {
	ClearState(telegramID int64)
	GetState(telegramID int64) UserState
	SetState(telegramID int64, state UserState)
	GetString(telegramID int64, key string) (string, bool)
	GetTime(telegramID int64, key string) (time.Time, bool)
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	UserService     *service.UserService
	SlotService     *service.SlotService
	ExchangeService *service.ExchangeService
	StateManager    StateManager
	Location        *time.Location
	Logger          *zap.Logger
}
