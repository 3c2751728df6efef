package handlers

import (
	"time"

	"github.com/Freeeeeet/slot_swapper/internal/auth"
	"github.com/Freeeeeet/slot_swapper/internal/controller/state"
	"github.com/Freeeeeet/slot_swapper/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService     *service.UserService
	slotService     *service.SlotService
	exchangeService *service.ExchangeService
	tokens          *auth.JWTManager
	stateManager    *state.Manager
	location        *time.Location
	logger          *zap.Logger
	now             func() time.Time
}

func NewHandlers(
	userService *service.UserService,
	slotService *service.SlotService,
	exchangeService *service.ExchangeService,
	tokens *auth.JWTManager,
	stateManager *state.Manager,
	location *time.Location,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		userService:     userService,
		slotService:     slotService,
		exchangeService: exchangeService,
		tokens:          tokens,
		stateManager:    stateManager,
		location:        location,
		logger:          logger,
		now:             time.Now,
	}
}
