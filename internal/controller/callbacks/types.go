package callbacks

import (
	"context"
	"time"

	"github.com/Freeeeeet/slot_swapper/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/slot_swapper/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Handler обертка для callbacktypes.Handler с методами
type Handler struct {
	*callbacktypes.Handler
}

// NewHandler создаёт обработчик callbacks с зависимостями
func NewHandler(
	userService *service.UserService,
	slotService *service.SlotService,
	exchangeService *service.ExchangeService,
	stateManager callbacktypes.StateManager,
	location *time.Location,
	logger *zap.Logger,
) *Handler {
	inner := &callbacktypes.Handler{
		UserService:     userService,
		SlotService:     slotService,
		ExchangeService: exchangeService,
		StateManager:    stateManager,
		Location:        location,
		Logger:          logger,
	}
	return &Handler{Handler: inner}
}

// HandleCallbackQuery главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery

	h.Logger.Debug("Callback received",
		zap.String("data", callback.Data),
		zap.Int64("user_id", callback.From.ID),
	)

	Route(ctx, b, callback, h.Handler)
}
