package controller

import (
	"context"
	"time"

	"github.com/Freeeeeet/slot_swapper/internal/auth"
	"github.com/Freeeeeet/slot_swapper/internal/controller/callbacks"
	"github.com/Freeeeeet/slot_swapper/internal/controller/handlers"
	"github.com/Freeeeeet/slot_swapper/internal/controller/state"
	"github.com/Freeeeeet/slot_swapper/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	stateManager    *state.Manager
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	userService *service.UserService,
	slotService *service.SlotService,
	exchangeService *service.ExchangeService,
	tokens *auth.JWTManager,
	location *time.Location,
	logger *zap.Logger,
) *BotController {
	stateManager := state.NewManager(state.DefaultTTL)

	cmdHandlers := handlers.NewHandlers(
		userService,
		slotService,
		exchangeService,
		tokens,
		stateManager,
		location,
		logger,
	)

	callbackHandler := callbacks.NewHandler(
		userService,
		slotService,
		exchangeService,
		state.NewAdapter(stateManager),
		location,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		stateManager:    stateManager,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	commands := map[string]bot.HandlerFunc{
		"/start":     c.handlers.HandleStart,
		"/help":      c.handlers.HandleHelp,
		"/cancel":    c.handlers.HandleCancel,
		"/myslots":   c.handlers.HandleMySlots,
		"/newslot":   c.handlers.HandleNewSlot,
		"/swappable": c.handlers.HandleSwappable,
		"/incoming":  c.handlers.HandleIncoming,
		"/outgoing":  c.handlers.HandleOutgoing,
		"/token":     c.handlers.HandleToken,
		"/export":    c.handlers.HandleExport,

		// Команды с аргументами
		"/offer":      c.handlers.HandleOffer,
		"/busy":       c.handlers.HandleBusy,
		"/deleteslot": c.handlers.HandleDeleteSlot,
		"/swap":       c.handlers.HandleSwap,
	}
	for command, handler := range commands {
		c.bot.RegisterHandlerMatchFunc(matchCommand(command), handler)
	}

	// Текст без команды продолжает активный диалог
	c.bot.RegisterHandlerMatchFunc(matchDialogText, c.handlers.HandleTextMessage)

	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "myslots", Description: "🗓 Мои слоты"},
		{Command: "newslot", Description: "➕ Создать слот"},
		{Command: "swappable", Description: "🔁 Слоты для обмена"},
		{Command: "incoming", Description: "📥 Входящие предложения"},
		{Command: "outgoing", Description: "📤 Мои предложения"},
		{Command: "export", Description: "📅 Экспорт в календарь"},
		{Command: "token", Description: "🔑 Токен для API"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")

	go c.cleanupDialogs(ctx)

	c.bot.Start(ctx)
	return nil
}

// cleanupDialogs периодически забывает брошенные диалоги
func (c *BotController) cleanupDialogs(ctx context.Context) {
	ticker := time.NewTicker(state.DefaultTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := c.stateManager.Cleanup(); removed > 0 {
				c.logger.Debug("Expired dialogs removed", zap.Int("count", removed))
			}
		}
	}
}
