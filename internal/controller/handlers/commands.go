package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/slot_swapper/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const helpText = "📚 Справка по командам:\n\n" +
	"Мои слоты:\n" +
	"/myslots - Мои слоты\n" +
	"/newslot - Создать слот\n" +
	"/offer <id> - Выставить слот на обмен\n" +
	"/busy <id> - Снять слот с обмена\n" +
	"/deleteslot <id> - Удалить слот\n" +
	"/export - Календарь в формате .ics\n\n" +
	"Обмен:\n" +
	"/swappable - Слоты других пользователей\n" +
	"/swap <мой id> <чужой id> - Предложить обмен\n" +
	"/incoming - Входящие предложения\n" +
	"/outgoing - Мои предложения\n\n" +
	"Прочее:\n" +
	"/token - Токен для HTTP API\n" +
	"/cancel - Отменить текущий диалог\n\n" +
	"Пока предложение ждёт ответа, оба слота заблокированы: их нельзя изменить, удалить или предложить ещё раз."

// HandleStart регистрирует пользователя и показывает приветствие
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	from := update.Message.From

	user, err := h.userService.RegisterTelegramUser(
		ctx,
		from.ID,
		from.Username,
		from.FirstName,
		from.LastName,
	)
	if err != nil {
		h.logger.Error("Failed to register user", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Произошла ошибка при регистрации. Попробуйте позже.")
		return
	}

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Slot Swapper помогает меняться слотами в расписании: отметьте свой слот как доступный для обмена "+
			"и предложите его владельцу другого слота.\n\n%s",
		user.Name,
		helpText,
	)

	h.sendMessage(ctx, b, update.Message.Chat.ID, welcomeText)
}

func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleCancel отменяет текущий диалог
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.stateManager.GetState(telegramID) == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Нет активных операций для отмены.")
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.")
}

// HandleToken выдаёт токен доступа к HTTP API для текущего пользователя
func (h *Handlers) HandleToken(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	if h.tokens == nil {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ HTTP API не настроен.")
		return
	}

	email := ""
	if user.Email != nil {
		email = *user.Email
	}

	token, err := h.tokens.Issue(user.ID, email)
	if err != nil {
		h.logger.Error("Failed to issue token", zap.Int64("user_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Не удалось выпустить токен.")
		return
	}

	h.sendHTML(ctx, b, update.Message.Chat.ID,
		"🔑 Токен для HTTP API (заголовок <code>Authorization: Bearer ...</code>):\n\n<code>"+token+"</code>",
		nil,
	)
}

// HandleTextMessage обрабатывает текст в зависимости от шага диалога
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}

	// Команды обрабатываются своими handlers
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	switch currentState {
	case state.StateNone:
		return
	case state.StateNewSlotTitle:
		h.handleNewSlotTitle(ctx, b, update)
	case state.StateNewSlotStart:
		h.handleNewSlotStart(ctx, b, update)
	case state.StateNewSlotEnd:
		h.handleNewSlotEnd(ctx, b, update)
	case state.StateNewSlotStatus:
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Выберите статус кнопкой выше или /cancel.")
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
	}
}
