package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Freeeeeet/slot_swapper/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/slot_swapper/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/slot_swapper/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleNewSlot начинает диалог создания слота
func (h *Handlers) HandleNewSlot(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireUser(ctx, b, update); !ok {
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.ClearState(telegramID)
	h.stateManager.SetState(telegramID, state.StateNewSlotTitle)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"➕ Новый слот\n\nШаг 1/4. Введите название слота.\n\nОтмена: /cancel")
}

func (h *Handlers) handleNewSlotTitle(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	title := strings.TrimSpace(update.Message.Text)

	if title == "" || utf8.RuneCountInString(title) > SlotTitleMaxLength {
		h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Название должно быть от 1 до %d символов.", SlotTitleMaxLength))
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.SetData(telegramID, state.KeySlotTitle, title)
	h.stateManager.SetState(telegramID, state.StateNewSlotStart)

	h.sendMessage(ctx, b, chatID, fmt.Sprintf(
		"Шаг 2/4. Введите начало в формате %s\nНапример: %s",
		"ДД.ММ.ГГГГ ЧЧ:ММ",
		formatting.FormatDateTime(h.now().In(h.location).Add(24*time.Hour).Truncate(time.Hour)),
	))
}

func (h *Handlers) handleNewSlotStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	start, err := formatting.ParseDateTime(update.Message.Text, h.location)
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Неверный формат. Используйте ДД.ММ.ГГГГ ЧЧ:ММ")
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.SetData(telegramID, state.KeySlotStart, start)
	h.stateManager.SetState(telegramID, state.StateNewSlotEnd)

	h.sendMessage(ctx, b, chatID, "Шаг 3/4. Введите окончание в том же формате.")
}

func (h *Handlers) handleNewSlotEnd(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	start, ok := h.stateManager.GetTime(telegramID, state.KeySlotStart)
	if !ok {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, "⌛ Диалог устарел. Начните заново: /newslot")
		return
	}

	end, err := formatting.ParseDateTime(update.Message.Text, h.location)
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Неверный формат. Используйте ДД.ММ.ГГГГ ЧЧ:ММ")
		return
	}
	if !end.After(start) {
		h.sendError(ctx, b, chatID, "❌ Окончание должно быть позже начала.")
		return
	}
	if end.Sub(start) > SlotMaxDurationHours*time.Hour {
		h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Слот не может быть длиннее %d ч.", SlotMaxDurationHours))
		return
	}

	h.stateManager.SetData(telegramID, state.KeySlotEnd, end)
	h.stateManager.SetState(telegramID, state.StateNewSlotStatus)

	h.sendHTML(ctx, b, chatID,
		fmt.Sprintf("Шаг 4/4. %s (%s)\nВыберите статус слота:",
			formatting.FormatSlotRange(start.In(h.location), end.In(h.location)),
			formatting.FormatDuration(end.Sub(start)),
		),
		keyboard.NewSlotStatusChoice(),
	)
}
