package handlers

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Freeeeeet/slot_swapper/internal/calendar"
	"github.com/Freeeeeet/slot_swapper/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/slot_swapper/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/slot_swapper/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Сколько карточек показывается за одну команду
const maxListedItems = 20

// HandleMySlots показывает слоты пользователя, каждый с кнопками управления
func (h *Handlers) HandleMySlots(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	slots, err := h.slotService.ListMySlots(ctx, user.ID)
	if err != nil {
		h.replyError(ctx, b, chatID, "list my slots", err)
		return
	}

	if len(slots) == 0 {
		h.sendMessage(ctx, b, chatID, "📭 У вас пока нет слотов.\n\nСоздать: /newslot")
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("🗓 У вас %d %s", len(slots), formatting.PluralizeSlots(len(slots))))

	for i, slot := range slots {
		if i == maxListedItems {
			h.sendMessage(ctx, b, chatID, fmt.Sprintf("… и ещё %d. Полный список: /export", len(slots)-maxListedItems))
			break
		}
		kb := keyboard.NewBuilder().Row(keyboard.SlotActions(slot)...).Build()
		h.sendHTML(ctx, b, chatID, formatting.SlotCard(slot, h.location), kb)
	}
}

// HandleSwappable показывает слоты других пользователей, доступные для обмена
func (h *Handlers) HandleSwappable(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	slots, err := h.slotService.ListSwappable(ctx, user.ID)
	if err != nil {
		h.replyError(ctx, b, chatID, "list swappable slots", err)
		return
	}

	if len(slots) == 0 {
		h.sendMessage(ctx, b, chatID, "📭 Сейчас никто не предлагает слоты для обмена.")
		return
	}

	for i, slot := range slots {
		if i == maxListedItems {
			h.sendMessage(ctx, b, chatID, fmt.Sprintf("… и ещё %d %s", len(slots)-maxListedItems,
				formatting.PluralizeSlots(len(slots)-maxListedItems)))
			break
		}
		h.sendHTML(ctx, b, chatID, formatting.SwappableCard(slot, h.location), keyboard.PickSwappable(slot.ID))
	}
}

// HandleOffer выставляет слот на обмен: /offer <id>
func (h *Handlers) HandleOffer(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.setSlotStatus(ctx, b, update, model.SlotStatusSwappable, "/offer <id слота>")
}

// HandleBusy снимает слот с обмена: /busy <id>
func (h *Handlers) HandleBusy(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.setSlotStatus(ctx, b, update, model.SlotStatusBusy, "/busy <id слота>")
}

func (h *Handlers) setSlotStatus(ctx context.Context, b *bot.Bot, update *models.Update, status model.SlotStatus, usage string) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	ids, err := parseIDs(update.Message.Text, 1)
	if err != nil {
		h.sendError(ctx, b, chatID, "Использование: "+usage)
		return
	}

	slot, err := h.slotService.UpdateSlot(ctx, user.ID, ids[0], model.SlotUpdate{Status: &status})
	if err != nil {
		h.replyError(ctx, b, chatID, "set slot status", err)
		return
	}

	kb := keyboard.NewBuilder().Row(keyboard.SlotActions(slot)...).Build()
	h.sendHTML(ctx, b, chatID, "✅ Статус обновлён\n\n"+formatting.SlotCard(slot, h.location), kb)
}

// HandleDeleteSlot удаляет слот: /deleteslot <id>
func (h *Handlers) HandleDeleteSlot(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	ids, err := parseIDs(update.Message.Text, 1)
	if err != nil {
		h.sendError(ctx, b, chatID, "Использование: /deleteslot <id слота>")
		return
	}

	if err := h.slotService.DeleteSlot(ctx, user.ID, ids[0]); err != nil {
		h.replyError(ctx, b, chatID, "delete slot", err)
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("🗑 Слот #%d удалён", ids[0]))
}

// HandleExport отправляет слоты пользователя файлом iCalendar
func (h *Handlers) HandleExport(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	slots, err := h.slotService.ListMySlots(ctx, user.ID)
	if err != nil {
		h.replyError(ctx, b, chatID, "export slots", err)
		return
	}
	if len(slots) == 0 {
		h.sendMessage(ctx, b, chatID, "📭 Нечего экспортировать. Создать слот: /newslot")
		return
	}

	var buf bytes.Buffer
	if err := calendar.Encode(&buf, slots, h.now()); err != nil {
		h.replyError(ctx, b, chatID, "encode calendar", err)
		return
	}

	_, err = b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID: chatID,
		Document: &models.InputFileUpload{
			Filename: "slots.ics",
			Data:     &buf,
		},
		Caption: fmt.Sprintf("📅 %d %s", len(slots), formatting.PluralizeSlots(len(slots))),
	})
	if err != nil {
		h.logger.Error("Failed to send calendar", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
