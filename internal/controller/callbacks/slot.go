package callbacks

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/slot_swapper/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/slot_swapper/internal/controller/callbacks/common"
	"github.com/Freeeeeet/slot_swapper/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/slot_swapper/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/slot_swapper/internal/controller/state"
	"github.com/Freeeeeet/slot_swapper/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleSlotStatus переключает слот между BUSY и SWAPPABLE
func HandleSlotStatus(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, prefix string) {
	status := model.SlotStatusBusy
	if prefix == keyboard.SlotOffer {
		status = model.SlotStatusSwappable
	}

	common.WithID(ctx, b, callback, h, prefix, func(hc *common.HandlerContext, slotID int64) {
		slot, err := h.SlotService.UpdateSlot(ctx, hc.User.ID, slotID, model.SlotUpdate{Status: &status})
		if err != nil {
			hc.Fail(err, "update slot status")
			return
		}

		kb := keyboard.NewBuilder().Row(keyboard.SlotActions(slot)...).Build()
		hc.Done(formatting.SlotCard(slot, h.Location), kb, formatting.GetSlotStatusDisplay(slot.Status).String())
	})
}

// HandleSlotDelete удаляет слот, если он не участвует в обмене
func HandleSlotDelete(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithID(ctx, b, callback, h, keyboard.SlotDelete, func(hc *common.HandlerContext, slotID int64) {
		if err := h.SlotService.DeleteSlot(ctx, hc.User.ID, slotID); err != nil {
			hc.Fail(err, "delete slot")
			return
		}

		hc.Done(fmt.Sprintf("🗑 Слот #%d удалён", slotID), nil, "Удалено")
	})
}

// HandleNewSlotStatus завершает диалог /newslot выбором статуса
func HandleNewSlotStatus(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	status := model.SlotStatus(strings.TrimPrefix(callback.Data, keyboard.NewSlotStatus))
	if !status.Editable() {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		sm := h.StateManager
		if sm.GetState(hc.TelegramID) != callbacktypes.UserState(state.StateNewSlotStatus) {
			hc.AnswerAlert(common.ErrorMessage(common.ErrDialogExpired))
			return
		}

		title, okTitle := sm.GetString(hc.TelegramID, state.KeySlotTitle)
		start, okStart := sm.GetTime(hc.TelegramID, state.KeySlotStart)
		end, okEnd := sm.GetTime(hc.TelegramID, state.KeySlotEnd)
		if !okTitle || !okStart || !okEnd {
			hc.ClearState()
			hc.AnswerAlert(common.ErrorMessage(common.ErrDialogExpired))
			return
		}

		slot, err := h.SlotService.CreateSlot(ctx, hc.User.ID, title, start, end, status)
		if err != nil {
			hc.Fail(err, "create slot")
			return
		}
		hc.ClearState()

		kb := keyboard.NewBuilder().Row(keyboard.SlotActions(slot)...).Build()
		hc.Done("✅ Слот создан\n\n"+formatting.SlotCard(slot, h.Location), kb, "Слот создан")
	})
}
