package keyboard

import (
	"fmt"

	"github.com/Freeeeeet/slot_swapper/internal/model"
	"github.com/go-telegram/bot/models"
)

// Форматы callback data
const (
	SwapAccept = "swap_accept:" // swap_accept:<proposalID>
	SwapReject = "swap_reject:" // swap_reject:<proposalID>

	SwapPick  = "swap_pick:"  // swap_pick:<theirSlotID>
	SwapOffer = "swap_offer:" // swap_offer:<mySlotID>:<theirSlotID>

	SlotOffer  = "slot_offer:"  // slot_offer:<slotID>
	SlotBusy   = "slot_busy:"   // slot_busy:<slotID>
	SlotDelete = "slot_delete:" // slot_delete:<slotID>

	NewSlotStatus = "newslot_status:" // newslot_status:BUSY

	Noop = "noop"
)

// SwapDecision кнопки ответа получателя на предложение
func SwapDecision(proposalID int64) *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(
			Button("✅ Принять", fmt.Sprintf("%s%d", SwapAccept, proposalID)),
			Button("❌ Отклонить", fmt.Sprintf("%s%d", SwapReject, proposalID)),
		).
		Build()
}

// SlotActions кнопки управления собственным слотом.
// Заблокированный слот нельзя менять, поэтому кнопок у него нет.
func SlotActions(slot *model.Slot) []models.InlineKeyboardButton {
	switch slot.Status {
	case model.SlotStatusBusy:
		return []models.InlineKeyboardButton{
			Button("🔁 К обмену", fmt.Sprintf("%s%d", SlotOffer, slot.ID)),
			Button("🗑 Удалить", fmt.Sprintf("%s%d", SlotDelete, slot.ID)),
		}
	case model.SlotStatusSwappable:
		return []models.InlineKeyboardButton{
			Button("⛔ Снять с обмена", fmt.Sprintf("%s%d", SlotBusy, slot.ID)),
			Button("🗑 Удалить", fmt.Sprintf("%s%d", SlotDelete, slot.ID)),
		}
	default:
		return nil
	}
}

// PickSwappable кнопка выбора чужого слота для обмена
func PickSwappable(slotID int64) *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(Button("🤝 Предложить обмен", fmt.Sprintf("%s%d", SwapPick, slotID))).
		Build()
}

// OfferFrom список моих слотов, которые можно отдать за theirSlotID
func OfferFrom(mine []*model.Slot, theirSlotID int64, label func(*model.Slot) string) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	for _, slot := range mine {
		if slot.Status != model.SlotStatusSwappable {
			continue
		}
		b.Row(Button(label(slot), fmt.Sprintf("%s%d:%d", SwapOffer, slot.ID, theirSlotID)))
	}
	return b.Build()
}

// NewSlotStatusChoice выбор статуса на последнем шаге /newslot
func NewSlotStatusChoice() *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(
			Button("⛔ Занят", NewSlotStatus+string(model.SlotStatusBusy)),
			Button("🔁 Для обмена", NewSlotStatus+string(model.SlotStatusSwappable)),
		).
		Build()
}
