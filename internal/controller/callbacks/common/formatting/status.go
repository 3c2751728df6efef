package formatting

import "github.com/Freeeeeet/slot_swapper/internal/model"

// StatusDisplay представляет отображение статуса
type StatusDisplay struct {
	Emoji string
	Text  string
}

func (d StatusDisplay) String() string {
	return d.Emoji + " " + d.Text
}

var slotStatuses = map[model.SlotStatus]StatusDisplay{
	model.SlotStatusBusy:        {"⛔", "Занят"},
	model.SlotStatusSwappable:   {"🔁", "Доступен для обмена"},
	model.SlotStatusSwapPending: {"⏳", "Ожидает обмена"},
}

var swapStatuses = map[model.SwapStatus]StatusDisplay{
	model.SwapStatusPending:  {"⏳", "Ожидает ответа"},
	model.SwapStatusAccepted: {"✅", "Принято"},
	model.SwapStatusRejected: {"🚫", "Отклонено"},
}

// GetSlotStatusDisplay возвращает emoji и текст для статуса слота
func GetSlotStatusDisplay(status model.SlotStatus) StatusDisplay {
	if display, ok := slotStatuses[status]; ok {
		return display
	}
	return StatusDisplay{"❓", "Неизвестно"}
}

// GetSwapStatusDisplay возвращает emoji и текст для статуса предложения
func GetSwapStatusDisplay(status model.SwapStatus) StatusDisplay {
	if display, ok := swapStatuses[status]; ok {
		return display
	}
	return StatusDisplay{"❓", "Неизвестно"}
}
