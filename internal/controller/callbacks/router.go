package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/slot_swapper/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/slot_swapper/internal/controller/callbacks/common"
	"github.com/Freeeeeet/slot_swapper/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Route распределяет callback query по обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	switch {
	// ===== Обмен =====
	case strings.HasPrefix(data, keyboard.SwapAccept):
		HandleSwapDecision(ctx, b, callback, h, keyboard.SwapAccept)
	case strings.HasPrefix(data, keyboard.SwapReject):
		HandleSwapDecision(ctx, b, callback, h, keyboard.SwapReject)
	case strings.HasPrefix(data, keyboard.SwapPick):
		HandleSwapPick(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.SwapOffer):
		HandleSwapOffer(ctx, b, callback, h)

	// ===== Свои слоты =====
	case strings.HasPrefix(data, keyboard.SlotOffer):
		HandleSlotStatus(ctx, b, callback, h, keyboard.SlotOffer)
	case strings.HasPrefix(data, keyboard.SlotBusy):
		HandleSlotStatus(ctx, b, callback, h, keyboard.SlotBusy)
	case strings.HasPrefix(data, keyboard.SlotDelete):
		HandleSlotDelete(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.NewSlotStatus):
		HandleNewSlotStatus(ctx, b, callback, h)

	case data == keyboard.Noop:
		common.AnswerCallback(ctx, b, callback.ID, "")

	default:
		h.Logger.Warn("Unknown callback", zap.String("data", data))
		common.AnswerCallback(ctx, b, callback.ID, "❓ Неизвестное действие")
	}
}
