package callbacks

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/slot_swapper/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/slot_swapper/internal/controller/callbacks/common"
	"github.com/Freeeeeet/slot_swapper/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/slot_swapper/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/slot_swapper/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleSwapDecision принимает или отклоняет входящее предложение
func HandleSwapDecision(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, prefix string) {
	decision := model.DecisionReject
	if prefix == keyboard.SwapAccept {
		decision = model.DecisionAccept
	}

	common.WithID(ctx, b, callback, h, prefix, func(hc *common.HandlerContext, proposalID int64) {
		req, err := h.ExchangeService.Resolve(ctx, hc.User.ID, proposalID, decision)
		if err != nil {
			hc.Fail(err, "resolve swap")
			return
		}

		h.Logger.Info("Swap resolved from bot",
			zap.Int64("proposal_id", req.ID),
			zap.Int64("user_id", hc.User.ID),
			zap.String("status", string(req.Status)))

		status := formatting.GetSwapStatusDisplay(req.Status)
		text := fmt.Sprintf("Предложение #%d: %s", req.ID, status)
		if req.Status == model.SwapStatusAccepted {
			text += "\n\nСлоты обменялись владельцами. Ваши слоты: /myslots"
		}

		hc.Done(text, nil, status.String())
	})
}

// HandleSwapPick показывает мои слоты, которые можно предложить за выбранный чужой
func HandleSwapPick(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithID(ctx, b, callback, h, keyboard.SwapPick, func(hc *common.HandlerContext, theirSlotID int64) {
		mine, err := h.SlotService.ListMySlots(ctx, hc.User.ID)
		if err != nil {
			hc.Fail(err, "list my slots")
			return
		}

		kb := keyboard.OfferFrom(mine, theirSlotID, func(slot *model.Slot) string {
			return formatting.SlotLine(slot, h.Location)
		})
		if kb == nil {
			hc.AnswerAlert("У вас нет слотов для обмена. Отметьте слот командой /offer <id>")
			return
		}

		if err := hc.SendMessage(fmt.Sprintf("Какой слот отдать за #%d?", theirSlotID), kb); err != nil {
			h.Logger.Warn("Failed to send slot choice", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleSwapOffer создаёт предложение обмена
func HandleSwapOffer(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	mySlotID, theirSlotID, err := common.ParseIDPairFromCallback(keyboard.SwapOffer, callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		req, err := h.ExchangeService.Propose(ctx, hc.User.ID, mySlotID, theirSlotID)
		if err != nil {
			hc.Fail(err, "propose swap")
			return
		}

		hc.Done(fmt.Sprintf(
			"✅ Предложение #%d отправлено.\n\nОба слота заблокированы до ответа. Статус: /outgoing",
			req.ID,
		), nil, "Предложение отправлено")
	})
}
