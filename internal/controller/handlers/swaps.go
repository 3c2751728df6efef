package handlers

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/slot_swapper/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/slot_swapper/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleSwap предлагает обмен: /swap <мой слот> <чужой слот>
func (h *Handlers) HandleSwap(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	ids, err := parseIDs(update.Message.Text, 2)
	if err != nil {
		h.sendError(ctx, b, chatID,
			"Использование: /swap <id моего слота> <id чужого слота>\n\nЧужие слоты: /swappable")
		return
	}

	req, err := h.exchangeService.Propose(ctx, user.ID, ids[0], ids[1])
	if err != nil {
		h.replyError(ctx, b, chatID, "propose swap", err)
		return
	}

	h.logger.Info("Swap proposed from bot",
		zap.Int64("proposal_id", req.ID),
		zap.Int64("user_id", user.ID))

	h.sendMessage(ctx, b, chatID, fmt.Sprintf(
		"✅ Предложение #%d отправлено.\n\nОба слота заблокированы до ответа. Статус: /outgoing",
		req.ID,
	))
}

// HandleIncoming показывает ожидающие ответа предложения с кнопками решения
func (h *Handlers) HandleIncoming(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	requests, err := h.exchangeService.Incoming(ctx, user.ID)
	if err != nil {
		h.replyError(ctx, b, chatID, "list incoming swaps", err)
		return
	}

	if len(requests) == 0 {
		h.sendMessage(ctx, b, chatID, "📭 Входящих предложений нет.")
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("📥 %d %s ждут ответа",
		len(requests), formatting.PluralizeProposals(len(requests))))

	for i, req := range requests {
		if i == maxListedItems {
			break
		}
		h.sendHTML(ctx, b, chatID, formatting.SwapCard(req, true, h.location), keyboard.SwapDecision(req.ID))
	}
}

// HandleOutgoing показывает все предложения пользователя
func (h *Handlers) HandleOutgoing(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	requests, err := h.exchangeService.Outgoing(ctx, user.ID)
	if err != nil {
		h.replyError(ctx, b, chatID, "list outgoing swaps", err)
		return
	}

	if len(requests) == 0 {
		h.sendMessage(ctx, b, chatID, "📭 Вы ещё не предлагали обменов.\n\nЧужие слоты: /swappable")
		return
	}

	for i, req := range requests {
		if i == maxListedItems {
			break
		}
		h.sendHTML(ctx, b, chatID, formatting.SwapCard(req, false, h.location), nil)
	}
}
