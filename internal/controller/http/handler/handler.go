package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Freeeeeet/slot_swapper/internal/controller/http/middleware"
	"github.com/Freeeeeet/slot_swapper/internal/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SlotService interface {
	CreateSlot(ctx context.Context, ownerID int64, title string, startTime, endTime time.Time, status model.SlotStatus) (*model.Slot, error)
	ListMySlots(ctx context.Context, ownerID int64) ([]*model.Slot, error)
	ListSwappable(ctx context.Context, userID int64) ([]*model.SwappableSlot, error)
	UpdateSlot(ctx context.Context, ownerID, slotID int64, upd model.SlotUpdate) (*model.Slot, error)
	DeleteSlot(ctx context.Context, ownerID, slotID int64) error
}

type ExchangeService interface {
	Propose(ctx context.Context, requesterID, requesterSlotID, recipientSlotID int64) (*model.SwapRequest, error)
	Resolve(ctx context.Context, recipientID, proposalID int64, decision model.Decision) (*model.SwapRequest, error)
	Incoming(ctx context.Context, userID int64) ([]*model.SwapRequestDetails, error)
	Outgoing(ctx context.Context, userID int64) ([]*model.SwapRequestDetails, error)
}

// respondError переводит доменную ошибку в HTTP статус
func respondError(c *gin.Context, logger *zap.Logger, err error, msg string) {
	switch {
	case errors.Is(err, model.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	default:
		logger.Error(msg,
			zap.Error(err),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

func currentUser(c *gin.Context) (int64, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
	}
	return id, ok
}
