package handler

import (
	"net/http"
	"strconv"

	"github.com/Freeeeeet/slot_swapper/internal/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SwapHandler struct {
	exchange ExchangeService
	logger   *zap.Logger
}

func NewSwapHandler(exchange ExchangeService, logger *zap.Logger) *SwapHandler {
	return &SwapHandler{exchange: exchange, logger: logger}
}

type swapRequestBody struct {
	MySlotID    int64 `json:"mySlotId" binding:"required"`
	TheirSlotID int64 `json:"theirSlotId" binding:"required"`
}

type swapResponseBody struct {
	Accept *bool `json:"accept" binding:"required"`
}

// Request создаёт предложение обмена
func (h *SwapHandler) Request(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var body swapRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mySlotId and theirSlotId are required"})
		return
	}

	req, err := h.exchange.Propose(c.Request.Context(), userID, body.MySlotID, body.TheirSlotID)
	if err != nil {
		respondError(c, h.logger, err, "failed to create swap request")
		return
	}

	c.JSON(http.StatusCreated, req)
}

// Respond принимает или отклоняет входящее предложение
func (h *SwapHandler) Respond(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	requestID, err := strconv.ParseInt(c.Param("requestId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	var body swapResponseBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "accept is required"})
		return
	}

	req, err := h.exchange.Resolve(c.Request.Context(), userID, requestID, model.DecisionFromBool(*body.Accept))
	if err != nil {
		respondError(c, h.logger, err, "failed to respond to swap request")
		return
	}

	c.JSON(http.StatusOK, req)
}

// Incoming возвращает активные предложения, адресованные пользователю
func (h *SwapHandler) Incoming(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	reqs, err := h.exchange.Incoming(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "failed to fetch incoming requests")
		return
	}

	if reqs == nil {
		reqs = []*model.SwapRequestDetails{}
	}
	c.JSON(http.StatusOK, reqs)
}

// Outgoing возвращает предложения, отправленные пользователем
func (h *SwapHandler) Outgoing(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	reqs, err := h.exchange.Outgoing(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "failed to fetch outgoing requests")
		return
	}

	if reqs == nil {
		reqs = []*model.SwapRequestDetails{}
	}
	c.JSON(http.StatusOK, reqs)
}
