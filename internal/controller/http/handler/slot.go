package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Freeeeeet/slot_swapper/internal/calendar"
	"github.com/Freeeeeet/slot_swapper/internal/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SlotHandler struct {
	slots  SlotService
	logger *zap.Logger
}

func NewSlotHandler(slots SlotService, logger *zap.Logger) *SlotHandler {
	return &SlotHandler{slots: slots, logger: logger}
}

type createSlotRequest struct {
	Title     string    `json:"title" binding:"required"`
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
	Status    string    `json:"status"`
}

type updateSlotRequest struct {
	Title     *string    `json:"title"`
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Status    *string    `json:"status"`
}

func (r updateSlotRequest) toModel() model.SlotUpdate {
	upd := model.SlotUpdate{
		Title:     r.Title,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
	if r.Status != nil {
		status := model.SlotStatus(*r.Status)
		upd.Status = &status
	}
	return upd
}

// List возвращает слоты текущего пользователя
func (h *SlotHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	slots, err := h.slots.ListMySlots(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "failed to fetch events")
		return
	}

	if slots == nil {
		slots = []*model.Slot{}
	}
	c.JSON(http.StatusOK, slots)
}

// Calendar отдаёт слоты текущего пользователя в формате .ics
func (h *SlotHandler) Calendar(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	slots, err := h.slots.ListMySlots(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "failed to fetch events")
		return
	}

	c.Header("Content-Type", "text/calendar; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="slots.ics"`)
	c.Status(http.StatusOK)
	if err := calendar.Encode(c.Writer, slots, time.Now()); err != nil {
		h.logger.Error("Failed to encode calendar", zap.Error(err), zap.Int64("user_id", userID))
	}
}

// Create создаёт слот
func (h *SlotHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req createSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, startTime and endTime are required"})
		return
	}

	slot, err := h.slots.CreateSlot(c.Request.Context(), userID, req.Title, req.StartTime, req.EndTime, model.SlotStatus(req.Status))
	if err != nil {
		respondError(c, h.logger, err, "failed to create event")
		return
	}

	c.JSON(http.StatusCreated, slot)
}

// Update частично изменяет слот
func (h *SlotHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	slotID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	var req updateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	slot, err := h.slots.UpdateSlot(c.Request.Context(), userID, slotID, req.toModel())
	if err != nil {
		respondError(c, h.logger, err, "failed to update event")
		return
	}

	c.JSON(http.StatusOK, slot)
}

// Delete удаляет слот
func (h *SlotHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	slotID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	if err := h.slots.DeleteSlot(c.Request.Context(), userID, slotID); err != nil {
		respondError(c, h.logger, err, "failed to delete event")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

// Swappable возвращает чужие слоты, доступные для обмена
func (h *SlotHandler) Swappable(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	slots, err := h.slots.ListSwappable(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "failed to fetch swappable slots")
		return
	}

	if slots == nil {
		slots = []*model.SwappableSlot{}
	}
	c.JSON(http.StatusOK, slots)
}
