package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/slot_swapper/internal/model"
	"go.uber.org/zap"
)

type SlotService struct {
	tx     txManager
	slots  slotRepo
	swaps  swapRepo
	logger *zap.Logger
}

func NewSlotService(tx txManager, slots slotRepo, swaps swapRepo, logger *zap.Logger) *SlotService {
	return &SlotService{
		tx:     tx,
		slots:  slots,
		swaps:  swaps,
		logger: logger,
	}
}

// CreateSlot создаёт слот пользователя
func (s *SlotService) CreateSlot(ctx context.Context, ownerID int64, title string, startTime, endTime time.Time, status model.SlotStatus) (*model.Slot, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("create slot: empty title: %w", model.ErrValidation)
	}
	if status == "" {
		status = model.SlotStatusBusy
	}
	if !status.Editable() {
		return nil, fmt.Errorf("create slot: status %q: %w", status, model.ErrValidation)
	}
	if !startTime.Before(endTime) {
		return nil, fmt.Errorf("create slot: start must be before end: %w", model.ErrValidation)
	}

	slot := &model.Slot{
		OwnerID:   ownerID,
		Title:     title,
		StartTime: startTime,
		EndTime:   endTime,
		Status:    status,
	}

	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}

	s.logger.Info("Slot created",
		zap.Int64("slot_id", slot.ID),
		zap.Int64("owner_id", ownerID),
		zap.String("status", string(status)),
	)

	return slot, nil
}

// GetSlot получает слот пользователя. Чужой слот считается ненайденным.
func (s *SlotService) GetSlot(ctx context.Context, ownerID, slotID int64) (*model.Slot, error) {
	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	if slot == nil || slot.OwnerID != ownerID {
		return nil, fmt.Errorf("slot %d: %w", slotID, model.ErrNotFound)
	}
	return slot, nil
}

// ListMySlots получает слоты пользователя
func (s *SlotService) ListMySlots(ctx context.Context, ownerID int64) ([]*model.Slot, error) {
	return s.slots.ListByOwner(ctx, ownerID)
}

// ListSwappable получает слоты других пользователей, доступные для обмена
func (s *SlotService) ListSwappable(ctx context.Context, userID int64) ([]*model.SwappableSlot, error) {
	return s.slots.ListSwappable(ctx, userID)
}

// UpdateSlot изменяет слот. Заблокированный обменом слот не изменяется.
func (s *SlotService) UpdateSlot(ctx context.Context, ownerID, slotID int64, upd model.SlotUpdate) (*model.Slot, error) {
	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return nil, fmt.Errorf("update slot: empty title: %w", model.ErrValidation)
		}
		upd.Title = &title
	}
	if upd.Status != nil && !upd.Status.Editable() {
		return nil, fmt.Errorf("update slot: status %q: %w", *upd.Status, model.ErrValidation)
	}

	var updated *model.Slot
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		slot, err := s.lockUnreferenced(ctx, ownerID, slotID)
		if err != nil {
			return err
		}

		start, end := slot.StartTime, slot.EndTime
		if upd.StartTime != nil {
			start = *upd.StartTime
		}
		if upd.EndTime != nil {
			end = *upd.EndTime
		}
		if !start.Before(end) {
			return fmt.Errorf("update slot: start must be before end: %w", model.ErrValidation)
		}

		if upd.IsEmpty() {
			updated = slot
			return nil
		}

		updated, err = s.slots.Update(ctx, slotID, upd)
		if err != nil {
			return fmt.Errorf("update slot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Slot updated",
		zap.Int64("slot_id", slotID),
		zap.Int64("owner_id", ownerID),
		zap.String("status", string(updated.Status)),
	)

	return updated, nil
}

// DeleteSlot удаляет слот, если он не участвует в активном предложении
func (s *SlotService) DeleteSlot(ctx context.Context, ownerID, slotID int64) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.lockUnreferenced(ctx, ownerID, slotID); err != nil {
			return err
		}
		if err := s.slots.Delete(ctx, slotID); err != nil {
			return fmt.Errorf("delete slot: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Slot deleted",
		zap.Int64("slot_id", slotID),
		zap.Int64("owner_id", ownerID),
	)

	return nil
}

// lockUnreferenced блокирует слот владельца и проверяет, что на него не ссылается активное предложение
func (s *SlotService) lockUnreferenced(ctx context.Context, ownerID, slotID int64) (*model.Slot, error) {
	locked, err := s.slots.LockByIDs(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("lock slot: %w", err)
	}

	slot := locked[slotID]
	if slot == nil || slot.OwnerID != ownerID {
		return nil, fmt.Errorf("slot %d: %w", slotID, model.ErrNotFound)
	}
	if slot.IsLocked() {
		return nil, fmt.Errorf("slot %d is locked by a pending swap: %w", slotID, model.ErrConflict)
	}

	busy, err := s.swaps.HasPending(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("check pending swaps: %w", err)
	}
	if busy {
		return nil, fmt.Errorf("slot %d is referenced by a pending swap: %w", slotID, model.ErrConflict)
	}

	return slot, nil
}
