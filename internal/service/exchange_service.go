package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/slot_swapper/internal/model"
	"go.uber.org/zap"
)

// ExchangeService проводит обмен слотами: создание предложения и ответ на него.
// Каждая операция выполняется в одной транзакции с блокировкой затронутых строк.
type ExchangeService struct {
	tx     txManager
	slots  slotRepo
	swaps  swapRepo
	logger *zap.Logger
}

func NewExchangeService(tx txManager, slots slotRepo, swaps swapRepo, logger *zap.Logger) *ExchangeService {
	return &ExchangeService{
		tx:     tx,
		slots:  slots,
		swaps:  swaps,
		logger: logger,
	}
}

// LockAudit результат проверки блокировок слотов
type LockAudit struct {
	OrphanSlotIDs []int64
	PendingSwaps  int64
}

// Propose создаёт предложение обменять слот requesterSlotID на чужой слот recipientSlotID
func (s *ExchangeService) Propose(ctx context.Context, requesterID, requesterSlotID, recipientSlotID int64) (*model.SwapRequest, error) {
	var req *model.SwapRequest
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		// Блокируем оба слота до конца транзакции
		locked, err := s.slots.LockByIDs(ctx, requesterSlotID, recipientSlotID)
		if err != nil {
			return fmt.Errorf("lock slots: %w", err)
		}

		mine := locked[requesterSlotID]
		if mine == nil || mine.OwnerID != requesterID {
			return fmt.Errorf("requester slot %d: %w", requesterSlotID, model.ErrNotFound)
		}
		if mine.Status != model.SlotStatusSwappable {
			return fmt.Errorf("requester slot %d is %s: %w", requesterSlotID, mine.Status, model.ErrInvalidState)
		}

		theirs := locked[recipientSlotID]
		if theirs == nil || theirs.OwnerID == requesterID {
			return fmt.Errorf("recipient slot %d: %w", recipientSlotID, model.ErrNotFound)
		}
		if theirs.Status != model.SlotStatusSwappable {
			return fmt.Errorf("recipient slot %d is %s: %w", recipientSlotID, theirs.Status, model.ErrInvalidState)
		}

		// Слоты не должны участвовать в другом активном предложении
		busy, err := s.swaps.HasPending(ctx, requesterSlotID, recipientSlotID)
		if err != nil {
			return fmt.Errorf("check pending swaps: %w", err)
		}
		if busy {
			return fmt.Errorf("slots %d, %d already in a pending swap: %w", requesterSlotID, recipientSlotID, model.ErrConflict)
		}

		req = &model.SwapRequest{
			RequesterID:     requesterID,
			RecipientID:     theirs.OwnerID,
			RequesterSlotID: requesterSlotID,
			RecipientSlotID: recipientSlotID,
			Status:          model.SwapStatusPending,
		}
		if err := s.swaps.Create(ctx, req); err != nil {
			return fmt.Errorf("create swap request: %w", err)
		}

		if err := s.slots.SetStatus(ctx, model.SlotStatusSwapPending, requesterSlotID, recipientSlotID); err != nil {
			return fmt.Errorf("mark slots pending: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Swap proposed",
		zap.Int64("swap_id", req.ID),
		zap.Int64("requester_id", req.RequesterID),
		zap.Int64("recipient_id", req.RecipientID),
		zap.Int64("requester_slot_id", requesterSlotID),
		zap.Int64("recipient_slot_id", recipientSlotID),
	)

	return req, nil
}

// Resolve принимает или отклоняет предложение, адресованное recipientID
func (s *ExchangeService) Resolve(ctx context.Context, recipientID, proposalID int64, decision model.Decision) (*model.SwapRequest, error) {
	if decision != model.DecisionAccept && decision != model.DecisionReject {
		return nil, fmt.Errorf("resolve swap: unknown decision %q: %w", decision, model.ErrValidation)
	}

	var resolved *model.SwapRequest
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		// Сначала предложение, потом слоты
		req, err := s.swaps.LockPending(ctx, proposalID, recipientID)
		if err != nil {
			return fmt.Errorf("lock swap request: %w", err)
		}
		if req == nil {
			return fmt.Errorf("pending swap request %d: %w", proposalID, model.ErrNotFound)
		}

		locked, err := s.slots.LockByIDs(ctx, req.RequesterSlotID, req.RecipientSlotID)
		if err != nil {
			return fmt.Errorf("lock slots: %w", err)
		}

		status := model.SwapStatusRejected
		if decision == model.DecisionAccept {
			status = model.SwapStatusAccepted
			if err := s.swapOwners(ctx, req, locked); err != nil {
				return err
			}
		} else {
			// Возвращаем в обмен только те слоты, что ещё существуют
			var ids []int64
			for _, id := range []int64{req.RequesterSlotID, req.RecipientSlotID} {
				if locked[id] != nil {
					ids = append(ids, id)
				}
			}
			if len(ids) > 0 {
				if err := s.slots.SetStatus(ctx, model.SlotStatusSwappable, ids...); err != nil {
					return fmt.Errorf("release slots: %w", err)
				}
			}
		}

		resolved, err = s.swaps.Resolve(ctx, req.ID, status)
		if err != nil {
			return fmt.Errorf("finalize swap request: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Swap resolved",
		zap.Int64("swap_id", resolved.ID),
		zap.Int64("recipient_id", recipientID),
		zap.String("status", string(resolved.Status)),
	)

	return resolved, nil
}

func (s *ExchangeService) swapOwners(ctx context.Context, req *model.SwapRequest, locked map[int64]*model.Slot) error {
	mine, theirs := locked[req.RequesterSlotID], locked[req.RecipientSlotID]
	if mine == nil || theirs == nil {
		return fmt.Errorf("swap request %d: slot no longer exists: %w", req.ID, model.ErrInvalidState)
	}

	// Владельцы должны совпадать с указанными в предложении
	if mine.OwnerID != req.RequesterID || theirs.OwnerID != req.RecipientID {
		return fmt.Errorf("swap request %d: slot owners changed: %w", req.ID, model.ErrInvalidState)
	}

	if err := s.slots.SetOwnerAndStatus(ctx, mine.ID, req.RecipientID, model.SlotStatusBusy); err != nil {
		return fmt.Errorf("transfer requester slot: %w", err)
	}
	if err := s.slots.SetOwnerAndStatus(ctx, theirs.ID, req.RequesterID, model.SlotStatusBusy); err != nil {
		return fmt.Errorf("transfer recipient slot: %w", err)
	}

	return nil
}

// Incoming получает активные предложения, адресованные пользователю
func (s *ExchangeService) Incoming(ctx context.Context, userID int64) ([]*model.SwapRequestDetails, error) {
	return s.swaps.ListIncoming(ctx, userID)
}

// Outgoing получает все предложения, отправленные пользователем
func (s *ExchangeService) Outgoing(ctx context.Context, userID int64) ([]*model.SwapRequestDetails, error) {
	return s.swaps.ListOutgoing(ctx, userID)
}

// GetByID получает предложение по ID
func (s *ExchangeService) GetByID(ctx context.Context, id int64) (*model.SwapRequest, error) {
	return s.swaps.GetByID(ctx, id)
}

// AuditLocks ищет слоты в SWAP_PENDING без активного предложения. Ничего не исправляет.
func (s *ExchangeService) AuditLocks(ctx context.Context) (*LockAudit, error) {
	orphans, err := s.slots.ListOrphanLocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orphan locks: %w", err)
	}

	pending, err := s.swaps.CountPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("count pending swaps: %w", err)
	}

	return &LockAudit{OrphanSlotIDs: orphans, PendingSwaps: pending}, nil
}
