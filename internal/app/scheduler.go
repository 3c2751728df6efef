package app

import (
	"context"
	"time"

	"github.com/Freeeeeet/slot_swapper/internal/service"
	"go.uber.org/zap"
)

type lockAuditor interface {
	AuditLocks(ctx context.Context) (*service.LockAudit, error)
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	auditor  lockAuditor
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	done     chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(auditor lockAuditor, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		auditor:  auditor,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("lock_audit_interval", s.interval))

	go s.runLockAuditTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт их завершения
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
	<-s.done
}

// runLockAuditTask периодически проверяет блокировки слотов
func (s *Scheduler) runLockAuditTask(ctx context.Context) {
	defer close(s.done)

	// Первый запуск сразу при старте
	s.auditLocks(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.auditLocks(ctx)
		case <-s.stopChan:
			s.logger.Info("Lock audit task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Lock audit task cancelled")
			return
		}
	}
}

// auditLocks ищет слоты в SWAP_PENDING без активного предложения. Только логирует.
func (s *Scheduler) auditLocks(ctx context.Context) {
	audit, err := s.auditor.AuditLocks(ctx)
	if err != nil {
		s.logger.Error("Failed to audit slot locks", zap.Error(err))
		return
	}

	if len(audit.OrphanSlotIDs) > 0 {
		s.logger.Warn("Orphaned slot locks found",
			zap.Int64s("slot_ids", audit.OrphanSlotIDs),
			zap.Int64("pending_swaps", audit.PendingSwaps),
		)
		return
	}

	s.logger.Debug("Slot locks consistent", zap.Int64("pending_swaps", audit.PendingSwaps))
}
