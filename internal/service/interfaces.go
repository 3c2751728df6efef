package service

import (
	"context"

	"github.com/Freeeeeet/slot_swapper/internal/model"
)

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type slotRepo interface {
	Create(ctx context.Context, slot *model.Slot) error
	GetByID(ctx context.Context, id int64) (*model.Slot, error)
	LockByIDs(ctx context.Context, ids ...int64) (map[int64]*model.Slot, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*model.Slot, error)
	ListSwappable(ctx context.Context, excludeUserID int64) ([]*model.SwappableSlot, error)
	Update(ctx context.Context, id int64, upd model.SlotUpdate) (*model.Slot, error)
	SetStatus(ctx context.Context, status model.SlotStatus, ids ...int64) error
	SetOwnerAndStatus(ctx context.Context, id, ownerID int64, status model.SlotStatus) error
	Delete(ctx context.Context, id int64) error
	ListOrphanLocks(ctx context.Context) ([]int64, error)
}

type swapRepo interface {
	Create(ctx context.Context, req *model.SwapRequest) error
	HasPending(ctx context.Context, slotIDs ...int64) (bool, error)
	LockPending(ctx context.Context, id, recipientID int64) (*model.SwapRequest, error)
	Resolve(ctx context.Context, id int64, status model.SwapStatus) (*model.SwapRequest, error)
	GetByID(ctx context.Context, id int64) (*model.SwapRequest, error)
	ListIncoming(ctx context.Context, recipientID int64) ([]*model.SwapRequestDetails, error)
	ListOutgoing(ctx context.Context, requesterID int64) ([]*model.SwapRequestDetails, error)
	CountPending(ctx context.Context) (int64, error)
}

type userRepo interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}
