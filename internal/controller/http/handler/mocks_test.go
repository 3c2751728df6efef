package handler_test

import (
	"context"
	"time"

	"github.com/Freeeeeet/slot_swapper/internal/auth"
	"github.com/Freeeeeet/slot_swapper/internal/model"
)

type mockSlotService struct {
	createFn        func(ctx context.Context, ownerID int64, title string, start, end time.Time, status model.SlotStatus) (*model.Slot, error)
	listMineFn      func(ctx context.Context, ownerID int64) ([]*model.Slot, error)
	listSwappableFn func(ctx context.Context, userID int64) ([]*model.SwappableSlot, error)
	updateFn        func(ctx context.Context, ownerID, slotID int64, upd model.SlotUpdate) (*model.Slot, error)
	deleteFn        func(ctx context.Context, ownerID, slotID int64) error
}

func (m *mockSlotService) CreateSlot(ctx context.Context, ownerID int64, title string, start, end time.Time, status model.SlotStatus) (*model.Slot, error) {
	if m.createFn != nil {
		return m.createFn(ctx, ownerID, title, start, end, status)
	}
	return nil, nil
}

func (m *mockSlotService) ListMySlots(ctx context.Context, ownerID int64) ([]*model.Slot, error) {
	if m.listMineFn != nil {
		return m.listMineFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockSlotService) ListSwappable(ctx context.Context, userID int64) ([]*model.SwappableSlot, error) {
	if m.listSwappableFn != nil {
		return m.listSwappableFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockSlotService) UpdateSlot(ctx context.Context, ownerID, slotID int64, upd model.SlotUpdate) (*model.Slot, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, ownerID, slotID, upd)
	}
	return nil, nil
}

func (m *mockSlotService) DeleteSlot(ctx context.Context, ownerID, slotID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, ownerID, slotID)
	}
	return nil
}

type mockExchangeService struct {
	proposeFn  func(ctx context.Context, requesterID, requesterSlotID, recipientSlotID int64) (*model.SwapRequest, error)
	resolveFn  func(ctx context.Context, recipientID, proposalID int64, decision model.Decision) (*model.SwapRequest, error)
	incomingFn func(ctx context.Context, userID int64) ([]*model.SwapRequestDetails, error)
	outgoingFn func(ctx context.Context, userID int64) ([]*model.SwapRequestDetails, error)
}

func (m *mockExchangeService) Propose(ctx context.Context, requesterID, requesterSlotID, recipientSlotID int64) (*model.SwapRequest, error) {
	if m.proposeFn != nil {
		return m.proposeFn(ctx, requesterID, requesterSlotID, recipientSlotID)
	}
	return nil, nil
}

func (m *mockExchangeService) Resolve(ctx context.Context, recipientID, proposalID int64, decision model.Decision) (*model.SwapRequest, error) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, recipientID, proposalID, decision)
	}
	return nil, nil
}

func (m *mockExchangeService) Incoming(ctx context.Context, userID int64) ([]*model.SwapRequestDetails, error) {
	if m.incomingFn != nil {
		return m.incomingFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockExchangeService) Outgoing(ctx context.Context, userID int64) ([]*model.SwapRequestDetails, error) {
	if m.outgoingFn != nil {
		return m.outgoingFn(ctx, userID)
	}
	return nil, nil
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(context.Context) error {
	return m.err
}

// stubTokens принимает "token-<id>" и отклоняет всё остальное
type stubTokens struct{}

func (stubTokens) Parse(token string) (*auth.Claims, error) {
	switch token {
	case "token-1":
		return &auth.Claims{ID: 1, Email: "alice@example.com"}, nil
	case "token-2":
		return &auth.Claims{ID: 2, Email: "bob@example.com"}, nil
	}
	return nil, auth.ErrInvalidToken
}
