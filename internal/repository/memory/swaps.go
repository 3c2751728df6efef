package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/Freeeeeet/slot_swapper/internal/model"
)

type SwapRepository struct {
	s *Store
}

func (d *data) hasPending(slotIDs ...int64) bool {
	for _, req := range d.swaps {
		if !req.IsPending() {
			continue
		}
		for _, id := range slotIDs {
			if req.References(id) {
				return true
			}
		}
	}
	return false
}

func (r *SwapRepository) Create(ctx context.Context, req *model.SwapRequest) error {
	return r.s.do(ctx, func(d *data) error {
		if req.RequesterSlotID == req.RecipientSlotID {
			return fmt.Errorf("create swap request: %w", model.ErrValidation)
		}
		for _, uid := range []int64{req.RequesterID, req.RecipientID} {
			if _, ok := d.users[uid]; !ok {
				return fmt.Errorf("create swap request: user %d: %w", uid, model.ErrNotFound)
			}
		}
		req.ID = d.newID()
		req.Status = model.SwapStatusPending
		req.CreatedAt = r.s.now()
		req.RespondedAt = nil
		d.swaps[req.ID] = *req
		return nil
	})
}

func (r *SwapRepository) HasPending(ctx context.Context, slotIDs ...int64) (bool, error) {
	var found bool
	err := r.s.do(ctx, func(d *data) error {
		found = d.hasPending(slotIDs...)
		return nil
	})
	return found, err
}

func (r *SwapRepository) LockPending(ctx context.Context, id, recipientID int64) (*model.SwapRequest, error) {
	var out *model.SwapRequest
	err := r.s.do(ctx, func(d *data) error {
		req, ok := d.swaps[id]
		if ok && req.RecipientID == recipientID && req.IsPending() {
			out = &req
		}
		return nil
	})
	return out, err
}

func (r *SwapRepository) Resolve(ctx context.Context, id int64, status model.SwapStatus) (*model.SwapRequest, error) {
	var out *model.SwapRequest
	err := r.s.do(ctx, func(d *data) error {
		req, ok := d.swaps[id]
		if !ok || !req.IsPending() {
			return fmt.Errorf("swap request %d: %w", id, model.ErrNotFound)
		}
		now := r.s.now()
		req.Status = status
		req.RespondedAt = &now
		d.swaps[id] = req
		out = &req
		return nil
	})
	return out, err
}

func (r *SwapRepository) GetByID(ctx context.Context, id int64) (*model.SwapRequest, error) {
	var out *model.SwapRequest
	err := r.s.do(ctx, func(d *data) error {
		if req, ok := d.swaps[id]; ok {
			out = &req
		}
		return nil
	})
	return out, err
}

func (r *SwapRepository) ListIncoming(ctx context.Context, recipientID int64) ([]*model.SwapRequestDetails, error) {
	return r.list(ctx, func(req model.SwapRequest) (bool, int64) {
		return req.RecipientID == recipientID && req.IsPending(), req.RequesterID
	})
}

func (r *SwapRepository) ListOutgoing(ctx context.Context, requesterID int64) ([]*model.SwapRequestDetails, error) {
	return r.list(ctx, func(req model.SwapRequest) (bool, int64) {
		return req.RequesterID == requesterID, req.RecipientID
	})
}

// list собирает подробности так же, как LEFT JOIN в PostgreSQL: удалённые слоты дают пустые поля
func (r *SwapRepository) list(ctx context.Context, match func(model.SwapRequest) (bool, int64)) ([]*model.SwapRequestDetails, error) {
	var out []*model.SwapRequestDetails
	err := r.s.do(ctx, func(d *data) error {
		for _, req := range d.swaps {
			ok, counterpartID := match(req)
			if !ok {
				continue
			}
			item := &model.SwapRequestDetails{SwapRequest: req}
			if u, ok := d.users[counterpartID]; ok {
				item.CounterpartName = u.Name
				if u.Email != nil {
					item.CounterpartEmail = *u.Email
				}
			}
			if slot, ok := d.slots[req.RequesterSlotID]; ok {
				item.RequesterSlotTitle = slot.Title
				item.RequesterSlotStart = slot.StartTime
				item.RequesterSlotEnd = slot.EndTime
			}
			if slot, ok := d.slots[req.RecipientSlotID]; ok {
				item.RecipientSlotTitle = slot.Title
				item.RecipientSlotStart = slot.StartTime
				item.RecipientSlotEnd = slot.EndTime
			}
			out = append(out, item)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, err
}

func (r *SwapRepository) CountPending(ctx context.Context) (int64, error) {
	var n int64
	err := r.s.do(ctx, func(d *data) error {
		for _, req := range d.swaps {
			if req.IsPending() {
				n++
			}
		}
		return nil
	})
	return n, err
}
