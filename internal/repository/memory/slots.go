package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/Freeeeeet/slot_swapper/internal/model"
)

type SlotRepository struct {
	s *Store
}

func (r *SlotRepository) Create(ctx context.Context, slot *model.Slot) error {
	return r.s.do(ctx, func(d *data) error {
		if _, ok := d.users[slot.OwnerID]; !ok {
			return fmt.Errorf("create slot: user %d: %w", slot.OwnerID, model.ErrNotFound)
		}
		if !slot.StartTime.Before(slot.EndTime) {
			return fmt.Errorf("create slot: %w", model.ErrValidation)
		}
		now := r.s.now()
		slot.ID = d.newID()
		slot.CreatedAt = now
		slot.UpdatedAt = now
		d.slots[slot.ID] = *slot
		return nil
	})
}

func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*model.Slot, error) {
	var out *model.Slot
	err := r.s.do(ctx, func(d *data) error {
		if slot, ok := d.slots[id]; ok {
			out = &slot
		}
		return nil
	})
	return out, err
}

// LockByIDs только читает: транзакция и так держит глобальную блокировку
func (r *SlotRepository) LockByIDs(ctx context.Context, ids ...int64) (map[int64]*model.Slot, error) {
	out := make(map[int64]*model.Slot, len(ids))
	err := r.s.do(ctx, func(d *data) error {
		for _, id := range ids {
			if slot, ok := d.slots[id]; ok {
				out[id] = &slot
			}
		}
		return nil
	})
	return out, err
}

func (r *SlotRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*model.Slot, error) {
	var out []*model.Slot
	err := r.s.do(ctx, func(d *data) error {
		for _, slot := range d.slots {
			if slot.OwnerID == ownerID {
				slot := slot
				out = append(out, &slot)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, err
}

func (r *SlotRepository) ListSwappable(ctx context.Context, excludeUserID int64) ([]*model.SwappableSlot, error) {
	var out []*model.SwappableSlot
	err := r.s.do(ctx, func(d *data) error {
		for _, slot := range d.slots {
			if slot.Status != model.SlotStatusSwappable || slot.OwnerID == excludeUserID {
				continue
			}
			item := &model.SwappableSlot{Slot: slot}
			if u, ok := d.users[slot.OwnerID]; ok {
				item.OwnerName = u.Name
				if u.Email != nil {
					item.OwnerEmail = *u.Email
				}
			}
			out = append(out, item)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, err
}

func (r *SlotRepository) Update(ctx context.Context, id int64, upd model.SlotUpdate) (*model.Slot, error) {
	var out *model.Slot
	err := r.s.do(ctx, func(d *data) error {
		slot, ok := d.slots[id]
		if !ok {
			return fmt.Errorf("slot %d: %w", id, model.ErrNotFound)
		}
		if upd.Title != nil {
			slot.Title = *upd.Title
		}
		if upd.StartTime != nil {
			slot.StartTime = *upd.StartTime
		}
		if upd.EndTime != nil {
			slot.EndTime = *upd.EndTime
		}
		if upd.Status != nil {
			slot.Status = *upd.Status
		}
		if !slot.StartTime.Before(slot.EndTime) {
			return fmt.Errorf("slot %d: %w", id, model.ErrValidation)
		}
		slot.UpdatedAt = r.s.now()
		d.slots[id] = slot
		out = &slot
		return nil
	})
	return out, err
}

func (r *SlotRepository) SetStatus(ctx context.Context, status model.SlotStatus, ids ...int64) error {
	return r.s.do(ctx, func(d *data) error {
		for _, id := range ids {
			if _, ok := d.slots[id]; !ok {
				return fmt.Errorf("set slot status: slot %d: %w", id, model.ErrNotFound)
			}
		}
		now := r.s.now()
		for _, id := range ids {
			slot := d.slots[id]
			slot.Status = status
			slot.UpdatedAt = now
			d.slots[id] = slot
		}
		return nil
	})
}

func (r *SlotRepository) SetOwnerAndStatus(ctx context.Context, id, ownerID int64, status model.SlotStatus) error {
	return r.s.do(ctx, func(d *data) error {
		slot, ok := d.slots[id]
		if !ok {
			return fmt.Errorf("slot %d: %w", id, model.ErrNotFound)
		}
		slot.OwnerID = ownerID
		slot.Status = status
		slot.UpdatedAt = r.s.now()
		d.slots[id] = slot
		return nil
	})
}

func (r *SlotRepository) Delete(ctx context.Context, id int64) error {
	return r.s.do(ctx, func(d *data) error {
		if _, ok := d.slots[id]; !ok {
			return fmt.Errorf("slot %d: %w", id, model.ErrNotFound)
		}
		delete(d.slots, id)
		return nil
	})
}

func (r *SlotRepository) ListOrphanLocks(ctx context.Context) ([]int64, error) {
	var out []int64
	err := r.s.do(ctx, func(d *data) error {
		for id, slot := range d.slots {
			if slot.Status == model.SlotStatusSwapPending && !d.hasPending(id) {
				out = append(out, id)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, err
}
