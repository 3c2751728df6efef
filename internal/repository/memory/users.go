package memory

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/slot_swapper/internal/model"
)

type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.s.do(ctx, func(d *data) error {
		for _, u := range d.users {
			if user.TelegramID != nil && u.TelegramID != nil && *u.TelegramID == *user.TelegramID {
				return fmt.Errorf("create user: %w", model.ErrConflict)
			}
			if user.Email != nil && u.Email != nil && *u.Email == *user.Email {
				return fmt.Errorf("create user: %w", model.ErrConflict)
			}
		}
		user.ID = d.newID()
		user.CreatedAt = r.s.now()
		d.users[user.ID] = *user
		return nil
	})
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var out *model.User
	err := r.s.do(ctx, func(d *data) error {
		if u, ok := d.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	var out *model.User
	err := r.s.do(ctx, func(d *data) error {
		for _, u := range d.users {
			if u.TelegramID != nil && *u.TelegramID == telegramID {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	return r.s.do(ctx, func(d *data) error {
		u, ok := d.users[user.ID]
		if !ok {
			return fmt.Errorf("user %d: %w", user.ID, model.ErrNotFound)
		}
		u.Name = user.Name
		u.Username = user.Username
		d.users[user.ID] = u
		return nil
	})
}
