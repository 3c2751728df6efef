// Package memory хранит слоты, предложения обмена и пользователей в памяти процесса.
// Транзакции сериализуются одним мьютексом, при откате восстанавливается снимок.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/slot_swapper/internal/model"
)

// txCtxKey помечает контекст транзакции; значение указывает на хранилище, открывшее её
type txCtxKey struct{}

type data struct {
	slots  map[int64]model.Slot
	swaps  map[int64]model.SwapRequest
	users  map[int64]model.User
	nextID int64
}

func (d *data) clone() *data {
	c := &data{
		slots:  make(map[int64]model.Slot, len(d.slots)),
		swaps:  make(map[int64]model.SwapRequest, len(d.swaps)),
		users:  make(map[int64]model.User, len(d.users)),
		nextID: d.nextID,
	}
	for k, v := range d.slots {
		c.slots[k] = v
	}
	for k, v := range d.swaps {
		if v.RespondedAt != nil {
			t := *v.RespondedAt
			v.RespondedAt = &t
		}
		c.swaps[k] = v
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	return c
}

// Store in-memory хранилище с тем же атомарным контрактом, что и PostgreSQL
type Store struct {
	mu   sync.Mutex
	data *data
	now  func() time.Time
}

// NewStore создаёт пустое хранилище
func NewStore() *Store {
	return &Store{
		data: &data{
			slots: make(map[int64]model.Slot),
			swaps: make(map[int64]model.SwapRequest),
			users: make(map[int64]model.User),
		},
		now: time.Now,
	}
}

// Slots возвращает репозиторий слотов
func (s *Store) Slots() *SlotRepository { return &SlotRepository{s: s} }

// Swaps возвращает репозиторий предложений обмена
func (s *Store) Swaps() *SwapRepository { return &SwapRepository{s: s} }

// Users возвращает репозиторий пользователей
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// RunInTx выполняет fn под глобальной блокировкой.
// Ошибка или паника возвращают состояние к снимку, снятому перед fn.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	committed := false
	defer func() {
		if !committed {
			s.data = snapshot
		}
	}()

	if err := fn(context.WithValue(ctx, txCtxKey{}, s)); err != nil {
		return err
	}

	committed = true
	return nil
}

// do выполняет операцию вне транзакции под блокировкой, внутри транзакции как есть
func (s *Store) do(ctx context.Context, fn func(d *data) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.inTx(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.data)
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txCtxKey{}).(*Store)
	return owner == s
}

func (d *data) newID() int64 {
	d.nextID++
	return d.nextID
}
