package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/slot_swapper/internal/model"
	"github.com/Freeeeeet/slot_swapper/internal/repository/base"
	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
)

const slotColumns = "id, user_id, title, start_time, end_time, status, created_at, updated_at"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type SlotRepository struct {
	*base.Repository
}

func NewSlotRepository(pool base.Pool) *SlotRepository {
	return &SlotRepository{Repository: base.NewRepository(pool)}
}

func scanSlot(row interface{ Scan(dest ...any) error }) (*model.Slot, error) {
	var slot model.Slot
	err := row.Scan(
		&slot.ID,
		&slot.OwnerID,
		&slot.Title,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Status,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// Create создаёт новый слот
func (r *SlotRepository) Create(ctx context.Context, slot *model.Slot) error {
	query := `
		INSERT INTO events (user_id, title, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		slot.OwnerID,
		slot.Title,
		slot.StartTime,
		slot.EndTime,
		slot.Status,
	).Scan(&slot.ID, &slot.CreatedAt, &slot.UpdatedAt)

	if err != nil {
		return base.MapError(fmt.Errorf("create slot: %w", err), "slot", slot.ID)
	}

	return nil
}

// GetByID получает слот по ID
func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*model.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM events WHERE id = $1`

	slot, err := scanSlot(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot by id: %w", err)
	}

	return slot, nil
}

// LockByIDs блокирует строки слотов до конца транзакции.
// Блокировки берутся по возрастанию id; отсутствующие слоты в результат не попадают.
func (r *SlotRepository) LockByIDs(ctx context.Context, ids ...int64) (map[int64]*model.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM events
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE
	`

	rows, err := r.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("lock slots: %w", err)
	}
	defer rows.Close()

	slots := make(map[int64]*model.Slot, len(ids))
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan locked slot: %w", err)
		}
		slots[slot.ID] = slot
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locked slots: %w", err)
	}

	return slots, nil
}

// ListByOwner получает слоты пользователя по времени начала
func (r *SlotRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*model.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM events WHERE user_id = $1 ORDER BY start_time, id`

	var slots []*model.Slot
	if err := pgxscan.Select(ctx, r.Q(ctx), &slots, query, ownerID); err != nil {
		return nil, fmt.Errorf("list slots by owner: %w", err)
	}

	return slots, nil
}

// ListSwappable получает слоты других пользователей, доступные для обмена
func (r *SlotRepository) ListSwappable(ctx context.Context, excludeUserID int64) ([]*model.SwappableSlot, error) {
	query := `
		SELECT e.id, e.user_id, e.title, e.start_time, e.end_time, e.status, e.created_at, e.updated_at,
		       u.name AS user_name, COALESCE(u.email, '') AS user_email
		FROM events e
		JOIN users u ON u.id = e.user_id
		WHERE e.status = 'SWAPPABLE' AND e.user_id <> $1
		ORDER BY e.start_time, e.id
	`

	var slots []*model.SwappableSlot
	if err := pgxscan.Select(ctx, r.Q(ctx), &slots, query, excludeUserID); err != nil {
		return nil, fmt.Errorf("list swappable slots: %w", err)
	}

	return slots, nil
}

// Update применяет частичное изменение слота и возвращает новое состояние
func (r *SlotRepository) Update(ctx context.Context, id int64, upd model.SlotUpdate) (*model.Slot, error) {
	b := psql.Update("events").Set("updated_at", sq.Expr("now()"))
	if upd.Title != nil {
		b = b.Set("title", *upd.Title)
	}
	if upd.StartTime != nil {
		b = b.Set("start_time", *upd.StartTime)
	}
	if upd.EndTime != nil {
		b = b.Set("end_time", *upd.EndTime)
	}
	if upd.Status != nil {
		b = b.Set("status", *upd.Status)
	}

	query, args, err := b.Where(sq.Eq{"id": id}).Suffix("RETURNING " + slotColumns).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update slot query: %w", err)
	}

	slot, err := scanSlot(r.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, base.MapError(fmt.Errorf("update slot: %w", err), "slot", id)
	}

	return slot, nil
}

// SetStatus выставляет статус сразу нескольким слотам
func (r *SlotRepository) SetStatus(ctx context.Context, status model.SlotStatus, ids ...int64) error {
	query := `
		UPDATE events
		SET status = $1, updated_at = now()
		WHERE id = ANY($2)
	`

	affected, err := r.ExecAffected(ctx, query, status, ids)
	if err != nil {
		return fmt.Errorf("set slot status: %w", err)
	}

	if affected != int64(len(ids)) {
		return fmt.Errorf("set slot status: updated %d of %d: %w", affected, len(ids), model.ErrNotFound)
	}

	return nil
}

// SetOwnerAndStatus передаёт слот другому владельцу
func (r *SlotRepository) SetOwnerAndStatus(ctx context.Context, id, ownerID int64, status model.SlotStatus) error {
	query := `
		UPDATE events
		SET user_id = $1, status = $2, updated_at = now()
		WHERE id = $3
	`

	affected, err := r.ExecAffected(ctx, query, ownerID, status, id)
	if err != nil {
		return base.MapError(fmt.Errorf("set slot owner: %w", err), "slot", id)
	}

	if affected == 0 {
		return fmt.Errorf("slot %d: %w", id, model.ErrNotFound)
	}

	return nil
}

// Delete удаляет слот
func (r *SlotRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("slot %d: %w", id, model.ErrNotFound)
	}

	return nil
}

// ListOrphanLocks возвращает слоты в SWAP_PENDING без активного предложения
func (r *SlotRepository) ListOrphanLocks(ctx context.Context) ([]int64, error) {
	query := `
		SELECT e.id
		FROM events e
		WHERE e.status = 'SWAP_PENDING'
		  AND NOT EXISTS (
			SELECT 1 FROM swap_requests s
			WHERE s.status = 'PENDING'
			  AND (s.requester_slot_id = e.id OR s.recipient_slot_id = e.id)
		  )
		ORDER BY e.id
	`

	var ids []int64
	if err := pgxscan.Select(ctx, r.Q(ctx), &ids, query); err != nil {
		return nil, fmt.Errorf("list orphan locks: %w", err)
	}

	return ids, nil
}
