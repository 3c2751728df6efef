package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/slot_swapper/internal/model"
	"github.com/Freeeeeet/slot_swapper/internal/repository/base"
	"github.com/georgysavva/scany/v2/pgxscan"
)

const swapColumns = "id, requester_id, recipient_id, requester_slot_id, recipient_slot_id, status, created_at, responded_at"

type SwapRepository struct {
	*base.Repository
}

func NewSwapRepository(pool base.Pool) *SwapRepository {
	return &SwapRepository{Repository: base.NewRepository(pool)}
}

func scanSwap(row interface{ Scan(dest ...any) error }) (*model.SwapRequest, error) {
	var req model.SwapRequest
	err := row.Scan(
		&req.ID,
		&req.RequesterID,
		&req.RecipientID,
		&req.RequesterSlotID,
		&req.RecipientSlotID,
		&req.Status,
		&req.CreatedAt,
		&req.RespondedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Create записывает новое предложение обмена в статусе PENDING
func (r *SwapRepository) Create(ctx context.Context, req *model.SwapRequest) error {
	query := `
		INSERT INTO swap_requests (requester_id, recipient_id, requester_slot_id, recipient_slot_id, status)
		VALUES ($1, $2, $3, $4, 'PENDING')
		RETURNING id, status, created_at
	`

	err := r.QueryRow(
		ctx, query,
		req.RequesterID,
		req.RecipientID,
		req.RequesterSlotID,
		req.RecipientSlotID,
	).Scan(&req.ID, &req.Status, &req.CreatedAt)

	if err != nil {
		return base.MapError(fmt.Errorf("create swap request: %w", err), "swap request", req.ID)
	}

	return nil
}

// HasPending проверяет, участвует ли хотя бы один из слотов в активном предложении
func (r *SwapRepository) HasPending(ctx context.Context, slotIDs ...int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM swap_requests
			WHERE status = 'PENDING'
			  AND (requester_slot_id = ANY($1) OR recipient_slot_id = ANY($1))
		)
	`

	var exists bool
	if err := r.QueryRow(ctx, query, slotIDs).Scan(&exists); err != nil {
		return false, fmt.Errorf("check pending swaps: %w", err)
	}

	return exists, nil
}

// LockPending блокирует активное предложение, адресованное получателю.
// Возвращает nil, если такого предложения нет.
func (r *SwapRepository) LockPending(ctx context.Context, id, recipientID int64) (*model.SwapRequest, error) {
	query := `
		SELECT ` + swapColumns + `
		FROM swap_requests
		WHERE id = $1 AND recipient_id = $2 AND status = 'PENDING'
		FOR UPDATE
	`

	req, err := scanSwap(r.QueryRow(ctx, query, id, recipientID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock swap request: %w", err)
	}

	return req, nil
}

// Resolve переводит предложение в конечный статус. Повторное разрешение невозможно.
func (r *SwapRepository) Resolve(ctx context.Context, id int64, status model.SwapStatus) (*model.SwapRequest, error) {
	query := `
		UPDATE swap_requests
		SET status = $1, responded_at = now()
		WHERE id = $2 AND status = 'PENDING'
		RETURNING ` + swapColumns

	req, err := scanSwap(r.QueryRow(ctx, query, status, id))
	if err != nil {
		return nil, base.MapError(fmt.Errorf("resolve swap request: %w", err), "swap request", id)
	}

	return req, nil
}

// GetByID получает предложение по ID
func (r *SwapRepository) GetByID(ctx context.Context, id int64) (*model.SwapRequest, error) {
	query := `SELECT ` + swapColumns + ` FROM swap_requests WHERE id = $1`

	req, err := scanSwap(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get swap request by id: %w", err)
	}

	return req, nil
}

// ListIncoming получает активные предложения, адресованные пользователю
func (r *SwapRepository) ListIncoming(ctx context.Context, recipientID int64) ([]*model.SwapRequestDetails, error) {
	query := `
		SELECT s.id, s.requester_id, s.recipient_id, s.requester_slot_id, s.recipient_slot_id,
		       s.status, s.created_at, s.responded_at,
		       u.name AS counterpart_name, COALESCE(u.email, '') AS counterpart_email,
		       COALESCE(rs.title, '') AS requester_slot_title,
		       COALESCE(rs.start_time, 'epoch'::timestamptz) AS requester_slot_start,
		       COALESCE(rs.end_time, 'epoch'::timestamptz) AS requester_slot_end,
		       COALESCE(ts.title, '') AS recipient_slot_title,
		       COALESCE(ts.start_time, 'epoch'::timestamptz) AS recipient_slot_start,
		       COALESCE(ts.end_time, 'epoch'::timestamptz) AS recipient_slot_end
		FROM swap_requests s
		JOIN users u ON u.id = s.requester_id
		LEFT JOIN events rs ON rs.id = s.requester_slot_id
		LEFT JOIN events ts ON ts.id = s.recipient_slot_id
		WHERE s.recipient_id = $1 AND s.status = 'PENDING'
		ORDER BY s.created_at DESC, s.id DESC
	`

	var reqs []*model.SwapRequestDetails
	if err := pgxscan.Select(ctx, r.Q(ctx), &reqs, query, recipientID); err != nil {
		return nil, fmt.Errorf("list incoming swap requests: %w", err)
	}

	return reqs, nil
}

// ListOutgoing получает все предложения пользователя вместе с историей
func (r *SwapRepository) ListOutgoing(ctx context.Context, requesterID int64) ([]*model.SwapRequestDetails, error) {
	query := `
		SELECT s.id, s.requester_id, s.recipient_id, s.requester_slot_id, s.recipient_slot_id,
		       s.status, s.created_at, s.responded_at,
		       u.name AS counterpart_name, COALESCE(u.email, '') AS counterpart_email,
		       COALESCE(rs.title, '') AS requester_slot_title,
		       COALESCE(rs.start_time, 'epoch'::timestamptz) AS requester_slot_start,
		       COALESCE(rs.end_time, 'epoch'::timestamptz) AS requester_slot_end,
		       COALESCE(ts.title, '') AS recipient_slot_title,
		       COALESCE(ts.start_time, 'epoch'::timestamptz) AS recipient_slot_start,
		       COALESCE(ts.end_time, 'epoch'::timestamptz) AS recipient_slot_end
		FROM swap_requests s
		JOIN users u ON u.id = s.recipient_id
		LEFT JOIN events rs ON rs.id = s.requester_slot_id
		LEFT JOIN events ts ON ts.id = s.recipient_slot_id
		WHERE s.requester_id = $1
		ORDER BY s.created_at DESC, s.id DESC
	`

	var reqs []*model.SwapRequestDetails
	if err := pgxscan.Select(ctx, r.Q(ctx), &reqs, query, requesterID); err != nil {
		return nil, fmt.Errorf("list outgoing swap requests: %w", err)
	}

	return reqs, nil
}

// CountPending возвращает количество активных предложений
func (r *SwapRepository) CountPending(ctx context.Context) (int64, error) {
	var n int64
	if err := r.QueryRow(ctx, `SELECT count(*) FROM swap_requests WHERE status = 'PENDING'`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count pending swap requests: %w", err)
	}
	return n, nil
}
