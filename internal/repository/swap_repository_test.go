package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/slot_swapper/internal/model"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var swapCols = []string{"id", "requester_id", "recipient_id", "requester_slot_id", "recipient_slot_id", "status", "created_at", "responded_at"}

func TestSwapRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewSwapRepository(mock)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO swap_requests`).
		WithArgs(int64(1), int64(2), int64(10), int64(20)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "status", "created_at"}).
			AddRow(int64(7), model.SwapStatusPending, now))

	req := &model.SwapRequest{RequesterID: 1, RecipientID: 2, RequesterSlotID: 10, RecipientSlotID: 20}
	require.NoError(t, repo.Create(context.Background(), req))
	assert.EqualValues(t, 7, req.ID)
	assert.Equal(t, model.SwapStatusPending, req.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSwapRepository_HasPending(t *testing.T) {
	for _, exists := range []bool{true, false} {
		mock := newMock(t)
		repo := NewSwapRepository(mock)

		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(exists))

		got, err := repo.HasPending(context.Background(), 10, 20)
		require.NoError(t, err)
		assert.Equal(t, exists, got)
		require.NoError(t, mock.ExpectationsWereMet())
	}
}

func TestSwapRepository_LockPending(t *testing.T) {
	now := time.Now()

	t.Run("locked", func(t *testing.T) {
		mock := newMock(t)
		repo := NewSwapRepository(mock)
		mock.ExpectQuery(`status = 'PENDING'\s+FOR UPDATE`).
			WithArgs(int64(7), int64(2)).
			WillReturnRows(pgxmock.NewRows(swapCols).
				AddRow(int64(7), int64(1), int64(2), int64(10), int64(20), model.SwapStatusPending, now, (*time.Time)(nil)))

		req, err := repo.LockPending(context.Background(), 7, 2)
		require.NoError(t, err)
		require.NotNil(t, req)
		assert.True(t, req.IsPending())
		assert.Nil(t, req.RespondedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not pending", func(t *testing.T) {
		mock := newMock(t)
		repo := NewSwapRepository(mock)
		mock.ExpectQuery(`FOR UPDATE`).
			WithArgs(int64(7), int64(2)).
			WillReturnError(pgx.ErrNoRows)

		req, err := repo.LockPending(context.Background(), 7, 2)
		require.NoError(t, err)
		assert.Nil(t, req)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSwapRepository_Resolve(t *testing.T) {
	now := time.Now()

	t.Run("resolved", func(t *testing.T) {
		mock := newMock(t)
		repo := NewSwapRepository(mock)
		mock.ExpectQuery(`UPDATE swap_requests`).
			WithArgs(model.SwapStatusAccepted, int64(7)).
			WillReturnRows(pgxmock.NewRows(swapCols).
				AddRow(int64(7), int64(1), int64(2), int64(10), int64(20), model.SwapStatusAccepted, now, &now))

		req, err := repo.Resolve(context.Background(), 7, model.SwapStatusAccepted)
		require.NoError(t, err)
		assert.Equal(t, model.SwapStatusAccepted, req.Status)
		require.NotNil(t, req.RespondedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already resolved", func(t *testing.T) {
		mock := newMock(t)
		repo := NewSwapRepository(mock)
		mock.ExpectQuery(`UPDATE swap_requests`).
			WithArgs(model.SwapStatusRejected, int64(7)).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.Resolve(context.Background(), 7, model.SwapStatusRejected)
		require.ErrorIs(t, err, model.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSwapRepository_CountPending(t *testing.T) {
	mock := newMock(t)
	repo := NewSwapRepository(mock)

	mock.ExpectQuery(`SELECT count\(\*\) FROM swap_requests`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))

	n, err := repo.CountPending(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	require.NoError(t, mock.ExpectationsWereMet())
}
