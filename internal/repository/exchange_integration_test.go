package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/slot_swapper/internal/model"
	"github.com/Freeeeeet/slot_swapper/internal/repository"
	"github.com/Freeeeeet/slot_swapper/internal/repository/base"
	"github.com/Freeeeeet/slot_swapper/internal/repository/testhelper"
	"github.com/Freeeeeet/slot_swapper/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pgEnv struct {
	users    *repository.UserRepository
	slotRepo *repository.SlotRepository
	swapRepo *repository.SwapRepository
	exchange *service.ExchangeService
	slots    *service.SlotService
}

func newPgEnv(t *testing.T) (*pgEnv, *pgxpool.Pool) {
	pool := testhelper.SetupTestDB(t)
	testhelper.Truncate(t, pool)

	tm := base.NewTxManager(pool)
	slotRepo := repository.NewSlotRepository(pool)
	swapRepo := repository.NewSwapRepository(pool)
	logger := zap.NewNop()

	return &pgEnv{
		users:    repository.NewUserRepository(pool),
		slotRepo: slotRepo,
		swapRepo: swapRepo,
		exchange: service.NewExchangeService(tm, slotRepo, swapRepo, logger),
		slots:    service.NewSlotService(tm, slotRepo, swapRepo, logger),
	}, pool
}

func (e *pgEnv) user(t *testing.T, name string) int64 {
	t.Helper()
	email := name + "@example.com"
	u := &model.User{Name: name, Username: name, Email: &email}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u.ID
}

func (e *pgEnv) slot(t *testing.T, ownerID int64) int64 {
	t.Helper()
	start := time.Date(2025, 11, 10, 10, 0, 0, 0, time.UTC)
	s, err := e.slots.CreateSlot(context.Background(), ownerID, "meeting", start, start.Add(time.Hour), model.SlotStatusSwappable)
	require.NoError(t, err)
	return s.ID
}

func TestExchangeIntegration_ProposeAcceptReject(t *testing.T) {
	ctx := context.Background()
	e, _ := newPgEnv(t)
	alice, bob := e.user(t, "alice"), e.user(t, "bob")
	a, b := e.slot(t, alice), e.slot(t, bob)

	req, err := e.exchange.Propose(ctx, alice, a, b)
	require.NoError(t, err)

	require.ErrorIs(t, e.slots.DeleteSlot(ctx, alice, a), model.ErrConflict)

	in, err := e.exchange.Incoming(ctx, bob)
	require.NoError(t, err)
	require.Len(t, in, 1)
	assert.Equal(t, "alice@example.com", in[0].CounterpartEmail)

	resolved, err := e.exchange.Resolve(ctx, bob, req.ID, model.DecisionAccept)
	require.NoError(t, err)
	assert.Equal(t, model.SwapStatusAccepted, resolved.Status)
	require.NotNil(t, resolved.RespondedAt)

	sa, err := e.slotRepo.GetByID(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, bob, sa.OwnerID)
	assert.Equal(t, model.SlotStatusBusy, sa.Status)

	_, err = e.exchange.Resolve(ctx, bob, req.ID, model.DecisionReject)
	require.ErrorIs(t, err, model.ErrNotFound)

	audit, err := e.exchange.AuditLocks(ctx)
	require.NoError(t, err)
	assert.Empty(t, audit.OrphanSlotIDs)
	assert.Zero(t, audit.PendingSwaps)
}

func TestExchangeIntegration_ConcurrentProposals(t *testing.T) {
	ctx := context.Background()
	e, _ := newPgEnv(t)
	target := e.user(t, "target")
	b := e.slot(t, target)

	const n = 10
	requesters := make([]int64, n)
	offered := make([]int64, n)
	for i := range n {
		requesters[i] = e.user(t, fmt.Sprintf("requester%d", i))
		offered[i] = e.slot(t, requesters[i])
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.exchange.Propose(ctx, requesters[i], offered[i], b)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.True(t, errors.Is(err, model.ErrInvalidState) || errors.Is(err, model.ErrConflict), err)
	}
	assert.Equal(t, 1, ok)

	pending, err := e.swapRepo.CountPending(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, pending)

	audit, err := e.exchange.AuditLocks(ctx)
	require.NoError(t, err)
	assert.Empty(t, audit.OrphanSlotIDs)
}

func TestExchangeIntegration_ConcurrentResolve(t *testing.T) {
	ctx := context.Background()
	e, _ := newPgEnv(t)
	alice, bob := e.user(t, "alice"), e.user(t, "bob")
	a, b := e.slot(t, alice), e.slot(t, bob)

	req, err := e.exchange.Propose(ctx, alice, a, b)
	require.NoError(t, err)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	results := make([]*model.SwapRequest, n)
	for i := range n {
		decision := model.DecisionAccept
		if i%2 == 1 {
			decision = model.DecisionReject
		}
		wg.Add(1)
		go func(i int, decision model.Decision) {
			defer wg.Done()
			results[i], errs[i] = e.exchange.Resolve(ctx, bob, req.ID, decision)
		}(i, decision)
	}
	wg.Wait()

	ok := 0
	var winner *model.SwapRequest
	for i, err := range errs {
		if err == nil {
			ok++
			winner = results[i]
			continue
		}
		assert.ErrorIs(t, err, model.ErrNotFound)
	}
	require.Equal(t, 1, ok)

	pending, err := e.swapRepo.CountPending(ctx)
	require.NoError(t, err)
	assert.Zero(t, pending)

	audit, err := e.exchange.AuditLocks(ctx)
	require.NoError(t, err)
	assert.Empty(t, audit.OrphanSlotIDs)

	// Состояние слотов соответствует единственному применённому решению
	sa, err := e.slotRepo.GetByID(ctx, a)
	require.NoError(t, err)
	sb, err := e.slotRepo.GetByID(ctx, b)
	require.NoError(t, err)
	if winner.Status == model.SwapStatusAccepted {
		assert.Equal(t, bob, sa.OwnerID)
		assert.Equal(t, alice, sb.OwnerID)
		assert.Equal(t, model.SlotStatusBusy, sa.Status)
		assert.Equal(t, model.SlotStatusBusy, sb.Status)
	} else {
		assert.Equal(t, model.SwapStatusRejected, winner.Status)
		assert.Equal(t, alice, sa.OwnerID)
		assert.Equal(t, bob, sb.OwnerID)
		assert.Equal(t, model.SlotStatusSwappable, sa.Status)
		assert.Equal(t, model.SlotStatusSwappable, sb.Status)
	}
}

func TestExchangeIntegration_OppositeOrderNoDeadlock(t *testing.T) {
	ctx := context.Background()
	e, _ := newPgEnv(t)
	alice, bob := e.user(t, "alice"), e.user(t, "bob")
	a, b := e.slot(t, alice), e.slot(t, bob)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = e.exchange.Propose(ctx, alice, a, b)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = e.exchange.Propose(ctx, bob, b, a)
	}()
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		}
	}
	assert.Equal(t, 1, ok)
}

func TestExchangeIntegration_RollbackOnFailure(t *testing.T) {
	ctx := context.Background()
	e, pool := newPgEnv(t)
	alice := e.user(t, "alice")
	a := e.slot(t, alice)

	tm := base.NewTxManager(pool)
	err := tm.RunInTx(ctx, func(ctx context.Context) error {
		if err := e.slotRepo.SetStatus(ctx, model.SlotStatusSwapPending, a); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.Error(t, err)

	sa, err := e.slotRepo.GetByID(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, model.SlotStatusSwappable, sa.Status)
}

func TestExchangeIntegration_CheckConstraint(t *testing.T) {
	ctx := context.Background()
	e, _ := newPgEnv(t)
	alice := e.user(t, "alice")
	start := time.Now()

	err := e.slotRepo.Create(ctx, &model.Slot{
		OwnerID: alice, Title: "bad", StartTime: start, EndTime: start.Add(-time.Minute), Status: model.SlotStatusBusy,
	})
	require.ErrorIs(t, err, model.ErrValidation)

	dup := "alice@example.com"
	err = e.users.Create(ctx, &model.User{Name: "other", Email: &dup})
	require.ErrorIs(t, err, model.ErrConflict)
}
