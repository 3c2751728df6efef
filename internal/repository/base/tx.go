package base

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type txCtxKey struct{}

func withTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txCtxKey{}, tx)
}

func txFromCtx(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txCtxKey{}).(pgx.Tx)
	return tx, ok
}

// InTx сообщает, выполняется ли код внутри RunInTx
func InTx(ctx context.Context) bool {
	_, ok := txFromCtx(ctx)
	return ok
}

// TxManager открывает транзакции и кладёт их в контекст.
// Уровень изоляции READ COMMITTED; сериализация обеспечивается блокировками строк (FOR UPDATE).
type TxManager struct {
	pool Pool
}

// NewTxManager создаёт новый менеджер транзакций
func NewTxManager(pool Pool) *TxManager {
	return &TxManager{pool: pool}
}

// RunInTx выполняет fn в одной транзакции.
// Ошибка fn или паника откатывают транзакцию; вложенный вызов переиспользует внешнюю.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if InTx(ctx) {
		return fn(ctx)
	}

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback failed: %w (original error: %v)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
