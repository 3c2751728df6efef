package base

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/slot_swapper/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MapError переводит ошибки pgx/pgconn в доменные ошибки.
// Ошибки контекста не переводятся.
func MapError(err error, entity string, id int64) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %d: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", entity, id, model.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %d: %w", entity, id, model.ErrConflict)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %d: %w", entity, id, model.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %d: %w", entity, id, model.ErrValidation)
		}
	}

	return fmt.Errorf("%s %d: %w", entity, id, err)
}
