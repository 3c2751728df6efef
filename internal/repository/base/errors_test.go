package base

import (
	"context"
	"errors"
	"testing"

	"github.com/Freeeeeet/slot_swapper/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	other := errors.New("network")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, model.ErrNotFound},
		{"unique", &pgconn.PgError{Code: "23505"}, model.ErrConflict},
		{"foreign key", &pgconn.PgError{Code: "23503"}, model.ErrNotFound},
		{"check", &pgconn.PgError{Code: "23514"}, model.ErrValidation},
		{"deadline", context.DeadlineExceeded, context.DeadlineExceeded},
		{"other", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err, "slot", 7)
			assert.ErrorIs(t, got, tt.want)
			assert.Contains(t, got.Error(), "slot 7")
		})
	}

	assert.NoError(t, MapError(nil, "slot", 1))
	assert.NotErrorIs(t, MapError(context.Canceled, "slot", 1), model.ErrNotFound)
}
