package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDFromCallback(t *testing.T) {
	id, err := ParseIDFromCallback("swap_accept:", "swap_accept:42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, data := range []string{"swap_reject:42", "swap_accept:", "swap_accept:x", "swap_accept:-1", "swap_accept:0"} {
		_, err := ParseIDFromCallback("swap_accept:", data)
		assert.ErrorIs(t, err, ErrInvalidFormat, data)
	}
}

func TestIsMessageNotModifiedError(t *testing.T) {
	assert.False(t, IsMessageNotModifiedError(nil))
	assert.False(t, IsMessageNotModifiedError(errors.New("forbidden")))
	assert.True(t, IsMessageNotModifiedError(errors.New("bad request, Bad Request: message is not modified")))
}

func TestParseIDPairFromCallback(t *testing.T) {
	a, b, err := ParseIDPairFromCallback("swap_offer:", "swap_offer:3:8")
	require.NoError(t, err)
	assert.Equal(t, int64(3), a)
	assert.Equal(t, int64(8), b)

	for _, data := range []string{"swap_offer:3", "swap_offer:3:", "swap_offer::8", "swap_pick:3:8", "swap_offer:3:8:1"} {
		_, _, err := ParseIDPairFromCallback("swap_offer:", data)
		assert.ErrorIs(t, err, ErrInvalidFormat, data)
	}
}
