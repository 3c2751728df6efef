package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/slot_swapper/internal/controller/callbacks/callbacktypes"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestManager(ttl time.Duration) (*Manager, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	sm := NewManager(ttl)
	sm.now = clock.now
	return sm, clock
}

func TestManager_Dialog(t *testing.T) {
	sm, _ := newTestManager(time.Minute)
	start := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, StateNone, sm.GetState(1))

	sm.SetState(1, StateNewSlotTitle)
	sm.SetData(1, KeySlotTitle, "Standup")
	sm.SetData(1, KeySlotStart, start)

	assert.Equal(t, StateNewSlotTitle, sm.GetState(1))

	title, ok := sm.GetString(1, KeySlotTitle)
	require.True(t, ok)
	assert.Equal(t, "Standup", title)

	got, ok := sm.GetTime(1, KeySlotStart)
	require.True(t, ok)
	assert.True(t, got.Equal(start))

	_, ok = sm.GetTime(1, KeySlotTitle)
	assert.False(t, ok, "wrong type must not be returned")

	assert.Equal(t, StateNone, sm.GetState(2), "dialogs are per user")

	sm.SetState(1, StateNone)
	_, ok = sm.GetString(1, KeySlotTitle)
	assert.False(t, ok)
}

func TestManager_Expiry(t *testing.T) {
	sm, clock := newTestManager(time.Minute)

	sm.SetState(1, StateNewSlotStart)
	sm.SetData(1, KeySlotTitle, "old")

	clock.t = clock.t.Add(30 * time.Second)
	sm.SetState(1, StateNewSlotEnd)

	clock.t = clock.t.Add(45 * time.Second)
	assert.Equal(t, StateNewSlotEnd, sm.GetState(1), "every step extends the dialog")

	clock.t = clock.t.Add(2 * time.Minute)
	assert.Equal(t, StateNone, sm.GetState(1))

	sm.SetData(1, KeySlotTitle, "new")
	assert.Equal(t, StateNone, sm.GetState(1), "stale step is not resurrected")

	sm.SetState(2, StateNewSlotTitle)
	clock.t = clock.t.Add(2 * time.Minute)
	assert.Equal(t, 2, sm.Cleanup())
	assert.Equal(t, 0, sm.Cleanup())
}

func TestAdapter(t *testing.T) {
	sm, _ := newTestManager(0)
	var adapter callbacktypes.StateManager = NewAdapter(sm)

	adapter.SetState(7, callbacktypes.UserState(StateNewSlotStatus))
	sm.SetData(7, KeySlotTitle, "Review")

	assert.Equal(t, callbacktypes.UserState(StateNewSlotStatus), adapter.GetState(7))
	title, ok := adapter.GetString(7, KeySlotTitle)
	assert.True(t, ok)
	assert.Equal(t, "Review", title)

	adapter.ClearState(7)
	assert.Equal(t, StateNone, sm.GetState(7))
}
