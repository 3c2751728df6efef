package state

import (
	"time"

	"github.com/Freeeeeet/slot_swapper/internal/controller/callbacks/callbacktypes"
)

// Adapter адаптирует Manager к интерфейсу callbacktypes.StateManager
type Adapter struct {
	sm *Manager
}

func NewAdapter(sm *Manager) *Adapter {
	return &Adapter{sm: sm}
}

func (a *Adapter) GetState(telegramID int64) callbacktypes.UserState {
	return callbacktypes.UserState(a.sm.GetState(telegramID))
}

func (a *Adapter) SetState(telegramID int64, state callbacktypes.UserState) {
	a.sm.SetState(telegramID, UserState(state))
}

func (a *Adapter) GetString(telegramID int64, key string) (string, bool) {
	return a.sm.GetString(telegramID, key)
}

func (a *Adapter) GetTime(telegramID int64, key string) (time.Time, bool) {
	return a.sm.GetTime(telegramID, key)
}

func (a *Adapter) ClearState(telegramID int64) {
	a.sm.ClearState(telegramID)
}
