package state

import "time"

// UserState представляет текущий шаг диалога пользователя
type UserState string

const (
	StateNone UserState = ""

	// Диалог /newslot
	StateNewSlotTitle  UserState = "new_slot_title"
	StateNewSlotStart  UserState = "new_slot_start"
	StateNewSlotEnd    UserState = "new_slot_end"
	StateNewSlotStatus UserState = "new_slot_status"
)

// Ключи временных данных диалога /newslot
const (
	KeySlotTitle = "title"
	KeySlotStart = "start"
	KeySlotEnd   = "end"
)

// UserData хранит шаг диалога и введённые на нём данные
type UserData struct {
	State     UserState
	Data      map[string]any
	UpdatedAt time.Time
}
