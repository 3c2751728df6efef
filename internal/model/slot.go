package model

import "time"

type SlotStatus string

const (
	SlotStatusBusy        SlotStatus = "BUSY"         // Не участвует в обмене
	SlotStatusSwappable   SlotStatus = "SWAPPABLE"    // Предложен для обмена
	SlotStatusSwapPending SlotStatus = "SWAP_PENDING" // Заблокирован активным предложением
)

// Valid reports whether s is one of the known slot statuses.
func (s SlotStatus) Valid() bool {
	switch s {
	case SlotStatusBusy, SlotStatusSwappable, SlotStatusSwapPending:
		return true
	}
	return false
}

// Editable reports whether an owner may set s directly.
// SWAP_PENDING is only ever assigned by the exchange coordinator.
func (s SlotStatus) Editable() bool {
	return s == SlotStatusBusy || s == SlotStatusSwappable
}

// Slot is a time-bounded claim on the shared schedule owned by exactly one user.
type Slot struct {
	ID        int64      `json:"id" db:"id"`
	OwnerID   int64      `json:"userId" db:"user_id"`
	Title     string     `json:"title" db:"title"`
	StartTime time.Time  `json:"startTime" db:"start_time"`
	EndTime   time.Time  `json:"endTime" db:"end_time"`
	Status    SlotStatus `json:"status" db:"status"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}

// IsLocked reports whether the slot is held by an in-flight proposal.
func (s *Slot) IsLocked() bool {
	return s.Status == SlotStatusSwapPending
}

// SwappableSlot is a SWAPPABLE slot of another user together with its owner's contact.
type SwappableSlot struct {
	Slot
	OwnerName  string `json:"userName" db:"user_name"`
	OwnerEmail string `json:"userEmail" db:"user_email"`
}

// SlotUpdate holds the optional fields of a slot edit. Nil means "unchanged".
type SlotUpdate struct {
	Title     *string
	StartTime *time.Time
	EndTime   *time.Time
	Status    *SlotStatus
}

// IsEmpty reports whether the update changes nothing.
func (u SlotUpdate) IsEmpty() bool {
	return u.Title == nil && u.StartTime == nil && u.EndTime == nil && u.Status == nil
}
