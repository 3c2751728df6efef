package model

import "time"

type SwapStatus string

const (
	SwapStatusPending  SwapStatus = "PENDING"  // Ожидает ответа получателя
	SwapStatusAccepted SwapStatus = "ACCEPTED" // Обмен выполнен
	SwapStatusRejected SwapStatus = "REJECTED" // Отклонено получателем
)

// IsTerminal reports whether no further transition is allowed from s.
func (s SwapStatus) IsTerminal() bool {
	return s == SwapStatusAccepted || s == SwapStatusRejected
}

// Decision is the recipient's answer to a swap proposal.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// DecisionFromBool maps the API's boolean "accept" flag onto a Decision.
func DecisionFromBool(accept bool) Decision {
	if accept {
		return DecisionAccept
	}
	return DecisionReject
}

// SwapRequest is a proposal by the requester to trade their slot for the recipient's slot.
type SwapRequest struct {
	ID              int64      `json:"id" db:"id"`
	RequesterID     int64      `json:"requesterId" db:"requester_id"`
	RecipientID     int64      `json:"recipientId" db:"recipient_id"`
	RequesterSlotID int64      `json:"requesterSlotId" db:"requester_slot_id"`
	RecipientSlotID int64      `json:"recipientSlotId" db:"recipient_slot_id"`
	Status          SwapStatus `json:"status" db:"status"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	RespondedAt     *time.Time `json:"respondedAt" db:"responded_at"` // nil пока не разрешено
}

// IsPending checks if the proposal is still open
func (r *SwapRequest) IsPending() bool {
	return r.Status == SwapStatusPending
}

// References reports whether the proposal names slotID on either side.
func (r *SwapRequest) References(slotID int64) bool {
	return r.RequesterSlotID == slotID || r.RecipientSlotID == slotID
}

// SwapRequestDetails is a proposal joined with the counterpart user and both slots,
// as shown in the incoming/outgoing lists.
type SwapRequestDetails struct {
	SwapRequest

	CounterpartName  string `json:"counterpartName" db:"counterpart_name"`
	CounterpartEmail string `json:"counterpartEmail" db:"counterpart_email"`

	RequesterSlotTitle string    `json:"requesterSlotTitle" db:"requester_slot_title"`
	RequesterSlotStart time.Time `json:"requesterSlotStart" db:"requester_slot_start"`
	RequesterSlotEnd   time.Time `json:"requesterSlotEnd" db:"requester_slot_end"`
	RecipientSlotTitle string    `json:"recipientSlotTitle" db:"recipient_slot_title"`
	RecipientSlotStart time.Time `json:"recipientSlotStart" db:"recipient_slot_start"`
	RecipientSlotEnd   time.Time `json:"recipientSlotEnd" db:"recipient_slot_end"`
}
