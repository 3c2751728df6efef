package handlers

// Ограничения диалога /newslot
const (
	SlotTitleMaxLength = 100

	// Слот длиннее суток почти всегда опечатка в дате
	SlotMaxDurationHours = 24
)
