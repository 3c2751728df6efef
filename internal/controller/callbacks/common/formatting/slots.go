package formatting

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/slot_swapper/internal/model"
)

// SlotLine короткое описание слота для списков и кнопок
func SlotLine(slot *model.Slot, loc *time.Location) string {
	return fmt.Sprintf("#%d %s, %s",
		slot.ID,
		slot.Title,
		FormatSlotRange(slot.StartTime.In(loc), slot.EndTime.In(loc)),
	)
}

// SlotCard карточка собственного слота (HTML)
func SlotCard(slot *model.Slot, loc *time.Location) string {
	return fmt.Sprintf(
		"<b>#%d %s</b>\n🕒 %s (%s)\n%s",
		slot.ID,
		html.EscapeString(slot.Title),
		FormatSlotRange(slot.StartTime.In(loc), slot.EndTime.In(loc)),
		FormatDuration(slot.EndTime.Sub(slot.StartTime)),
		GetSlotStatusDisplay(slot.Status),
	)
}

// SwappableCard карточка чужого слота с контактом владельца (HTML)
func SwappableCard(slot *model.SwappableSlot, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>#%d %s</b>\n🕒 %s\n👤 %s",
		slot.ID,
		html.EscapeString(slot.Title),
		FormatSlotRange(slot.StartTime.In(loc), slot.EndTime.In(loc)),
		html.EscapeString(slot.OwnerName),
	)
	if slot.OwnerEmail != "" {
		fmt.Fprintf(&b, " (%s)", html.EscapeString(slot.OwnerEmail))
	}
	return b.String()
}

// SwapCard карточка предложения. incoming определяет, чей слот показывается как "ваш".
func SwapCard(req *model.SwapRequestDetails, incoming bool, loc *time.Location) string {
	giveTitle, giveStart, giveEnd := req.RequesterSlotTitle, req.RequesterSlotStart, req.RequesterSlotEnd
	getTitle, getStart, getEnd := req.RecipientSlotTitle, req.RecipientSlotStart, req.RecipientSlotEnd
	who := "Кому"
	if incoming {
		giveTitle, getTitle = getTitle, giveTitle
		giveStart, getStart = getStart, giveStart
		giveEnd, getEnd = getEnd, giveEnd
		who = "От"
	}

	return fmt.Sprintf(
		"<b>Предложение #%d</b> %s\n"+
			"👤 %s: %s\n"+
			"📤 Вы отдаёте: %s\n"+
			"📥 Вы получаете: %s",
		req.ID,
		GetSwapStatusDisplay(req.Status),
		who,
		html.EscapeString(req.CounterpartName),
		slotSide(giveTitle, giveStart, giveEnd, loc),
		slotSide(getTitle, getStart, getEnd, loc),
	)
}

// slotSide описывает слот из предложения. Удалённый слот приходит с пустым названием.
func slotSide(title string, start, end time.Time, loc *time.Location) string {
	if title == "" {
		return "<i>слот удалён</i>"
	}
	return fmt.Sprintf("%s, %s", html.EscapeString(title), FormatSlotRange(start.In(loc), end.In(loc)))
}
