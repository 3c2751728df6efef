// Package calendar выгружает слоты пользователя в формате iCalendar.
package calendar

import (
	"fmt"
	"io"
	"time"

	"github.com/Freeeeeet/slot_swapper/internal/model"
	"github.com/emersion/go-ical"
)

const productID = "-//slot-swapper//EN"

// Encode пишет слоты в w как VCALENDAR с одним VEVENT на слот
func Encode(w io.Writer, slots []*model.Slot, now time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	for _, slot := range slots {
		cal.Children = append(cal.Children, toEvent(slot, now))
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}

func toEvent(slot *model.Slot, now time.Time) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, fmt.Sprintf("slot-%d@slot-swapper", slot.ID))
	ve.Props.SetText(ical.PropSummary, slot.Title)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, slot.StartTime.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeEnd, slot.EndTime.UTC())
	ve.Props.SetText(ical.PropCategories, string(slot.Status))

	// Слот, ожидающий ответа на обмен, может сменить владельца
	status := "CONFIRMED"
	if slot.IsLocked() {
		status = "TENTATIVE"
	}
	ve.Props.SetText(ical.PropStatus, status)

	return ve
}
