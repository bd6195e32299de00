package vcardio

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"

	"BirthdayKeeper/internal/cli/model"
	"BirthdayKeeper/internal/cli/service"
)

const (
	icalProdID = "-//BirthdayKeeper//EN"
	icalDomain = "birthdaykeeper.local"
)

// ExportICS renders the records as an iCalendar feed: one all-day
// VEVENT per birthday at its next occurrence, each with a display
// alarm the day before. Tombstoned records are the caller's problem;
// this function exports what it is given.
func ExportICS(records []model.Birthday, now time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, icalProdID)

	dtStamp := ical.NewProp(ical.PropDateTimeStamp)
	dtStamp.SetDateTime(now.UTC())

	for _, b := range records {
		birthDate, err := b.BirthDate()
		if err != nil {
			continue
		}
		next := service.NextOccurrence(now, birthDate)

		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, fmt.Sprintf("%s-%d@%s", b.SyncID, next.Year(), icalDomain))
		summary := b.Name
		if age := next.Year() - birthDate.Year(); age > 0 && age < 150 {
			summary = fmt.Sprintf("%s (%d)", b.Name, age)
		}
		event.Props.SetText(ical.PropSummary, summary)

		dtStart := ical.NewProp(ical.PropDateTimeStart)
		dtStart.SetDate(next)
		event.Props.Set(dtStart)
		event.Props.Set(dtStamp)

		alarm := ical.NewComponent(ical.CompAlarm)
		alarm.Props.SetText(ical.PropAction, "DISPLAY")
		alarm.Props.SetText(ical.PropDescription, summary)
		trigger := ical.NewProp(ical.PropTrigger)
		trigger.Value = "-P1D"
		alarm.Props.Set(trigger)
		event.Children = append(event.Children, alarm)

		cal.Children = append(cal.Children, event.Component)
	}

	if len(cal.Children) == 0 {
		// An empty VCALENDAR without components is invalid; return the
		// minimal stub clients accept.
		return []byte("BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + icalProdID + "\r\nEND:VCALENDAR\r\n"), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}
