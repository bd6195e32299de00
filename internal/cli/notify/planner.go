package notify

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// reminderHour is the local hour at which the on-day reminder fires.
const reminderHour = 9

// Plan computes the reminders for the person's next birthday relative
// to now. Triggers already in the past are skipped.
func Plan(personName, date string, offsets []Offset, now time.Time) ([]Reminder, error) {
	birthDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	loc := now.Location()
	next := time.Date(now.Year(), birthDate.Month(), birthDate.Day(), reminderHour, 0, 0, 0, loc)
	if next.Before(now) {
		next = time.Date(now.Year()+1, birthDate.Month(), birthDate.Day(), reminderHour, 0, 0, 0, loc)
	}

	var reminders []Reminder
	for _, off := range offsets {
		trigger := next
		var title, body string
		switch off {
		case OneWeekBefore:
			trigger = trigger.AddDate(0, 0, -7)
			title = "Birthday in 1 week!"
			body = fmt.Sprintf("%s's birthday is coming up in one week!", personName)
		case OneDayBefore:
			trigger = trigger.AddDate(0, 0, -1)
			title = "Birthday tomorrow!"
			body = fmt.Sprintf("Don't forget! %s's birthday is tomorrow!", personName)
		case OneHourBefore:
			trigger = trigger.Add(-time.Hour)
			title = "Birthday in 1 hour!"
			body = fmt.Sprintf("%s's birthday is in one hour!", personName)
		case OnBirthday:
			title = "Happy Birthday!"
			body = fmt.Sprintf("Today is %s's birthday!", personName)
		default:
			return nil, fmt.Errorf("unknown reminder offset: %q", off)
		}
		if trigger.Before(now) {
			continue
		}
		reminders = append(reminders, Reminder{
			Handle:     uuid.NewString(),
			PersonName: personName,
			Offset:     off,
			TriggerAt:  trigger,
			Title:      title,
			Body:       body,
		})
	}
	return reminders, nil
}
