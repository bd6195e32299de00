// Package notify plans and tracks local birthday reminders. It is the
// notification collaborator of the aggregate service: the core only
// asks it to schedule reminders for a person or cancel them all.
package notify

import "time"

// Offset identifies how far ahead of the birthday a reminder fires.
type Offset string

const (
	OnBirthday    Offset = "on_birthday"
	OneHourBefore Offset = "one_hour"
	OneDayBefore  Offset = "one_day"
	OneWeekBefore Offset = "one_week"
)

// Reminder is one planned notification.
type Reminder struct {
	Handle     string
	PersonName string
	Offset     Offset
	TriggerAt  time.Time
	Title      string
	Body       string
}

// Notifier accepts schedule/cancel requests keyed by person name. The
// aggregate service never inspects the returned handles.
type Notifier interface {
	// Schedule plans reminders for the person's next birthday and
	// returns the created handles.
	Schedule(personName, date string, offsets []Offset) ([]string, error)

	// CancelAll drops every pending reminder for the person.
	CancelAll(personName string) error
}
