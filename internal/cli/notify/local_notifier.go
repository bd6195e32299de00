package notify

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// LocalNotifier keeps the planned reminders in memory, keyed by person
// name. It stands in for the device notification scheduler: the CLI has
// no OS-level delivery, but the schedule itself is fully observable.
type LocalNotifier struct {
	log *zap.SugaredLogger
	now func() time.Time

	mu        sync.Mutex
	reminders map[string][]Reminder // person name -> pending reminders
}

var _ Notifier = (*LocalNotifier)(nil)

// NewLocalNotifier builds the in-memory scheduler. now may be nil, in
// which case time.Now is used.
func NewLocalNotifier(log *zap.SugaredLogger, now func() time.Time) *LocalNotifier {
	if now == nil {
		now = time.Now
	}
	return &LocalNotifier{log: log, now: now, reminders: make(map[string][]Reminder)}
}

func (n *LocalNotifier) Schedule(personName, date string, offsets []Offset) ([]string, error) {
	planned, err := Plan(personName, date, offsets, n.now())
	if err != nil {
		return nil, err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	handles := make([]string, 0, len(planned))
	for _, rem := range planned {
		handles = append(handles, rem.Handle)
		n.log.Debugw("scheduled reminder",
			"person", rem.PersonName, "offset", rem.Offset, "at", rem.TriggerAt)
	}
	n.reminders[personName] = append(n.reminders[personName], planned...)
	return handles, nil
}

func (n *LocalNotifier) CancelAll(personName string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.reminders, personName)
	return nil
}

// Pending returns the reminders currently scheduled for the person.
func (n *LocalNotifier) Pending(personName string) []Reminder {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Reminder(nil), n.reminders[personName]...)
}
