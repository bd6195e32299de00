package model

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the normalized storage form of a birth date.
// Only month and day are guaranteed meaningful for recurrence;
// the year may be approximate.
const DateLayout = "2006-01-02"

// Group is the enumerated tag attached to a birthday record.
type Group string

const (
	GroupFamily Group = "family"
	GroupFriend Group = "friend"
	GroupWork   Group = "work"
	GroupOther  Group = "other"
)

// ValidGroup reports whether g is one of the known tags or empty.
func ValidGroup(g Group) bool {
	switch g {
	case "", GroupFamily, GroupFriend, GroupWork, GroupOther:
		return true
	}
	return false
}

// Birthday - base birthday record model.
//
// ID is a timestamp-derived local identifier; it is never renumbered.
// SyncID is the client-generated correlation key that joins local and
// remote rows, so the numeric ID does not have to be shared between
// identifier spaces.
type Birthday struct {
	ID                 int64     `json:"id"`
	SyncID             string    `json:"sync_id"`
	OwnerID            string    `json:"owner_id,omitempty"` // empty for pre-login records
	Name               string    `json:"name"`
	Date               string    `json:"date"` // YYYY-MM-DD
	Note               string    `json:"note,omitempty"`
	Group              Group     `json:"group,omitempty"`
	LinkedContactID    string    `json:"linked_contact_id,omitempty"`
	ContactPhoneNumber string    `json:"contact_phone_number,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"` // authority for conflict resolution
	IsSynced           bool      `json:"is_synced"`
	IsDeleted          bool      `json:"is_deleted"`

	// Derived fields, computed on read and never persisted.
	Age      int `json:"age,omitempty"`
	DaysLeft int `json:"days_left,omitempty"`
}

// NormalizeDate parses a date string in a few tolerated forms and
// returns it in the canonical YYYY-MM-DD layout.
func NormalizeDate(s string) (string, error) {
	if s == "" {
		return "", errors.New("date is required")
	}
	for _, layout := range []string{DateLayout, time.RFC3339, "2006/01/02", "02.01.2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout), nil
		}
	}
	return "", fmt.Errorf("invalid date: %q (expected YYYY-MM-DD)", s)
}

// BirthDate returns the parsed calendar date of birth.
func (b Birthday) BirthDate() (time.Time, error) {
	return time.Parse(DateLayout, b.Date)
}

// Validate checks the fields a caller is allowed to set.
func (b Birthday) Validate() error {
	if b.Name == "" {
		return errors.New("name is required")
	}
	if _, err := time.Parse(DateLayout, b.Date); err != nil {
		return fmt.Errorf("invalid date: %q (expected YYYY-MM-DD)", b.Date)
	}
	if !ValidGroup(b.Group) {
		return fmt.Errorf("unknown group: %q (expected: family|friend|work|other)", b.Group)
	}
	return nil
}
