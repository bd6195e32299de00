package service

import (
	"time"

	"BirthdayKeeper/internal/cli/model"
)

// NextOccurrence returns the date of the next birthday relative to
// now: this year's occurrence if it has not passed yet, otherwise next
// year's. Times are midnight in now's location.
func NextOccurrence(now, birthDate time.Time) time.Time {
	loc := now.Location()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	candidate := time.Date(now.Year(), birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	if candidate.Before(todayStart) {
		candidate = time.Date(now.Year()+1, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	}
	return candidate
}

// WithDerived fills in Age and DaysLeft. Age counts full years since
// birth, decremented when this year's occurrence is still ahead;
// DaysLeft is 0 on the day itself.
func WithDerived(b model.Birthday, now time.Time) model.Birthday {
	birthDate, err := b.BirthDate()
	if err != nil {
		return b // unparseable date: leave derived fields zero
	}

	age := now.Year() - birthDate.Year()
	if int(now.Month()) < int(birthDate.Month()) ||
		(now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		age--
	}
	b.Age = age

	loc := now.Location()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	next := NextOccurrence(now, birthDate)
	// Rounding absorbs DST shifts between the two midnights.
	b.DaysLeft = int((next.Sub(todayStart).Hours() + 12) / 24)
	return b
}

// IsToday reports whether the record's month and day match now.
func IsToday(b model.Birthday, now time.Time) bool {
	birthDate, err := b.BirthDate()
	if err != nil {
		return false
	}
	return birthDate.Month() == now.Month() && birthDate.Day() == now.Day()
}
