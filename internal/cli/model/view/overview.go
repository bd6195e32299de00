package view

import "BirthdayKeeper/internal/cli/model"

// Overview is the DTO handed to the presentation layer: active records
// with derived fields filled in, partitioned into today's birthdays and
// the rest sorted by days left.
type Overview struct {
	Today    []model.Birthday
	Upcoming []model.Birthday

	// HasUnsyncedChanges lets the UI show a "pending sync" badge.
	HasUnsyncedChanges bool
}
