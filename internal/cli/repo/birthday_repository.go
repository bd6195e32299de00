package repo

import (
	"errors"

	"BirthdayKeeper/internal/cli/model"
)

// ErrNotFound is returned when an update or soft delete names an id
// absent from the local store.
var ErrNotFound = errors.New("birthday not found")

// BirthdayRepository is the port to the local birthday store. It is the
// single source of truth for what the UI reads and is always available:
// no method ever touches the network.
type BirthdayRepository interface {
	// ListActive returns all records with IsDeleted == false, in storage order.
	ListActive() ([]model.Birthday, error)

	// ListAll returns every record including tombstones. Used only by
	// reconciliation and dirty tracking.
	ListAll() ([]model.Birthday, error)

	// Insert assigns a timestamp-derived ID and a fresh SyncID, stamps
	// CreatedAt/UpdatedAt and marks the record unsynced. Returns the
	// created record.
	Insert(b model.Birthday) (model.Birthday, error)

	// Update replaces the record matching b.ID, stamps UpdatedAt and
	// marks it unsynced. Returns ErrNotFound if the id is absent.
	Update(b model.Birthday) (model.Birthday, error)

	// SoftDelete tombstones the record: IsDeleted = true, unsynced,
	// UpdatedAt stamped. The row is kept until reconciliation confirms
	// the remote deletion. Returns ErrNotFound if the id is absent.
	SoftDelete(id int64) error

	// ListUnsynced returns all records (deleted or not) with IsSynced == false.
	ListUnsynced() ([]model.Birthday, error)

	// ReplaceAll atomically overwrites the entire collection. Used
	// exclusively by the reconciliation merge to commit its result.
	ReplaceAll(records []model.Birthday) error

	// HasUnsyncedChanges reports whether any record awaits upload.
	HasUnsyncedChanges() (bool, error)
}
