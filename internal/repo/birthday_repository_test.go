package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"BirthdayKeeper/internal/model"
)

func record(syncID, name string, updatedAt time.Time) model.Birthday {
	return model.Birthday{
		SyncID:    syncID,
		ClientID:  1,
		Name:      name,
		Date:      "1990-05-17",
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	}
}

func TestBirthdayRepository_UpsertAndList(t *testing.T) {
	db := newTestDB(t)
	r := NewBirthdayRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	err := r.UpsertMany(ctx, 1, []model.Birthday{
		record("s-1", "Alice", now),
		record("s-2", "Bob", now),
	})
	assert.NoError(t, err)

	rows, err := r.ListByUser(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, int64(1), row.UserID)
	}

	// Re-upserting the same sync id overwrites instead of duplicating.
	updated := record("s-1", "Alice Updated", now.Add(time.Minute))
	assert.NoError(t, r.UpsertMany(ctx, 1, []model.Birthday{updated}))

	rows, err = r.ListByUser(ctx, 1)
	assert.NoError(t, err)
	if assert.Len(t, rows, 2) {
		byID := map[string]model.Birthday{}
		for _, row := range rows {
			byID[row.SyncID] = row
		}
		assert.Equal(t, "Alice Updated", byID["s-1"].Name)
		assert.True(t, byID["s-1"].UpdatedAt.Equal(now.Add(time.Minute)))
	}
}

// A lagging device pushing a stale revision must not clobber a newer
// one already on the server, regardless of push order.
func TestBirthdayRepository_UpsertStaleRevisionLoses(t *testing.T) {
	db := newTestDB(t)
	r := NewBirthdayRepository(db)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	newer := record("s-1", "Newer Name", base.Add(time.Hour))
	stale := record("s-1", "Stale Name", base)

	assert.NoError(t, r.UpsertMany(ctx, 1, []model.Birthday{newer}))
	assert.NoError(t, r.UpsertMany(ctx, 1, []model.Birthday{stale}))

	rows, err := r.ListByUser(ctx, 1)
	assert.NoError(t, err)
	if assert.Len(t, rows, 1) {
		assert.Equal(t, "Newer Name", rows[0].Name)
		assert.True(t, rows[0].UpdatedAt.Equal(base.Add(time.Hour)))
	}

	// An equal timestamp is not an update either; only strictly newer wins.
	tied := record("s-1", "Tied Name", base.Add(time.Hour))
	assert.NoError(t, r.UpsertMany(ctx, 1, []model.Birthday{tied}))
	rows, _ = r.ListByUser(ctx, 1)
	if assert.Len(t, rows, 1) {
		assert.Equal(t, "Newer Name", rows[0].Name)
	}

	// A strictly newer revision still applies.
	newest := record("s-1", "Newest Name", base.Add(2*time.Hour))
	assert.NoError(t, r.UpsertMany(ctx, 1, []model.Birthday{newest}))
	rows, _ = r.ListByUser(ctx, 1)
	if assert.Len(t, rows, 1) {
		assert.Equal(t, "Newest Name", rows[0].Name)
		assert.True(t, rows[0].UpdatedAt.Equal(base.Add(2*time.Hour)))
	}
}

func TestBirthdayRepository_ScopedToUser(t *testing.T) {
	db := newTestDB(t)
	r := NewBirthdayRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	assert.NoError(t, r.UpsertMany(ctx, 1, []model.Birthday{record("s-1", "Alice", now)}))
	assert.NoError(t, r.UpsertMany(ctx, 2, []model.Birthday{record("s-2", "Bob", now)}))

	rows, err := r.ListByUser(ctx, 1)
	assert.NoError(t, err)
	if assert.Len(t, rows, 1) {
		assert.Equal(t, "Alice", rows[0].Name)
	}

	// Deleting with the wrong user must not touch the row.
	assert.NoError(t, r.DeleteMany(ctx, 2, []string{"s-1"}))
	rows, _ = r.ListByUser(ctx, 1)
	assert.Len(t, rows, 1)
}

func TestBirthdayRepository_DeleteMany(t *testing.T) {
	db := newTestDB(t)
	r := NewBirthdayRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	assert.NoError(t, r.UpsertMany(ctx, 1, []model.Birthday{
		record("s-1", "Alice", now),
		record("s-2", "Bob", now),
	}))

	// Unknown ids in the batch are ignored.
	assert.NoError(t, r.DeleteMany(ctx, 1, []string{"s-1", "s-unknown"}))

	rows, err := r.ListByUser(ctx, 1)
	assert.NoError(t, err)
	if assert.Len(t, rows, 1) {
		assert.Equal(t, "s-2", rows[0].SyncID)
	}

	assert.NoError(t, r.DeleteMany(ctx, 1, nil), "empty batch is a no-op")
}
