package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"BirthdayKeeper/internal/cli/model"
	"BirthdayKeeper/internal/cli/repo"
)

func newTestStore(t *testing.T) *BirthdayFileStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "birthdays.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func TestFileStore_InsertAssignsIdentifiers(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Insert(model.Birthday{Name: "Alice", Date: "1990-05-17"})
	assert.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.NotEmpty(t, created.SyncID)
	assert.False(t, created.IsSynced)
	assert.False(t, created.IsDeleted)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	second, err := s.Insert(model.Birthday{Name: "Bob", Date: "1985-01-02"})
	assert.NoError(t, err)
	assert.NotEqual(t, created.ID, second.ID)
	assert.NotEqual(t, created.SyncID, second.SyncID)
}

func TestFileStore_UpdatePreservesIdentity(t *testing.T) {
	s := newTestStore(t)
	created, err := s.Insert(model.Birthday{Name: "Alice", Date: "1990-05-17"})
	assert.NoError(t, err)

	created.Name = "Alice B."
	// A caller cannot smuggle in a different join key.
	created.SyncID = "forged"
	updated, err := s.Update(created)
	assert.NoError(t, err)
	assert.Equal(t, "Alice B.", updated.Name)
	assert.NotEqual(t, "forged", updated.SyncID)
	assert.False(t, updated.IsSynced)
	assert.True(t, !updated.UpdatedAt.Before(created.CreatedAt))

	_, err = s.Update(model.Birthday{ID: 999, Name: "ghost", Date: "2000-01-01"})
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestFileStore_SoftDeleteKeepsTombstone(t *testing.T) {
	s := newTestStore(t)
	created, err := s.Insert(model.Birthday{Name: "Alice", Date: "1990-05-17"})
	assert.NoError(t, err)

	assert.NoError(t, s.SoftDelete(created.ID))
	assert.ErrorIs(t, s.SoftDelete(12345), repo.ErrNotFound)

	active, err := s.ListActive()
	assert.NoError(t, err)
	assert.Empty(t, active)

	all, err := s.ListAll()
	assert.NoError(t, err)
	if assert.Len(t, all, 1) {
		assert.True(t, all[0].IsDeleted)
		assert.False(t, all[0].IsSynced)
	}
}

func TestFileStore_UnsyncedTracking(t *testing.T) {
	s := newTestStore(t)
	created, err := s.Insert(model.Birthday{Name: "Alice", Date: "1990-05-17"})
	assert.NoError(t, err)

	pending, err := s.HasUnsyncedChanges()
	assert.NoError(t, err)
	assert.True(t, pending)

	// Simulate a completed sync pass.
	created.IsSynced = true
	assert.NoError(t, s.ReplaceAll([]model.Birthday{created}))

	pending, err = s.HasUnsyncedChanges()
	assert.NoError(t, err)
	assert.False(t, pending)

	unsynced, err := s.ListUnsynced()
	assert.NoError(t, err)
	assert.Empty(t, unsynced)
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "birthdays.json")
	s, err := Open(path)
	assert.NoError(t, err)
	created, err := s.Insert(model.Birthday{Name: "Alice", Date: "1990-05-17"})
	assert.NoError(t, err)

	reopened, err := Open(path)
	assert.NoError(t, err)
	all, err := reopened.ListAll()
	assert.NoError(t, err)
	if assert.Len(t, all, 1) {
		assert.Equal(t, created.SyncID, all[0].SyncID)
		assert.Equal(t, "Alice", all[0].Name)
	}
}

func TestFileStore_CorruptFileSurfacesError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "birthdays.json")
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := Open(path)
	assert.NoError(t, err)
	records, err := s.ListActive()
	assert.Error(t, err)
	assert.Empty(t, records) // empty fallback, not a crash
}

func TestFileStore_MissingFileReadsEmpty(t *testing.T) {
	s := newTestStore(t)
	records, err := s.ListActive()
	assert.NoError(t, err)
	assert.Empty(t, records)
}
