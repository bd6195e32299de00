package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"BirthdayKeeper/internal/cli/model"
	"BirthdayKeeper/internal/cli/repo"
)

// BirthdayFileStore keeps the whole collection as a single JSON array
// in one file, the way the mobile app keeps it under one storage key.
// Every mutation is a read-modify-write of the full collection guarded
// by a mutex, committed via temp file + rename.
type BirthdayFileStore struct {
	mu      sync.Mutex
	path    string
	records []model.Birthday
	loaded  bool
}

var _ repo.BirthdayRepository = (*BirthdayFileStore)(nil)

// DefaultPath returns the per-user location of the birthdays file.
// The base directory can be overridden via BIRTHDAYS_DATA_PATH.
func DefaultPath() (string, error) {
	base := os.Getenv("BIRTHDAYS_DATA_PATH")
	if base == "" {
		cfgDir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(cfgDir, "BirthdayKeeper")
	}
	if err := os.MkdirAll(base, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(base, "birthdays.json"), nil
}

// Open creates a store backed by the given file. The file does not have
// to exist yet; a missing file reads as an empty collection.
func Open(path string) (*BirthdayFileStore, error) {
	if path == "" {
		return nil, errors.New("empty birthdays file path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	return &BirthdayFileStore{path: path}, nil
}

// load reads the collection from disk once. A corrupted file is
// surfaced as an error; callers fall back to an empty list.
func (s *BirthdayFileStore) load() error {
	if s.loaded {
		return nil
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.records = nil
			s.loaded = true
			return nil
		}
		return fmt.Errorf("read birthdays file: %w", err)
	}
	var records []model.Birthday
	if len(b) > 0 {
		if err := json.Unmarshal(b, &records); err != nil {
			s.records = nil
			s.loaded = true
			return fmt.Errorf("corrupted birthdays file %s: %w", s.path, err)
		}
	}
	s.records = records
	s.loaded = true
	return nil
}

// persist writes the full collection and swaps it in atomically.
func (s *BirthdayFileStore) persist(records []model.Birthday) error {
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return err
	}
	s.records = records
	s.loaded = true
	return nil
}

func (s *BirthdayFileStore) ListActive() ([]model.Birthday, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.load()
	var res []model.Birthday
	for _, b := range s.records {
		if !b.IsDeleted {
			res = append(res, b)
		}
	}
	return res, err
}

func (s *BirthdayFileStore) ListAll() ([]model.Birthday, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.load()
	res := make([]model.Birthday, len(s.records))
	copy(res, s.records)
	return res, err
}

func (s *BirthdayFileStore) Insert(b model.Birthday) (model.Birthday, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return model.Birthday{}, err
	}
	now := time.Now().UTC()
	b.ID = s.nextID(now)
	b.SyncID = uuid.NewString()
	b.CreatedAt = now
	b.UpdatedAt = now
	b.IsSynced = false
	b.IsDeleted = false
	updated := append(append([]model.Birthday(nil), s.records...), b)
	if err := s.persist(updated); err != nil {
		return model.Birthday{}, err
	}
	return b, nil
}

// nextID derives a local placeholder id from the current time,
// bumped past any existing id to stay unique within the store.
func (s *BirthdayFileStore) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	for {
		taken := false
		for _, b := range s.records {
			if b.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
		id++
	}
}

func (s *BirthdayFileStore) Update(b model.Birthday) (model.Birthday, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return model.Birthday{}, err
	}
	updated := make([]model.Birthday, len(s.records))
	copy(updated, s.records)
	for i, cur := range updated {
		if cur.ID != b.ID {
			continue
		}
		b.SyncID = cur.SyncID
		b.CreatedAt = cur.CreatedAt
		b.UpdatedAt = time.Now().UTC()
		b.IsSynced = false
		b.IsDeleted = cur.IsDeleted
		updated[i] = b
		if err := s.persist(updated); err != nil {
			return model.Birthday{}, err
		}
		return b, nil
	}
	return model.Birthday{}, repo.ErrNotFound
}

func (s *BirthdayFileStore) SoftDelete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}
	updated := make([]model.Birthday, len(s.records))
	copy(updated, s.records)
	for i, cur := range updated {
		if cur.ID != id {
			continue
		}
		cur.IsDeleted = true
		cur.IsSynced = false
		cur.UpdatedAt = time.Now().UTC()
		updated[i] = cur
		return s.persist(updated)
	}
	return repo.ErrNotFound
}

func (s *BirthdayFileStore) ListUnsynced() ([]model.Birthday, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.load()
	var res []model.Birthday
	for _, b := range s.records {
		if !b.IsSynced {
			res = append(res, b)
		}
	}
	return res, err
}

func (s *BirthdayFileStore) ReplaceAll(records []model.Birthday) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}
	return s.persist(append([]model.Birthday(nil), records...))
}

func (s *BirthdayFileStore) HasUnsyncedChanges() (bool, error) {
	unsynced, err := s.ListUnsynced()
	if err != nil {
		return false, err
	}
	return len(unsynced) > 0, nil
}
