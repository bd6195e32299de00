package bootstrap

import (
	"fmt"
	"path/filepath"

	"BirthdayKeeper/internal/cli/repo"
	filestore "BirthdayKeeper/internal/cli/repo/file"
	"BirthdayKeeper/internal/cli/repo/fs"
	reposqlite "BirthdayKeeper/internal/cli/repo/sqlite"
	"BirthdayKeeper/internal/config"
)

// OpenBirthdayRepo opens the configured local store and returns
// (repo, cleanup, error). cleanup must be called when done to release
// the backing store.
func OpenBirthdayRepo(cfg *config.Config) (repo.BirthdayRepository, func() error, error) {
	switch cfg.StorageBackend {
	case "", "file":
		path := filepath.Join(cfg.DataPath, "birthdays.json")
		store, err := filestore.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open birthdays file: %w", err)
		}
		return store, func() error { return nil }, nil
	case "sqlite":
		// One DB file per user keeps accounts separated; pre-login
		// records land in the shared "local" store and are moved into
		// the user's store once an identity exists.
		login, _ := (fs.AuthFSStore{}).LoadLogin()
		r, _, err := reposqlite.OpenForUserAt(cfg.DataPath, login)
		if err != nil {
			return nil, nil, fmt.Errorf("open user db: %w", err)
		}
		if err := r.Migrate(); err != nil {
			_ = r.Close()
			return nil, nil, fmt.Errorf("migrate user db: %w", err)
		}
		if err := adoptLocalRecords(cfg.DataPath, login, r); err != nil {
			_ = r.Close()
			return nil, nil, fmt.Errorf("adopt pre-login records: %w", err)
		}
		return r, r.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend: %q (expected file|sqlite)", cfg.StorageBackend)
	}
}

// adoptLocalRecords moves records created before login from the shared
// "local" store into the user's store, then empties the local store so
// the move happens once. Sync ids are globally unique, so only numeric
// id collisions need resolving; OwnerID stays empty and is backfilled
// by the next reconciliation pass.
func adoptLocalRecords(base, login string, dst repo.BirthdayRepository) error {
	if login == "" || login == "local" {
		return nil
	}
	src, _, err := reposqlite.OpenForUserAt(base, "local")
	if err != nil {
		return err
	}
	defer func() {
		_ = src.Close()
	}()
	if err := src.Migrate(); err != nil {
		return err
	}
	pending, err := src.ListAll()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	existing, err := dst.ListAll()
	if err != nil {
		return err
	}
	usedIDs := make(map[int64]bool, len(existing))
	seen := make(map[string]bool, len(existing))
	for _, b := range existing {
		usedIDs[b.ID] = true
		seen[b.SyncID] = true
	}

	merged := existing
	for _, b := range pending {
		if seen[b.SyncID] {
			continue
		}
		for b.ID == 0 || usedIDs[b.ID] {
			b.ID++
		}
		usedIDs[b.ID] = true
		b.IsSynced = false // must be pushed under the new identity
		merged = append(merged, b)
	}
	if err := dst.ReplaceAll(merged); err != nil {
		return err
	}
	return src.ReplaceAll(nil)
}
