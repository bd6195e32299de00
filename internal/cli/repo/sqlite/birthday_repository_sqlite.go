package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"BirthdayKeeper/internal/cli/model"
	"BirthdayKeeper/internal/cli/repo"
)

// BirthdayRepositorySQLite is the SQLite-backed local store (one DB
// file per user). It implements the same whole-collection semantics as
// the file store, with ReplaceAll running in a transaction.
type BirthdayRepositorySQLite struct {
	db *sql.DB
}

var _ repo.BirthdayRepository = (*BirthdayRepositorySQLite)(nil)

const timeLayout = time.RFC3339Nano

// OpenForUser opens (and creates if needed) the DB file for the given
// login and returns the repository plus the DB path. The base directory
// can be overridden via BIRTHDAYS_DATA_PATH.
func OpenForUser(login string) (*BirthdayRepositorySQLite, string, error) {
	return OpenForUserAt("", login)
}

// OpenForUserAt is OpenForUser with an explicit base data directory.
func OpenForUserAt(base, login string) (*BirthdayRepositorySQLite, string, error) {
	if login == "" {
		login = "local"
	}
	if base == "" {
		base = os.Getenv("BIRTHDAYS_DATA_PATH")
	}
	if base == "" {
		cfgDir, err := os.UserConfigDir()
		if err != nil {
			return nil, "", err
		}
		base = filepath.Join(cfgDir, "BirthdayKeeper")
	}
	dir := filepath.Join(base, "users", login)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, "", err
	}
	dbPath := filepath.Join(dir, "birthdays.sqlite")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, "", err
	}
	return &BirthdayRepositorySQLite{db: db}, dbPath, nil
}

// Close closes the underlying DB.
func (r *BirthdayRepositorySQLite) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Migrate ensures the required tables and indexes exist.
func (r *BirthdayRepositorySQLite) Migrate() error {
	_, err := r.db.Exec(initialDDL())
	return err
}

const selectCols = `id, sync_id, owner_id, name, date, note, grp,
 linked_contact_id, contact_phone_number, created_at, updated_at, is_synced, is_deleted`

func scanBirthday(scan func(...any) error) (model.Birthday, error) {
	var b model.Birthday
	var createdAt, updatedAt string
	var syncedInt, deletedInt int
	var grp string
	err := scan(&b.ID, &b.SyncID, &b.OwnerID, &b.Name, &b.Date, &b.Note, &grp,
		&b.LinkedContactID, &b.ContactPhoneNumber, &createdAt, &updatedAt, &syncedInt, &deletedInt)
	if err != nil {
		return model.Birthday{}, err
	}
	b.Group = model.Group(grp)
	b.IsSynced = syncedInt != 0
	b.IsDeleted = deletedInt != 0
	if b.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return model.Birthday{}, fmt.Errorf("bad created_at %q: %w", createdAt, err)
	}
	if b.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return model.Birthday{}, fmt.Errorf("bad updated_at %q: %w", updatedAt, err)
	}
	return b, nil
}

func (r *BirthdayRepositorySQLite) list(where string, args ...any) ([]model.Birthday, error) {
	q := `SELECT ` + selectCols + ` FROM birthdays` + where + ` ORDER BY rowid`
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []model.Birthday
	for rows.Next() {
		b, err := scanBirthday(rows.Scan)
		if err != nil {
			return nil, err
		}
		res = append(res, b)
	}
	return res, rows.Err()
}

func (r *BirthdayRepositorySQLite) ListActive() ([]model.Birthday, error) {
	return r.list(` WHERE is_deleted = 0`)
}

func (r *BirthdayRepositorySQLite) ListAll() ([]model.Birthday, error) {
	return r.list(``)
}

func (r *BirthdayRepositorySQLite) ListUnsynced() ([]model.Birthday, error) {
	return r.list(` WHERE is_synced = 0`)
}

func (r *BirthdayRepositorySQLite) insertStmt(tx interface {
	Exec(string, ...any) (sql.Result, error)
}, b model.Birthday) error {
	_, err := tx.Exec(`INSERT INTO birthdays(
        id, sync_id, owner_id, name, date, note, grp,
        linked_contact_id, contact_phone_number, created_at, updated_at, is_synced, is_deleted
    ) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.SyncID, b.OwnerID, b.Name, b.Date, b.Note, string(b.Group),
		b.LinkedContactID, b.ContactPhoneNumber,
		b.CreatedAt.Format(timeLayout), b.UpdatedAt.Format(timeLayout),
		boolInt(b.IsSynced), boolInt(b.IsDeleted))
	return err
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func (r *BirthdayRepositorySQLite) Insert(b model.Birthday) (model.Birthday, error) {
	now := time.Now().UTC()
	b.SyncID = uuid.NewString()
	b.CreatedAt = now
	b.UpdatedAt = now
	b.IsSynced = false
	b.IsDeleted = false
	b.ID = now.UnixMilli()
	// Bump past an occupied timestamp slot; adds are rare enough that
	// a retry loop is all this needs.
	for {
		var exists int
		err := r.db.QueryRow(`SELECT COUNT(1) FROM birthdays WHERE id = ?`, b.ID).Scan(&exists)
		if err != nil {
			return model.Birthday{}, err
		}
		if exists == 0 {
			break
		}
		b.ID++
	}
	if err := r.insertStmt(r.db, b); err != nil {
		return model.Birthday{}, err
	}
	return b, nil
}

func (r *BirthdayRepositorySQLite) Update(b model.Birthday) (model.Birthday, error) {
	cur, err := r.getByID(b.ID)
	if err != nil {
		return model.Birthday{}, err
	}
	b.SyncID = cur.SyncID
	b.CreatedAt = cur.CreatedAt
	b.IsDeleted = cur.IsDeleted
	b.UpdatedAt = time.Now().UTC()
	b.IsSynced = false
	_, err = r.db.Exec(`UPDATE birthdays SET owner_id = ?, name = ?, date = ?, note = ?, grp = ?,
        linked_contact_id = ?, contact_phone_number = ?, updated_at = ?, is_synced = 0
        WHERE id = ?`,
		b.OwnerID, b.Name, b.Date, b.Note, string(b.Group),
		b.LinkedContactID, b.ContactPhoneNumber, b.UpdatedAt.Format(timeLayout), b.ID)
	if err != nil {
		return model.Birthday{}, err
	}
	return b, nil
}

func (r *BirthdayRepositorySQLite) getByID(id int64) (model.Birthday, error) {
	row := r.db.QueryRow(`SELECT `+selectCols+` FROM birthdays WHERE id = ?`, id)
	b, err := scanBirthday(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Birthday{}, repo.ErrNotFound
	}
	return b, err
}

func (r *BirthdayRepositorySQLite) SoftDelete(id int64) error {
	now := time.Now().UTC().Format(timeLayout)
	res, err := r.db.Exec(`UPDATE birthdays SET is_deleted = 1, is_synced = 0, updated_at = ? WHERE id = ?`, now, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *BirthdayRepositorySQLite) ReplaceAll(records []model.Birthday) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()
	if _, err := tx.Exec(`DELETE FROM birthdays`); err != nil {
		return err
	}
	for _, b := range records {
		if err := r.insertStmt(tx, b); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *BirthdayRepositorySQLite) HasUnsyncedChanges() (bool, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(1) FROM birthdays WHERE is_synced = 0`).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}
