package repo

import (
	"path/filepath"
	"testing"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"BirthdayKeeper/internal/model"
)

// newTestDB opens an isolated SQLite database (modernc.org/sqlite) for
// repository tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: filepath.Join(t.TempDir(), "test.sqlite")}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Birthday{}); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	return db
}
