package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"BirthdayKeeper/internal/config"
	"BirthdayKeeper/internal/handlers"
	"BirthdayKeeper/internal/model"
	"BirthdayKeeper/internal/repo"
	"BirthdayKeeper/internal/service"
)

// newStackRouter wires the router over a real database so conflict
// resolution is exercised end to end instead of through mocks.
func newStackRouter(t *testing.T) http.Handler {
	t.Helper()
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: filepath.Join(t.TempDir(), "test.sqlite")}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Birthday{}); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	cfg := &config.Config{AuthSecret: "test-secret"}
	h := handlers.NewHandler(
		service.NewUserService(repo.NewUserRepository(db)),
		service.NewBirthdayService(repo.NewBirthdayRepository(db)),
		zap.NewNop().Sugar(),
		cfg,
	)
	return h.Router
}

// Two devices edit the same record: device 1 syncs its newer edit
// first, device 2 comes online later and pushes an older offline edit.
// The server must keep device 1's revision, so device 2 pulls it back
// instead of resurrecting the stale one.
func TestBirthdays_TwoDeviceConflictKeepsNewerRevision(t *testing.T) {
	router := newStackRouter(t)
	base := time.Now().UTC().Truncate(time.Second)

	push := func(name string, updatedAt time.Time) int {
		body, _ := json.Marshal([]wireBirthday{{
			ID: 1, SyncID: "s-1", Name: name, Date: "1990-05-17",
			CreatedAt: base.Format(time.RFC3339Nano),
			UpdatedAt: updatedAt.Format(time.RFC3339Nano),
		}})
		req := httptest.NewRequest(http.MethodPost, "/api/birthdays/batch", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		addAuthCookie(t, req, 7, "test-secret")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, push("Device1 Newer", base.Add(time.Hour)))
	assert.Equal(t, http.StatusOK, push("Device2 Older", base))

	req := httptest.NewRequest(http.MethodGet, "/api/birthdays", nil)
	addAuthCookie(t, req, 7, "test-secret")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var got []wireBirthday
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	if assert.Len(t, got, 1) {
		assert.Equal(t, "Device1 Newer", got[0].Name)
		assert.Equal(t, base.Add(time.Hour).Format(time.RFC3339Nano), got[0].UpdatedAt)
	}
}
