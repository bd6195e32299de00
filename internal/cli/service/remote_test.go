package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"BirthdayKeeper/internal/cli/api"
	"BirthdayKeeper/internal/cli/model"
	"BirthdayKeeper/internal/config"
)

type stubTokens struct{ token string }

func (s stubTokens) Save(string) error     { return nil }
func (s stubTokens) Load() (string, error) { return s.token, nil }
func (s stubTokens) Clear() error          { return nil }

func newRemoteFixture(t *testing.T, handler http.Handler) *RemoteStoreHTTP {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := &config.Config{ServerURL: srv.URL}
	return NewRemoteStoreHTTP(cfg, stubTokens{token: "tok-123"})
}

func TestRemoteStoreHTTP_List(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/birthdays", r.URL.Path)
		c, err := r.Cookie(api.AuthCookieName)
		if assert.NoError(t, err) {
			assert.Equal(t, "tok-123", c.Value)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]birthdayDTO{{
			ID: 42, SyncID: "s-1", Name: "Alice", Date: "1990-05-17",
			CreatedAt: now.Format(time.RFC3339Nano),
			UpdatedAt: now.Format(time.RFC3339Nano),
		}})
	})
	remote := newRemoteFixture(t, handler)

	records, err := remote.List(context.Background(), "alice")
	assert.NoError(t, err)
	if assert.Len(t, records, 1) {
		assert.Equal(t, "s-1", records[0].SyncID)
		assert.Equal(t, "alice", records[0].OwnerID, "owner is stamped by the caller")
		assert.True(t, now.Equal(records[0].UpdatedAt))
	}
}

func TestRemoteStoreHTTP_UpsertMany(t *testing.T) {
	var got []birthdayDTO
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/birthdays/batch", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	})
	remote := newRemoteFixture(t, handler)

	now := time.Now().UTC()
	err := remote.UpsertMany(context.Background(), []model.Birthday{{
		ID: 1, SyncID: "s-1", Name: "Alice", Date: "1990-05-17",
		CreatedAt: now, UpdatedAt: now,
		IsSynced: true, // local flags never cross the wire
	}})
	assert.NoError(t, err)
	if assert.Len(t, got, 1) {
		assert.Equal(t, "s-1", got[0].SyncID)
	}

	// Empty batch is a no-op without a request.
	assert.NoError(t, remote.UpsertMany(context.Background(), nil))
}

func TestRemoteStoreHTTP_DeleteMany(t *testing.T) {
	var got []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/birthdays/delete", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	})
	remote := newRemoteFixture(t, handler)

	assert.NoError(t, remote.DeleteMany(context.Background(), []string{"s-1", "s-2"}))
	assert.Equal(t, []string{"s-1", "s-2"}, got)

	assert.NoError(t, remote.DeleteMany(context.Background(), nil))
}

func TestRemoteStoreHTTP_ServerErrorSurfaces(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	remote := newRemoteFixture(t, handler)

	_, err := remote.List(context.Background(), "alice")
	assert.Error(t, err)
	assert.Error(t, remote.UpsertMany(context.Background(), []model.Birthday{{SyncID: "s"}}))
	assert.Error(t, remote.DeleteMany(context.Background(), []string{"s"}))
}
