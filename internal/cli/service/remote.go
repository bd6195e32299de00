package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"BirthdayKeeper/internal/cli/api"
	"BirthdayKeeper/internal/cli/model"
	"BirthdayKeeper/internal/cli/repo"
	"BirthdayKeeper/internal/config"
)

// RemoteStore is the thin adapter performing bulk operations against
// the backend on behalf of the owning identity. Calls either succeed or
// fail with a transport/auth error the reconciler treats as "retry on
// the next trigger" - never fatal.
type RemoteStore interface {
	// List returns the full remote collection of the owner.
	List(ctx context.Context, ownerID string) ([]model.Birthday, error)

	// UpsertMany pushes records keyed by their sync id. Idempotent:
	// repeating a record produces one logical row.
	UpsertMany(ctx context.Context, records []model.Birthday) error

	// DeleteMany removes records by sync id.
	DeleteMany(ctx context.Context, syncIDs []string) error
}

// birthdayDTO is the wire form of a record. Timestamps travel as
// RFC 3339 strings; local-only sync flags never cross the wire.
type birthdayDTO struct {
	ID                 int64  `json:"id"`
	SyncID             string `json:"sync_id"`
	OwnerID            string `json:"owner_id,omitempty"`
	Name               string `json:"name"`
	Date               string `json:"date"`
	Note               string `json:"note,omitempty"`
	Group              string `json:"group,omitempty"`
	LinkedContactID    string `json:"linked_contact_id,omitempty"`
	ContactPhoneNumber string `json:"contact_phone_number,omitempty"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
}

func toDTO(b model.Birthday) birthdayDTO {
	return birthdayDTO{
		ID:                 b.ID,
		SyncID:             b.SyncID,
		OwnerID:            b.OwnerID,
		Name:               b.Name,
		Date:               b.Date,
		Note:               b.Note,
		Group:              string(b.Group),
		LinkedContactID:    b.LinkedContactID,
		ContactPhoneNumber: b.ContactPhoneNumber,
		CreatedAt:          b.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:          b.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromDTO(d birthdayDTO) (model.Birthday, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, d.CreatedAt)
	if err != nil {
		return model.Birthday{}, fmt.Errorf("bad created_at %q: %w", d.CreatedAt, err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, d.UpdatedAt)
	if err != nil {
		return model.Birthday{}, fmt.Errorf("bad updated_at %q: %w", d.UpdatedAt, err)
	}
	return model.Birthday{
		ID:                 d.ID,
		SyncID:             d.SyncID,
		OwnerID:            d.OwnerID,
		Name:               d.Name,
		Date:               d.Date,
		Note:               d.Note,
		Group:              model.Group(d.Group),
		LinkedContactID:    d.LinkedContactID,
		ContactPhoneNumber: d.ContactPhoneNumber,
		CreatedAt:          createdAt,
		UpdatedAt:          updatedAt,
	}, nil
}

// RemoteStoreHTTP talks to the reference backend over its JSON API,
// authenticating with the stored cookie token.
type RemoteStoreHTTP struct {
	cfg    *config.Config
	tokens repo.TokenStore
}

var _ RemoteStore = (*RemoteStoreHTTP)(nil)

// NewRemoteStoreHTTP builds the HTTP remote adapter.
func NewRemoteStoreHTTP(cfg *config.Config, tokens repo.TokenStore) *RemoteStoreHTTP {
	return &RemoteStoreHTTP{cfg: cfg, tokens: tokens}
}

func (r *RemoteStoreHTTP) endpoint(path string) string {
	return strings.TrimRight(r.cfg.ServerURL, "/") + path
}

func (r *RemoteStoreHTTP) token() (string, error) {
	token, err := r.tokens.Load()
	if err != nil {
		return "", fmt.Errorf("no auth token: %w", err)
	}
	return token, nil
}

func (r *RemoteStoreHTTP) List(ctx context.Context, ownerID string) ([]model.Birthday, error) {
	token, err := r.token()
	if err != nil {
		return nil, err
	}
	resp, body, err := api.GetJSON(ctx, r.endpoint("/api/birthdays"), token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list birthdays: server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var dtos []birthdayDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, fmt.Errorf("decode birthdays: %w", err)
	}
	records := make([]model.Birthday, 0, len(dtos))
	for _, d := range dtos {
		b, err := fromDTO(d)
		if err != nil {
			return nil, err
		}
		// The remote store only ever returns live rows of this owner.
		b.OwnerID = ownerID
		records = append(records, b)
	}
	return records, nil
}

func (r *RemoteStoreHTTP) UpsertMany(ctx context.Context, records []model.Birthday) error {
	if len(records) == 0 {
		return nil
	}
	token, err := r.token()
	if err != nil {
		return err
	}
	dtos := make([]birthdayDTO, 0, len(records))
	for _, b := range records {
		dtos = append(dtos, toDTO(b))
	}
	resp, body, err := api.PostJSON(ctx, r.endpoint("/api/birthdays/batch"), dtos, token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upsert birthdays: server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

func (r *RemoteStoreHTTP) DeleteMany(ctx context.Context, syncIDs []string) error {
	if len(syncIDs) == 0 {
		return nil
	}
	token, err := r.token()
	if err != nil {
		return err
	}
	resp, body, err := api.PostJSON(ctx, r.endpoint("/api/birthdays/delete"), syncIDs, token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("delete birthdays: server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
