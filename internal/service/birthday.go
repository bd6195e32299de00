package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"BirthdayKeeper/internal/model"
	"BirthdayKeeper/internal/repo"
)

// ErrInvalidRecord marks a batch rejected by validation, so handlers
// can answer 400 instead of 500.
var ErrInvalidRecord = errors.New("invalid record")

// BirthdayService holds the server-side record logic. It is thin on
// purpose: conflict resolution happens on the clients, the server is
// the durable store the winning revisions land in.
type BirthdayService struct {
	repo repo.BirthdayRepository
}

func NewBirthdayService(r repo.BirthdayRepository) *BirthdayService {
	return &BirthdayService{repo: r}
}

// List returns every record of the user.
func (s *BirthdayService) List(ctx context.Context, userID int64) ([]model.Birthday, error) {
	return s.repo.ListByUser(ctx, userID)
}

// UpsertMany validates and stores a batch of records for the user.
func (s *BirthdayService) UpsertMany(ctx context.Context, userID int64, records []model.Birthday) error {
	for i, b := range records {
		if b.SyncID == "" {
			return fmt.Errorf("record %d: missing sync_id: %w", i, ErrInvalidRecord)
		}
		if b.Name == "" {
			return fmt.Errorf("record %d: missing name: %w", i, ErrInvalidRecord)
		}
		if _, err := time.Parse("2006-01-02", b.Date); err != nil {
			return fmt.Errorf("record %d: invalid date %q: %w", i, b.Date, ErrInvalidRecord)
		}
		if b.UpdatedAt.IsZero() {
			return fmt.Errorf("record %d: missing updated_at: %w", i, ErrInvalidRecord)
		}
	}
	return s.repo.UpsertMany(ctx, userID, records)
}

// DeleteMany removes the user's records by sync id.
func (s *BirthdayService) DeleteMany(ctx context.Context, userID int64, syncIDs []string) error {
	for _, id := range syncIDs {
		if id == "" {
			return fmt.Errorf("empty sync_id in delete batch: %w", ErrInvalidRecord)
		}
	}
	return s.repo.DeleteMany(ctx, userID, syncIDs)
}
