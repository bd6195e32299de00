package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"BirthdayKeeper/internal/model"
)

// BirthdayRepository is the record-access contract for the service
// layer. All operations are scoped to one user; cross-user access is
// impossible by construction.
type BirthdayRepository interface {
	// ListByUser returns every record of the user.
	ListByUser(ctx context.Context, userID int64) ([]model.Birthday, error)

	// UpsertMany inserts or updates records keyed by sync id. Updates
	// are last-writer-wins: an existing row is overwritten only when
	// the incoming updated_at is strictly newer, so a stale revision
	// pushed by a lagging device can never clobber a newer one.
	UpsertMany(ctx context.Context, userID int64, records []model.Birthday) error

	// DeleteMany removes the user's records with the given sync ids.
	// Unknown ids are ignored, which makes retries idempotent.
	DeleteMany(ctx context.Context, userID int64, syncIDs []string) error
}

type birthdayRepo struct {
	db *gorm.DB
}

// NewBirthdayRepository creates the gorm-backed birthday repository.
func NewBirthdayRepository(db *gorm.DB) BirthdayRepository {
	return &birthdayRepo{db: db}
}

func (r *birthdayRepo) ListByUser(ctx context.Context, userID int64) ([]model.Birthday, error) {
	var rows []model.Birthday
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("sync_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *birthdayRepo) UpsertMany(ctx context.Context, userID int64, records []model.Birthday) error {
	if len(records) == 0 {
		return nil
	}
	for i := range records {
		records[i].UserID = userID
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "sync_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"client_id", "name", "date", "note", "group",
				"linked_contact_id", "contact_phone_number",
				"created_at", "updated_at",
			}),
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Expr{SQL: "excluded.updated_at > birthdays.updated_at"},
			}},
		}).
		Create(&records).Error
}

func (r *birthdayRepo) DeleteMany(ctx context.Context, userID int64, syncIDs []string) error {
	if len(syncIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND sync_id IN ?", userID, syncIDs).
		Delete(&model.Birthday{}).Error
}
