package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"BirthdayKeeper/internal/model"
	"BirthdayKeeper/internal/repo"
)

type mockBirthdayRepo struct{ mock.Mock }

func (m *mockBirthdayRepo) ListByUser(ctx context.Context, userID int64) ([]model.Birthday, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.Birthday); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBirthdayRepo) UpsertMany(ctx context.Context, userID int64, records []model.Birthday) error {
	args := m.Called(ctx, userID, records)
	return args.Error(0)
}

func (m *mockBirthdayRepo) DeleteMany(ctx context.Context, userID int64, syncIDs []string) error {
	args := m.Called(ctx, userID, syncIDs)
	return args.Error(0)
}

var _ repo.BirthdayRepository = (*mockBirthdayRepo)(nil)

func validRecord() model.Birthday {
	now := time.Now().UTC()
	return model.Birthday{
		SyncID:    "s-1",
		ClientID:  1,
		Name:      "Alice",
		Date:      "1990-05-17",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestBirthdayService_UpsertMany(t *testing.T) {
	ctx := context.Background()
	m := new(mockBirthdayRepo)
	svc := NewBirthdayService(m)

	t.Run("valid batch reaches the repository", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("UpsertMany", mock.Anything, int64(7), mock.Anything).Return(nil).Once()
		assert.NoError(t, svc.UpsertMany(ctx, 7, []model.Birthday{validRecord()}))
		m.AssertExpectations(t)
	})

	t.Run("validation failures never reach the repository", func(t *testing.T) {
		m.ExpectedCalls = nil
		for name, mutate := range map[string]func(*model.Birthday){
			"missing sync id":    func(b *model.Birthday) { b.SyncID = "" },
			"missing name":       func(b *model.Birthday) { b.Name = "" },
			"bad date":           func(b *model.Birthday) { b.Date = "17.05.1990" },
			"missing updated_at": func(b *model.Birthday) { b.UpdatedAt = time.Time{} },
		} {
			b := validRecord()
			mutate(&b)
			assert.ErrorIs(t, svc.UpsertMany(ctx, 7, []model.Birthday{b}), ErrInvalidRecord, name)
		}
		m.AssertNotCalled(t, "UpsertMany")
	})
}

func TestBirthdayService_DeleteMany(t *testing.T) {
	ctx := context.Background()
	m := new(mockBirthdayRepo)
	svc := NewBirthdayService(m)

	m.On("DeleteMany", mock.Anything, int64(7), []string{"s-1"}).Return(nil).Once()
	assert.NoError(t, svc.DeleteMany(ctx, 7, []string{"s-1"}))

	assert.ErrorIs(t, svc.DeleteMany(ctx, 7, []string{"s-1", ""}), ErrInvalidRecord, "empty sync id rejected")
	m.AssertExpectations(t)
}

func TestBirthdayService_List(t *testing.T) {
	ctx := context.Background()
	m := new(mockBirthdayRepo)
	svc := NewBirthdayService(m)

	want := []model.Birthday{validRecord()}
	m.On("ListByUser", mock.Anything, int64(7)).Return(want, nil).Once()

	got, err := svc.List(ctx, 7)
	assert.NoError(t, err)
	assert.Equal(t, want, got)
	m.AssertExpectations(t)
}
