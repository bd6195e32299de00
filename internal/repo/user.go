package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"BirthdayKeeper/internal/model"
)

// UserRepository is the account-access contract for the service layer.
type UserRepository interface {
	// CreateUser inserts the user and returns it with the ID filled in.
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)

	// GetUserByLogin returns the user or (nil, nil) when absent.
	GetUserByLogin(ctx context.Context, login string) (*model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository creates the gorm-backed user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("login = ?", login).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
