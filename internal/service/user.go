package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"BirthdayKeeper/internal/model"
	"BirthdayKeeper/internal/repo"
)

// ErrLoginTaken is returned by Register when the login already exists.
var ErrLoginTaken = errors.New("login already taken")

// ErrInvalidCredentials is returned by Login on a wrong login/password pair.
var ErrInvalidCredentials = errors.New("invalid login or password")

// UserService holds account business logic: registration and
// credential checks. Passwords are bcrypt-hashed before they reach the
// repository.
type UserService struct {
	repo repo.UserRepository
}

func NewUserService(r repo.UserRepository) *UserService {
	return &UserService{repo: r}
}

// Register creates an account with the given credentials.
func (s *UserService) Register(ctx context.Context, login, password string) (*model.User, error) {
	if login == "" || password == "" {
		return nil, errors.New("login and password are required")
	}
	existing, err := s.repo.GetUserByLogin(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("lookup login: %w", err)
	}
	if existing != nil {
		return nil, ErrLoginTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return s.repo.CreateUser(ctx, &model.User{Login: login, Password: string(hash)})
}

// Login verifies credentials and returns the account.
func (s *UserService) Login(ctx context.Context, login, password string) (*model.User, error) {
	user, err := s.repo.GetUserByLogin(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("lookup login: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
