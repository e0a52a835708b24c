package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"clubhouse/internal/model"
	"clubhouse/internal/repository"
)

const bcryptCost = 10

var (
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrUnknownUsername is returned when logging in with an unregistered
	// username. Surfacing this separately from a wrong password leaks
	// account existence; it matches the documented user-facing behavior.
	ErrUnknownUsername = errors.New("username does not exist")
	// ErrInvalidCredentials is returned when the password does not verify.
	ErrInvalidCredentials = errors.New("incorrect username or password")
)

// AuthService handles registration and credential verification.
type AuthService interface {
	Register(ctx context.Context, firstname, lastname, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, error)
}

type authService struct {
	users repository.UserRepository
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository) AuthService {
	return &authService{users: users}
}

// Register creates a new user with a bcrypt-hashed password. The plaintext
// is never persisted or logged.
func (s *authService) Register(ctx context.Context, firstname, lastname, username, password string) (*model.User, error) {
	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username existence: %w", err)
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Firstname:    firstname,
		Lastname:     lastname,
		Username:     username,
		PasswordHash: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The unique index closes the window between the existence check
		// and the insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies a username/password pair against the stored hash.
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownUsername
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
