package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "clubhouse/internal/errors"
	"clubhouse/internal/model"
	"clubhouse/internal/repository"
)

// ErrWrongSecret is returned when the submitted secret phrase does not match.
var ErrWrongSecret = errors.New("incorrect secret pass")

// MembershipService promotes authenticated users to member or admin status.
// The unlock secrets are the caller's own profile fields: the username for
// member status, the first name for admin status. A weak, guessable scheme,
// kept as designed.
type MembershipService interface {
	PromoteToMember(ctx context.Context, userID uint, secret string) error
	PromoteToAdmin(ctx context.Context, userID uint, secret string) error
}

type membershipService struct {
	users repository.UserRepository
}

// NewMembershipService creates a new membership service.
func NewMembershipService(users repository.UserRepository) MembershipService {
	return &membershipService{users: users}
}

func (s *membershipService) PromoteToMember(ctx context.Context, userID uint, secret string) error {
	return s.promote(ctx, userID, secret, model.StatusMember, func(u *model.User) string {
		return u.Username
	})
}

func (s *membershipService) PromoteToAdmin(ctx context.Context, userID uint, secret string) error {
	return s.promote(ctx, userID, secret, model.StatusAdmin, func(u *model.User) string {
		return u.Firstname
	})
}

func (s *membershipService) promote(ctx context.Context, userID uint, secret, status string, expected func(*model.User) string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	// Exact, case-sensitive match.
	if secret != expected(user) {
		return ErrWrongSecret
	}

	if err := s.users.UpdateStatus(ctx, userID, status); err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}
