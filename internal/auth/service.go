// Package auth implements password hashing and the sign-in check.
package auth

import (
	"errors"

	"gorm.io/gorm"

	"github.com/veenadevi/tn-lms-backend/internal/database/users"
	"github.com/veenadevi/tn-lms-backend/internal/entities"
)

var ErrUserNotFound = errors.New("user not found")

// Service handles credential checks against stored members.
type Service struct {
	users *users.Repository
}

// NewService creates a new authentication service.
func NewService(repo *users.Repository) *Service {
	return &Service{users: repo}
}

// SignIn looks up the unique user for the admission number and verifies the
// password. Each failure short-circuits: a missing user returns
// ErrUserNotFound, a mismatch ErrInvalidPassword. The returned record still
// carries the hash internally; it is redacted at serialization, never sent.
func (s *Service) SignIn(admissionNo, password string) (*entities.User, error) {
	user, err := s.users.GetUserByAdmissionNo(admissionNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := CheckPassword(password, user.Password); err != nil {
		return nil, err
	}

	return user, nil
}
