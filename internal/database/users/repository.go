// Package users provides database operations for library members.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetUserByAdmissionNo("A1")
package users

import (
	"gorm.io/gorm"

	"github.com/veenadevi/tn-lms-backend/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetUserByAdmissionNo retrieves the unique user with the given admission number.
func (r *Repository) GetUserByAdmissionNo(admissionNo string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("admission_no = ?", admissionNo).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID retrieves a user by store identifier.
func (r *Repository) GetUserByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistingAdmissionNos returns the subset of admission numbers already
// registered. A single lookup regardless of batch size.
func (r *Repository) ExistingAdmissionNos(admissionNos []string) ([]string, error) {
	if len(admissionNos) == 0 {
		return nil, nil
	}
	var existing []string
	err := r.db.Model(&entities.User{}).
		Distinct("admission_no").
		Where("admission_no IN ?", admissionNos).
		Pluck("admission_no", &existing).Error
	return existing, err
}

// InsertUsers creates all users in one batch.
func (r *Repository) InsertUsers(users []*entities.User) error {
	if len(users) == 0 {
		return nil
	}
	return r.db.Create(users).Error
}

// CreateUser creates a single user.
func (r *Repository) CreateUser(user *entities.User) error {
	return r.db.Create(user).Error
}
