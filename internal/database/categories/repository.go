// Package categories provides database operations for book categories.
package categories

import (
	"gorm.io/gorm"

	"github.com/veenadevi/tn-lms-backend/internal/entities"
)

// Repository handles all category database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new categories repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetCategoryByName retrieves a category by name with its books populated.
func (r *Repository) GetCategoryByName(name string) (*entities.BookCategory, error) {
	var category entities.BookCategory
	err := r.db.Preload("Books").Where("category_name = ?", name).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetAllCategories retrieves every category, without book lists.
func (r *Repository) GetAllCategories() ([]entities.BookCategory, error) {
	categories := []entities.BookCategory{}
	err := r.db.Order("category_name ASC").Find(&categories).Error
	return categories, err
}

// CreateCategory creates a category with the given name.
func (r *Repository) CreateCategory(name string) (*entities.BookCategory, error) {
	category := entities.BookCategory{CategoryName: name}
	if err := r.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}
