// Package books provides database operations for the book catalogue.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetBookByID(123)
package books

import (
	"gorm.io/gorm"

	"github.com/veenadevi/tn-lms-backend/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAllBooks retrieves every book with categories and transactions
// populated, newest first.
func (r *Repository) GetAllBooks() ([]entities.Book, error) {
	books := []entities.Book{}
	err := r.db.Preload("Categories").Preload("Transactions").
		Order("id DESC").
		Find(&books).Error
	return books, err
}

// GetBookByID retrieves a single book with its transactions populated.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Transactions").Preload("Categories").First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// ExistingBookNames returns the subset of names already present in the
// catalogue. A single lookup regardless of batch size.
func (r *Repository) ExistingBookNames(names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var existing []string
	err := r.db.Model(&entities.Book{}).
		Distinct("book_name").
		Where("book_name IN ?", names).
		Pluck("book_name", &existing).Error
	return existing, err
}

// InsertBooks creates all books in one batch.
func (r *Repository) InsertBooks(books []*entities.Book) error {
	if len(books) == 0 {
		return nil
	}
	return r.db.Create(books).Error
}

// Update describes a partial overwrite of book fields. Nil pointers leave the
// stored value untouched. The display identifier is not updatable.
type Update struct {
	BookName           *string  `json:"bookName"`
	AlternateTitle     *string  `json:"alternateTitle"`
	Author             *string  `json:"author"`
	Contributor        *string  `json:"contributor"`
	Language           *string  `json:"language"`
	Publisher          *string  `json:"publisher"`
	DonatedBy          *string  `json:"donatedBy"`
	BookCountAvailable *int     `json:"bookCountAvailable"`
	BookStatus         *string  `json:"bookStatus"`
	BookPrice          *float64 `json:"bookPrice"`
}

func (u Update) columns() map[string]any {
	updates := map[string]any{}
	if u.BookName != nil {
		updates["book_name"] = *u.BookName
	}
	if u.AlternateTitle != nil {
		updates["alternate_title"] = *u.AlternateTitle
	}
	if u.Author != nil {
		updates["author"] = *u.Author
	}
	if u.Contributor != nil {
		updates["contributor"] = *u.Contributor
	}
	if u.Language != nil {
		updates["language"] = *u.Language
	}
	if u.Publisher != nil {
		updates["publisher"] = *u.Publisher
	}
	if u.DonatedBy != nil {
		updates["donated_by"] = *u.DonatedBy
	}
	if u.BookCountAvailable != nil {
		updates["book_count_available"] = *u.BookCountAvailable
	}
	if u.BookStatus != nil {
		updates["book_status"] = *u.BookStatus
	}
	if u.BookPrice != nil {
		updates["book_price"] = *u.BookPrice
	}
	return updates
}

// UpdateBook overwrites the supplied fields on the given book.
func (r *Repository) UpdateBook(id uint, update Update) error {
	columns := update.columns()
	if len(columns) == 0 {
		return nil
	}
	result := r.db.Model(&entities.Book{}).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteBook removes a book row. Category references are retracted by the
// relationship linker before this is called.
func (r *Repository) DeleteBook(id uint) error {
	return r.db.Delete(&entities.Book{}, id).Error
}
