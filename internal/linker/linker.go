// Package linker maintains the bidirectional references between books and
// categories. Appending is idempotent, so a link that half-completed can be
// retried without producing duplicate references.
package linker

import (
	"log"
	"sync"

	"gorm.io/gorm"

	"github.com/veenadevi/tn-lms-backend/internal/entities"
)

// Linker pushes and pulls book references on category documents.
type Linker struct {
	db *gorm.DB
}

// NewLinker creates a new relationship linker.
func NewLinker(db *gorm.DB) *Linker {
	return &Linker{db: db}
}

// LinkBook appends the book to every category it references. Category ids
// that do not exist are skipped with a log line rather than created.
func (l *Linker) LinkBook(book *entities.Book, categoryIDs []uint) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	known, err := l.existingCategoryIDs(categoryIDs)
	if err != nil {
		return err
	}

	for _, id := range categoryIDs {
		if _, ok := known[id]; !ok {
			log.Printf("Skipping link for book %d: category %d does not exist", book.ID, id)
			continue
		}
		category := entities.BookCategory{ID: id}
		if err := l.db.Model(book).Association("Categories").Append(&category); err != nil {
			return err
		}
	}
	return nil
}

// LinkBooks links a whole inserted batch, one goroutine per book. All links
// complete before this returns; failures are logged and do not undo the
// insert that triggered them.
func (l *Linker) LinkBooks(books []*entities.Book, categoryIDs [][]uint) {
	var wg sync.WaitGroup
	for i, book := range books {
		wg.Add(1)
		go func(book *entities.Book, ids []uint) {
			defer wg.Done()
			if err := l.LinkBook(book, ids); err != nil {
				log.Printf("Failed to link book %d to categories: %v", book.ID, err)
			}
		}(book, categoryIDs[i])
	}
	wg.Wait()
}

// UnlinkBook retracts the book from every category that references it.
func (l *Linker) UnlinkBook(book *entities.Book) error {
	return l.db.Model(book).Association("Categories").Clear()
}

func (l *Linker) existingCategoryIDs(ids []uint) (map[uint]struct{}, error) {
	var found []uint
	err := l.db.Model(&entities.BookCategory{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error
	if err != nil {
		return nil, err
	}
	known := make(map[uint]struct{}, len(found))
	for _, id := range found {
		known[id] = struct{}{}
	}
	return known, nil
}

// SweepDanglingRefs removes join rows that point at deleted books or
// categories. Run periodically so a crash between insert and link, or a
// failed unlink, heals on its own. Returns the number of rows removed.
func (l *Linker) SweepDanglingRefs() (int64, error) {
	result := l.db.Exec(`
		DELETE FROM book_category_refs
		WHERE book_id NOT IN (SELECT id FROM books WHERE deleted_at IS NULL)
		   OR book_category_id NOT IN (SELECT id FROM book_categories WHERE deleted_at IS NULL)
	`)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
