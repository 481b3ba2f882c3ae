package registrar

import (
	"encoding/json"
	"fmt"

	"github.com/veenadevi/tn-lms-backend/internal/database"
	"github.com/veenadevi/tn-lms-backend/internal/database/books"
	"github.com/veenadevi/tn-lms-backend/internal/entities"
	"github.com/veenadevi/tn-lms-backend/internal/linker"
)

// BookInput is one candidate book record. Any isAdmin field an item carries
// is not represented here, so normalization strips it by construction.
type BookInput struct {
	BookName           string   `json:"bookName"`
	AlternateTitle     string   `json:"alternateTitle"`
	Author             string   `json:"author"`
	Contributor        string   `json:"contributor"`
	Language           string   `json:"language"`
	Publisher          string   `json:"publisher"`
	DonatedBy          string   `json:"donatedBy"`
	BookCountAvailable *int     `json:"bookCountAvailable"`
	BookStatus         string   `json:"bookStatus"`
	BookPrice          *float64 `json:"bookPrice"`
	Categories         []uint   `json:"categories"`
}

// BookResult reports a batch outcome: the records actually created and the
// names skipped as duplicates.
type BookResult struct {
	Inserted []entities.Book `json:"inserted"`
	Skipped  []string        `json:"skipped"`
}

// BookRegistrar orchestrates identifier allocation, duplicate filtering,
// batch insert, and category linking for books.
type BookRegistrar struct {
	store  *database.Database
	books  *books.Repository
	linker *linker.Linker
}

// NewBookRegistrar creates a book registrar.
func NewBookRegistrar(store *database.Database, repo *books.Repository, l *linker.Linker) *BookRegistrar {
	return &BookRegistrar{store: store, books: repo, linker: l}
}

// NormalizeBookPayload flattens a single object, bare array, or {books:[…]}
// payload into candidate inputs, consuming the admin flag from the top level
// or the first item.
func NormalizeBookPayload(raw []byte) ([]BookInput, bool, error) {
	items, isAdmin, err := normalizeBatch(raw, "books", true)
	if err != nil {
		return nil, false, err
	}

	inputs := make([]BookInput, 0, len(items))
	for i, item := range items {
		var input BookInput
		if err := json.Unmarshal(item, &input); err != nil {
			return nil, false, fmt.Errorf("candidate %d: %w", i, err)
		}
		inputs = append(inputs, input)
	}
	return inputs, isAdmin, nil
}

// Register admits a normalized batch. Authorization is all-or-nothing: an
// unauthorized caller inserts nothing, duplicates or not. A batch whose
// candidates are all duplicates succeeds with an empty inserted list.
func (r *BookRegistrar) Register(inputs []BookInput, authorized bool) (*BookResult, error) {
	if !authorized {
		return nil, ErrNotAuthorized
	}
	if len(inputs) == 0 {
		return nil, ErrEmptyPayload
	}

	if err := validateBooks(inputs); err != nil {
		return nil, err
	}

	names := make([]string, len(inputs))
	for i, input := range inputs {
		names[i] = input.BookName
	}

	existing, err := r.books.ExistingBookNames(names)
	if err != nil {
		return nil, fmt.Errorf("failed to look up existing names: %w", err)
	}

	duplicate := PartitionByKey(names, existing)

	result := &BookResult{Inserted: []entities.Book{}, Skipped: []string{}}
	var unique []BookInput
	for i, input := range inputs {
		if duplicate[i] {
			result.Skipped = append(result.Skipped, input.BookName)
			continue
		}
		unique = append(unique, input)
	}

	if len(unique) == 0 {
		return result, nil
	}

	start, err := r.store.ReserveBookIDs(len(unique))
	if err != nil {
		return nil, fmt.Errorf("failed to reserve book ids: %w", err)
	}

	toInsert := make([]*entities.Book, len(unique))
	categoryRefs := make([][]uint, len(unique))
	for i, input := range unique {
		toInsert[i] = newBook(input, start+int64(i))
		categoryRefs[i] = input.Categories
	}

	if err := r.books.InsertBooks(toInsert); err != nil {
		return nil, fmt.Errorf("failed to insert books: %w", err)
	}

	// Push the new ids onto every referenced category. Runs concurrently per
	// book but completes before the batch is acknowledged; link failures are
	// logged, never rolled back against the insert.
	r.linker.LinkBooks(toInsert, categoryRefs)

	for _, book := range toInsert {
		result.Inserted = append(result.Inserted, *book)
	}
	return result, nil
}

func newBook(input BookInput, bookID int64) *entities.Book {
	book := &entities.Book{
		BookID:         bookID,
		BookName:       input.BookName,
		AlternateTitle: input.AlternateTitle,
		Author:         input.Author,
		Contributor:    input.Contributor,
		Language:       input.Language,
		Publisher:      input.Publisher,
		DonatedBy:      input.DonatedBy,
		BookStatus:     input.BookStatus,
		BookPrice:      entities.DefaultBookPrice,
	}
	if input.BookCountAvailable != nil {
		book.BookCountAvailable = *input.BookCountAvailable
	}
	if book.BookStatus == "" {
		book.BookStatus = entities.DefaultBookStatus
	}
	if input.BookPrice != nil {
		book.BookPrice = *input.BookPrice
	}
	return book
}

func validateBooks(inputs []BookInput) error {
	for i, input := range inputs {
		if input.BookName == "" {
			return &ValidationError{Index: i, Field: "bookName"}
		}
		if input.Author == "" {
			return &ValidationError{Index: i, Field: "author"}
		}
		if input.BookCountAvailable == nil || *input.BookCountAvailable < 0 {
			return &ValidationError{Index: i, Field: "bookCountAvailable"}
		}
	}
	return nil
}
