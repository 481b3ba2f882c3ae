package entities

import (
	"time"

	"gorm.io/gorm"
)

// DefaultBookStatus is assigned when a book is created without an explicit status.
const DefaultBookStatus = "Available"

// DefaultBookPrice is assigned when a book is created without an explicit price.
const DefaultBookPrice = 100.0

type TransactionStatus string

const (
	TransactionStatusActive    TransactionStatus = "Active"
	TransactionStatusCompleted TransactionStatus = "Completed"
)

type TransactionType string

const (
	TransactionTypeIssued   TransactionType = "Issued"
	TransactionTypeReserved TransactionType = "Reserved"
)

type Book struct {
	ID                 uint              `gorm:"primaryKey" json:"id"`
	BookID             int64             `gorm:"uniqueIndex" json:"bookId"` // sequential display identifier
	BookName           string            `gorm:"index;size:512" json:"bookName"`
	AlternateTitle     string            `gorm:"size:512" json:"alternateTitle,omitempty"`
	Author             string            `gorm:"index;size:256" json:"author"`
	Contributor        string            `gorm:"size:256" json:"contributor,omitempty"`
	Language           string            `gorm:"size:64" json:"language,omitempty"`
	Publisher          string            `gorm:"size:256" json:"publisher,omitempty"`
	DonatedBy          string            `gorm:"size:256" json:"donatedBy,omitempty"`
	BookCountAvailable int               `json:"bookCountAvailable"`
	BookStatus         string            `gorm:"size:64;default:'Available'" json:"bookStatus"`
	BookPrice          float64           `gorm:"default:100" json:"bookPrice"`
	Categories         []BookCategory    `gorm:"many2many:book_category_refs;" json:"categories,omitempty"`
	Transactions       []BookTransaction `gorm:"foreignKey:BookRef" json:"transactions,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
	DeletedAt          gorm.DeletedAt    `gorm:"index" json:"-"`
}

type BookCategory struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CategoryName string         `gorm:"uniqueIndex;size:256" json:"categoryName"`
	Books        []Book         `gorm:"many2many:book_category_refs;" json:"books,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// BookTransaction records a borrow or reservation event. BookRef points at the
// owning book row; BookID duplicates the book's display identifier so a
// transaction stays readable after the book is gone.
type BookTransaction struct {
	ID                uint              `gorm:"primaryKey" json:"id"`
	BookRef           uint              `gorm:"index" json:"-"`
	BookID            int64             `gorm:"index" json:"bookId"`
	BookName          string            `gorm:"size:512" json:"bookName"`
	BorrowerID        string            `gorm:"index;size:64" json:"borrowerId"` // admission number or employee id
	BorrowerName      string            `gorm:"size:256" json:"borrowerName"`
	TransactionType   TransactionType   `gorm:"size:32" json:"transactionType"`
	FromDate          string            `gorm:"size:32" json:"fromDate"`
	ToDate            string            `gorm:"size:32" json:"toDate"`
	ReturnDate        string            `gorm:"size:32" json:"returnDate,omitempty"`
	TransactionStatus TransactionStatus `gorm:"size:32;default:'Active'" json:"transactionStatus"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
	DeletedAt         gorm.DeletedAt    `gorm:"index" json:"-"`
}

// Counter backs sequential identifier allocation. A single row per counter
// name; increments happen inside a store transaction so concurrent batches
// never hand out overlapping ranges.
type Counter struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"uniqueIndex;size:64" json:"name"`
	Value int64  `json:"value"`
}

func (Book) TableName() string {
	return "books"
}

func (BookCategory) TableName() string {
	return "book_categories"
}

func (BookTransaction) TableName() string {
	return "book_transactions"
}

func (Counter) TableName() string {
	return "counters"
}
