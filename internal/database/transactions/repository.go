// Package transactions provides database operations for borrow and
// reservation records.
package transactions

import (
	"gorm.io/gorm"

	"github.com/veenadevi/tn-lms-backend/internal/entities"
)

// Repository handles all transaction database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new transactions repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateTransaction records a new borrow/reservation event. BookRef ties the
// row to its owning book, which makes the book's transaction list and the
// transaction itself retract together on delete.
func (r *Repository) CreateTransaction(tx *entities.BookTransaction) error {
	return r.db.Create(tx).Error
}

// GetTransactionByID retrieves a single transaction.
func (r *Repository) GetTransactionByID(id uint) (*entities.BookTransaction, error) {
	var tx entities.BookTransaction
	if err := r.db.First(&tx, id).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetAllTransactions retrieves every transaction, newest first.
func (r *Repository) GetAllTransactions() ([]entities.BookTransaction, error) {
	return r.listByStatus("")
}

// GetActiveTransactions retrieves transactions still in progress, newest first.
func (r *Repository) GetActiveTransactions() ([]entities.BookTransaction, error) {
	return r.listByStatus(entities.TransactionStatusActive)
}

// GetArchivedTransactions retrieves completed transactions, newest first.
func (r *Repository) GetArchivedTransactions() ([]entities.BookTransaction, error) {
	return r.listByStatus(entities.TransactionStatusCompleted)
}

func (r *Repository) listByStatus(status entities.TransactionStatus) ([]entities.BookTransaction, error) {
	txs := []entities.BookTransaction{}
	query := r.db.Order("id DESC")
	if status != "" {
		query = query.Where("transaction_status = ?", status)
	}
	err := query.Find(&txs).Error
	return txs, err
}

// Update describes a partial overwrite of transaction fields.
type Update struct {
	TransactionType   *entities.TransactionType   `json:"transactionType"`
	FromDate          *string                     `json:"fromDate"`
	ToDate            *string                     `json:"toDate"`
	ReturnDate        *string                     `json:"returnDate"`
	TransactionStatus *entities.TransactionStatus `json:"transactionStatus"`
}

func (u Update) columns() map[string]any {
	updates := map[string]any{}
	if u.TransactionType != nil {
		updates["transaction_type"] = *u.TransactionType
	}
	if u.FromDate != nil {
		updates["from_date"] = *u.FromDate
	}
	if u.ToDate != nil {
		updates["to_date"] = *u.ToDate
	}
	if u.ReturnDate != nil {
		updates["return_date"] = *u.ReturnDate
	}
	if u.TransactionStatus != nil {
		updates["transaction_status"] = *u.TransactionStatus
	}
	return updates
}

// UpdateTransaction overwrites the supplied fields on the given transaction.
func (r *Repository) UpdateTransaction(id uint, update Update) error {
	columns := update.columns()
	if len(columns) == 0 {
		return nil
	}
	result := r.db.Model(&entities.BookTransaction{}).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteTransaction removes a transaction row. Because the owning book's
// transaction list resolves through BookRef, deletion retracts the reference
// from the book symmetrically with creation.
func (r *Repository) DeleteTransaction(id uint) error {
	result := r.db.Delete(&entities.BookTransaction{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
