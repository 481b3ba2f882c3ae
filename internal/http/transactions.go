package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/veenadevi/tn-lms-backend/internal/audit"
	"github.com/veenadevi/tn-lms-backend/internal/database/books"
	"github.com/veenadevi/tn-lms-backend/internal/database/transactions"
	"github.com/veenadevi/tn-lms-backend/internal/entities"
)

// TransactionsController handles borrow/return records.
type TransactionsController struct {
	transactions *transactions.Repository
	books        *books.Repository
	auditor      *audit.Service
}

func NewTransactionsController(t *transactions.Repository, b *books.Repository, a *audit.Service) *TransactionsController {
	return &TransactionsController{transactions: t, books: b, auditor: a}
}

type addTransactionRequest struct {
	IsAdmin         bool                       `json:"isAdmin"`
	BookID          uint                       `json:"bookId"` // store identifier of the book
	BorrowerID      string                     `json:"borrowerId"`
	BorrowerName    string                     `json:"borrowerName"`
	TransactionType entities.TransactionType   `json:"transactionType"`
	FromDate        string                     `json:"fromDate"`
	ToDate          string                     `json:"toDate"`
}

// AddTransaction records a loan or reservation and links it to its book.
// POST /transactions/add-transaction
func (controller *TransactionsController) AddTransaction(c *gin.Context) {
	var req addTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if !req.IsAdmin {
		respondForbidden(c, "You dont have permission to add a transaction!")
		return
	}
	if req.BookID == 0 || req.BorrowerID == "" {
		respondBadRequest(c, "bookId and borrowerId are required")
		return
	}

	book, err := controller.books.GetBookByID(req.BookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondStoreFailure(c, err, "add-transaction lookup")
		return
	}

	tx := &entities.BookTransaction{
		BookRef:           book.ID,
		BookID:            book.BookID,
		BookName:          book.BookName,
		BorrowerID:        req.BorrowerID,
		BorrowerName:      req.BorrowerName,
		TransactionType:   req.TransactionType,
		FromDate:          req.FromDate,
		ToDate:            req.ToDate,
		TransactionStatus: entities.TransactionStatusActive,
	}
	if err := controller.transactions.CreateTransaction(tx); err != nil {
		respondInternalError(c, err, "add-transaction")
		return
	}

	controller.auditor.LogMutation(entities.AuditEventTransactionAdd, "transaction", &tx.ID,
		book.BookName+" -> "+req.BorrowerID, c.ClientIP(), nil)
	c.JSON(http.StatusOK, tx)
}

// GetAllTransactions returns every transaction, newest first.
// GET /transactions/all-transactions
func (controller *TransactionsController) GetAllTransactions(c *gin.Context) {
	txs, err := controller.transactions.GetAllTransactions()
	if err != nil {
		respondStoreFailure(c, err, "all-transactions")
		return
	}
	c.JSON(http.StatusOK, txs)
}

// GetActiveTransactions returns in-progress transactions, newest first.
// GET /transactions/allActive-transactions
func (controller *TransactionsController) GetActiveTransactions(c *gin.Context) {
	txs, err := controller.transactions.GetActiveTransactions()
	if err != nil {
		respondStoreFailure(c, err, "allActive-transactions")
		return
	}
	c.JSON(http.StatusOK, txs)
}

// GetArchivedTransactions returns completed transactions, newest first.
// GET /transactions/allArchived-transactions
func (controller *TransactionsController) GetArchivedTransactions(c *gin.Context) {
	txs, err := controller.transactions.GetArchivedTransactions()
	if err != nil {
		respondStoreFailure(c, err, "allArchived-transactions")
		return
	}
	c.JSON(http.StatusOK, txs)
}

type updateTransactionRequest struct {
	IsAdmin bool `json:"isAdmin"`
	transactions.Update
}

// UpdateTransaction overwrites the supplied fields of a transaction.
// PUT /transactions/update-transaction/:id
func (controller *TransactionsController) UpdateTransaction(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if !req.IsAdmin {
		respondForbidden(c, "You dont have permission to update a transaction!")
		return
	}

	err := controller.transactions.UpdateTransaction(id, req.Update)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "transaction")
			return
		}
		respondStoreFailure(c, err, "update-transaction")
		return
	}

	controller.auditor.LogMutation(entities.AuditEventTransactionEdit, "transaction", &id, "", c.ClientIP(), nil)
	c.JSON(http.StatusOK, "Transaction details updated successfully")
}

// RemoveTransaction deletes a transaction; the owning book's transaction
// list retracts with it.
// DELETE /transactions/remove-transaction/:id
func (controller *TransactionsController) RemoveTransaction(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req adminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if !req.IsAdmin {
		respondForbidden(c, "You dont have permission to delete a transaction!")
		return
	}

	err := controller.transactions.DeleteTransaction(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "transaction")
			return
		}
		respondStoreFailure(c, err, "remove-transaction")
		return
	}

	controller.auditor.LogMutation(entities.AuditEventTransactionDrop, "transaction", &id, "", c.ClientIP(), nil)
	c.JSON(http.StatusOK, "Transaction has been deleted")
}
