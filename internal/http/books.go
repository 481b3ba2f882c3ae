package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/veenadevi/tn-lms-backend/internal/audit"
	"github.com/veenadevi/tn-lms-backend/internal/database/books"
	"github.com/veenadevi/tn-lms-backend/internal/database/categories"
	"github.com/veenadevi/tn-lms-backend/internal/entities"
	"github.com/veenadevi/tn-lms-backend/internal/linker"
	"github.com/veenadevi/tn-lms-backend/internal/registrar"
)

// BooksController handles the book catalogue routes.
type BooksController struct {
	registrar  *registrar.BookRegistrar
	books      *books.Repository
	categories *categories.Repository
	linker     *linker.Linker
	auditor    *audit.Service
}

func NewBooksController(r *registrar.BookRegistrar, b *books.Repository, cat *categories.Repository, l *linker.Linker, a *audit.Service) *BooksController {
	return &BooksController{registrar: r, books: b, categories: cat, linker: l, auditor: a}
}

// GetAllBooks returns every book, categories and transactions populated,
// newest first.
// GET /books/allbooks
func (controller *BooksController) GetAllBooks(c *gin.Context) {
	allBooks, err := controller.books.GetAllBooks()
	if err != nil {
		respondStoreFailure(c, err, "allbooks")
		return
	}
	c.JSON(http.StatusOK, allBooks)
}

// GetBook returns a single book with its transactions populated.
// GET /books/getbook/:id
func (controller *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.books.GetBookByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "getbook")
		return
	}
	c.JSON(http.StatusOK, book)
}

// GetBooksByCategory returns the named category populated with its books.
// GET /books?category=NAME
func (controller *BooksController) GetBooksByCategory(c *gin.Context) {
	name := c.Query("category")
	if name == "" {
		respondBadRequest(c, "category query parameter is required")
		return
	}

	category, err := controller.categories.GetCategoryByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "category")
			return
		}
		respondStoreFailure(c, err, "books by category")
		return
	}
	c.JSON(http.StatusOK, category)
}

// AddBook admits a batch of books: single object, bare array, or {books:[…]}.
// POST /books/addbook
func (controller *BooksController) AddBook(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		respondBadRequest(c, "failed to read request body")
		return
	}

	inputs, authorized, err := registrar.NormalizeBookPayload(raw)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	result, err := controller.registrar.Register(inputs, authorized)
	if err != nil {
		var validation *registrar.ValidationError
		switch {
		case errors.Is(err, registrar.ErrNotAuthorized):
			respondForbidden(c, "You dont have permission to add a book!")
		case errors.Is(err, registrar.ErrEmptyPayload):
			respondBadRequest(c, "empty payload")
		case errors.As(err, &validation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid book record", Details: validation.Error()})
		default:
			respondStoreFailure(c, err, "addbook")
		}
		return
	}

	controller.auditor.LogMutation(entities.AuditEventBookAdd, "book", nil,
		bookBatchSummary(result), c.ClientIP(), nil)
	c.JSON(http.StatusOK, result)
}

type bookUpdateRequest struct {
	IsAdmin bool `json:"isAdmin"`
	books.Update
}

// UpdateBook overwrites the supplied fields of a book.
// PUT /books/updatebook/:id
func (controller *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req bookUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if !req.IsAdmin {
		respondForbidden(c, "You dont have permission to update a book!")
		return
	}

	err := controller.books.UpdateBook(id, req.Update)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondStoreFailure(c, err, "updatebook")
		return
	}

	controller.auditor.LogMutation(entities.AuditEventBookUpdate, "book", &id, "", c.ClientIP(), nil)
	c.JSON(http.StatusOK, "Book details updated successfully")
}

type adminRequest struct {
	IsAdmin bool `json:"isAdmin"`
}

// RemoveBook deletes a book and retracts its id from every referencing
// category before the row goes away.
// DELETE /books/removebook/:id
func (controller *BooksController) RemoveBook(c *gin.Context) {
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
		respondForbidden(c, "You dont have permission to delete a book!")
		return
	}

	book, err := controller.books.GetBookByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondStoreFailure(c, err, "removebook lookup")
		return
	}

	if err := controller.linker.UnlinkBook(book); err != nil {
		respondStoreFailure(c, err, "removebook unlink")
		return
	}
	if err := controller.books.DeleteBook(id); err != nil {
		respondStoreFailure(c, err, "removebook delete")
		return
	}

	controller.auditor.LogMutation(entities.AuditEventBookDelete, "book", &id, book.BookName, c.ClientIP(), nil)
	c.JSON(http.StatusOK, "Book has been deleted")
}

// GetAllCategories lists every category without book lists.
// GET /categories
func (controller *BooksController) GetAllCategories(c *gin.Context) {
	all, err := controller.categories.GetAllCategories()
	if err != nil {
		respondStoreFailure(c, err, "allcategories")
		return
	}
	c.JSON(http.StatusOK, all)
}

type addCategoryRequest struct {
	IsAdmin      bool   `json:"isAdmin"`
	CategoryName string `json:"categoryName"`
}

// AddCategory creates a category.
// POST /categories/addcategory
func (controller *BooksController) AddCategory(c *gin.Context) {
	var req addCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if !req.IsAdmin {
		respondForbidden(c, "You dont have permission to add a category!")
		return
	}
	if req.CategoryName == "" {
		respondBadRequest(c, "categoryName is required")
		return
	}

	category, err := controller.categories.CreateCategory(req.CategoryName)
	if err != nil {
		respondInternalError(c, err, "addcategory")
		return
	}
	c.JSON(http.StatusOK, category)
}

func bookBatchSummary(result *registrar.BookResult) string {
	names, err := json.Marshal(struct {
		Inserted int      `json:"inserted"`
		Skipped  []string `json:"skipped"`
	}{len(result.Inserted), result.Skipped})
	if err != nil {
		return ""
	}
	return string(names)
}
