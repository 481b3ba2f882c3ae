package http

import (
	"github.com/gin-gonic/gin"

	"github.com/veenadevi/tn-lms-backend/internal/audit"
	"github.com/veenadevi/tn-lms-backend/internal/auth"
	"github.com/veenadevi/tn-lms-backend/internal/content"
	"github.com/veenadevi/tn-lms-backend/internal/database"
	"github.com/veenadevi/tn-lms-backend/internal/database/books"
	"github.com/veenadevi/tn-lms-backend/internal/database/categories"
	"github.com/veenadevi/tn-lms-backend/internal/database/transactions"
	"github.com/veenadevi/tn-lms-backend/internal/linker"
	"github.com/veenadevi/tn-lms-backend/internal/registrar"
)

// RouterConfig aggregates every dependency the route layer needs, improving
// testability and reducing parameter count.
type RouterConfig struct {
	Database         *database.Database
	BookRegistrar    *registrar.BookRegistrar
	UserRegistrar    *registrar.UserRegistrar
	Books            *books.Repository
	Categories       *categories.Repository
	Transactions     *transactions.Repository
	Linker           *linker.Linker
	AuthService      *auth.Service
	Auditor          *audit.Service
	Storage          *content.Storage
	MaxUploadFiles   int
	MaxFileSizeMB    int64
	Version          string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Multipart bodies can carry up to MaxUploadFiles files of MaxFileSizeMB
	// each; keep only a small slice of that in memory.
	router.MaxMultipartMemory = 32 << 20

	health := NewHealthController(cfg.Database, cfg.Version)
	authController := NewAuthController(cfg.UserRegistrar, cfg.AuthService, cfg.Auditor)
	booksController := NewBooksController(cfg.BookRegistrar, cfg.Books, cfg.Categories, cfg.Linker, cfg.Auditor)
	transactionsController := NewTransactionsController(cfg.Transactions, cfg.Books, cfg.Auditor)
	contentController := NewContentController(cfg.Storage, cfg.MaxUploadFiles, cfg.MaxFileSizeMB)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Member endpoints
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", authController.Register)
		authGroup.POST("/signin", authController.SignIn)
	}

	// Catalogue endpoints
	booksGroup := router.Group("/books")
	{
		booksGroup.GET("", booksController.GetBooksByCategory)
		booksGroup.GET("/allbooks", booksController.GetAllBooks)
		booksGroup.GET("/getbook/:id", booksController.GetBook)
		booksGroup.POST("/addbook", booksController.AddBook)
		booksGroup.PUT("/updatebook/:id", booksController.UpdateBook)
		booksGroup.DELETE("/removebook/:id", booksController.RemoveBook)
	}

	categoriesGroup := router.Group("/categories")
	{
		categoriesGroup.GET("", booksController.GetAllCategories)
		categoriesGroup.POST("/addcategory", booksController.AddCategory)
	}

	// Borrow/return endpoints
	transactionsGroup := router.Group("/transactions")
	{
		transactionsGroup.POST("/add-transaction", transactionsController.AddTransaction)
		transactionsGroup.GET("/all-transactions", transactionsController.GetAllTransactions)
		transactionsGroup.GET("/allActive-transactions", transactionsController.GetActiveTransactions)
		transactionsGroup.GET("/allArchived-transactions", transactionsController.GetArchivedTransactions)
		transactionsGroup.PUT("/update-transaction/:id", transactionsController.UpdateTransaction)
		transactionsGroup.DELETE("/remove-transaction/:id", transactionsController.RemoveTransaction)
	}

	// Uploaded content endpoints
	contentGroup := router.Group("/content")
	{
		contentGroup.POST("/upload", contentController.Upload)
		contentGroup.GET("/files", contentController.Files)
		contentGroup.GET("/download", contentController.Download)
	}

	return router
}
