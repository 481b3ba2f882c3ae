package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/veenadevi/tn-lms-backend/internal/audit"
	"github.com/veenadevi/tn-lms-backend/internal/auth"
	"github.com/veenadevi/tn-lms-backend/internal/config"
	"github.com/veenadevi/tn-lms-backend/internal/content"
	"github.com/veenadevi/tn-lms-backend/internal/database"
	"github.com/veenadevi/tn-lms-backend/internal/database/books"
	"github.com/veenadevi/tn-lms-backend/internal/database/categories"
	"github.com/veenadevi/tn-lms-backend/internal/database/transactions"
	"github.com/veenadevi/tn-lms-backend/internal/database/users"
	http_controllers "github.com/veenadevi/tn-lms-backend/internal/http"
	"github.com/veenadevi/tn-lms-backend/internal/linker"
	"github.com/veenadevi/tn-lms-backend/internal/registrar"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background jobs before the listener goes away.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting LMS backend v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Storage preflight: create the area directories and verify the root is
	// writable by touching and removing an empty file.
	storage, err := content.NewStorage(cfg.Storage.Dir)
	if err != nil {
		log.Fatalf("Failed to initialize content storage: %v", err)
	}
	probe := filepath.Join(cfg.Storage.Dir, ".lms-backend")
	probeFile, err := os.Create(probe)
	if err != nil {
		log.Fatalf("Storage directory %s is not writable", cfg.Storage.Dir)
	}
	probeFile.Close()
	if err := os.Remove(probe); err != nil {
		log.Fatalf("Could not remove the test file from storage directory %s", cfg.Storage.Dir)
	}
	log.Printf("Content storage initialized at %s", cfg.Storage.Dir)

	booksRepo := books.NewRepository(db.DB)
	categoriesRepo := categories.NewRepository(db.DB)
	transactionsRepo := transactions.NewRepository(db.DB)
	usersRepo := users.NewRepository(db.DB)

	bookLinker := linker.NewLinker(db.DB)
	auditor := audit.NewService(db.DB)
	authService := auth.NewService(usersRepo)

	bookRegistrar := registrar.NewBookRegistrar(db, booksRepo, bookLinker)
	userRegistrar := registrar.NewUserRegistrar(usersRepo, cfg.Auth.BcryptCost, cfg.Auth.DefaultPassword)

	// Periodic self-healing for half-completed link updates.
	var sweeper *linker.Sweeper
	if cfg.LinkSweep.Enabled {
		sweeper = linker.NewSweeper(bookLinker, cfg.LinkSweep.Schedule)
		if err := sweeper.Start(); err != nil {
			log.Fatalf("Failed to start link sweeper: %v", err)
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Database:       db,
		BookRegistrar:  bookRegistrar,
		UserRegistrar:  userRegistrar,
		Books:          booksRepo,
		Categories:     categoriesRepo,
		Transactions:   transactionsRepo,
		Linker:         bookLinker,
		AuthService:    authService,
		Auditor:        auditor,
		Storage:        storage,
		MaxUploadFiles: cfg.Storage.MaxUploadFiles,
		MaxFileSizeMB:  cfg.Storage.MaxFileSizeMB,
		Version:        version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if sweeper != nil {
			sweeper.Stop()
		}
	}

	Serve(router, cfg, onShutdown)
}
