package database

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/veenadevi/tn-lms-backend/internal/entities"
)

// bookIDCounter is the counter row backing sequential book identifiers.
const bookIDCounter = "book_id"

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.User{},
		&entities.Book{},
		&entities.BookCategory{},
		&entities.BookTransaction{},
		&entities.Counter{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.seedBookIDCounter(); err != nil {
		return nil, fmt.Errorf("failed to seed book id counter: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// seedBookIDCounter creates the counter row if missing, starting it from the
// largest book id already assigned so allocation continues where a previous
// deployment left off.
func (d *Database) seedBookIDCounter() error {
	var existing entities.Counter
	err := d.DB.Where("name = ?", bookIDCounter).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var maxID int64
	row := d.DB.Model(&entities.Book{}).Select("COALESCE(MAX(book_id), 0)").Row()
	if err := row.Scan(&maxID); err != nil {
		return err
	}

	counter := entities.Counter{Name: bookIDCounter, Value: maxID}
	if err := d.DB.Create(&counter).Error; err != nil {
		return err
	}
	log.Printf("Created counter %q starting at %d", bookIDCounter, maxID)
	return nil
}

// ReserveBookIDs atomically reserves n contiguous book identifiers and
// returns the first one. The increment runs inside a store transaction, so
// concurrent batches get disjoint ranges.
func (d *Database) ReserveBookIDs(n int) (int64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("cannot reserve %d ids", n)
	}

	var start int64
	err := d.DB.Transaction(func(tx *gorm.DB) error {
		var counter entities.Counter
		if err := tx.Where("name = ?", bookIDCounter).First(&counter).Error; err != nil {
			return err
		}
		start = counter.Value + 1
		return tx.Model(&counter).Update("value", counter.Value+int64(n)).Error
	})
	if err != nil {
		return 0, err
	}
	return start, nil
}
