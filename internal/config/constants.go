package config

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./lms-backend.db"

	// DefaultStorageDir is the default root for uploaded content
	DefaultStorageDir = "./storage"
)
