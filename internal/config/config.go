package config

import (
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		Storage
		Auth
		LinkSweep
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	Storage struct {
		Dir            string
		MaxUploadFiles int   // max files per upload request
		MaxFileSizeMB  int64 // per-file size cap in megabytes
	}
	Auth struct {
		BcryptCost      int
		DefaultPassword string // substituted when a registered user supplies none
	}
	LinkSweep struct {
		Enabled  bool
		Schedule string // Cron format: "*/30 * * * *" = every 30 minutes
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8800)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("storage_dir", DefaultStorageDir)
	v.SetDefault("max_upload_files", 20)
	v.SetDefault("max_file_size_mb", 300)
	v.SetDefault("bcrypt_cost", 10)
	v.SetDefault("default_password", "test123")
	v.SetDefault("link_sweep_enabled", true)
	v.SetDefault("link_sweep_schedule", "*/30 * * * *")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Storage: Storage{
			Dir:            v.GetString("STORAGE_DIR"),
			MaxUploadFiles: v.GetInt("MAX_UPLOAD_FILES"),
			MaxFileSizeMB:  v.GetInt64("MAX_FILE_SIZE_MB"),
		},
		Auth: Auth{
			BcryptCost:      v.GetInt("BCRYPT_COST"),
			DefaultPassword: v.GetString("DEFAULT_PASSWORD"),
		},
		LinkSweep: LinkSweep{
			Enabled:  v.GetBool("LINK_SWEEP_ENABLED"),
			Schedule: v.GetString("LINK_SWEEP_SCHEDULE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
