package database

import (
	"Depot/internal/config"
	"Depot/internal/models"
	"log"
	"os"
	"path/filepath"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupDatabase opens the item store: postgres when DB_HOST is set in the
// environment, an on-disk sqlite file otherwise.
func SetupDatabase(configuration *config.Configuration) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	if os.Getenv("DB_HOST") != "" {
		if os.Getenv("DB_SSLMODE") == "" {
			if err := os.Setenv("DB_SSLMODE", "disable"); err != nil {
				return nil, err
			}
		}
		dsn := os.ExpandEnv("host=${DB_HOST} user=${DB_USER} password=${DB_PASSWORD} dbname=${DB_NAME} port=${DB_PORT} sslmode=${DB_SSLMODE} TimeZone=${DB_TZ}")
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	} else {
		if mkErr := os.MkdirAll(filepath.Dir(configuration.Database.Path), 0o755); mkErr != nil {
			return nil, mkErr
		}
		db, err = gorm.Open(sqlite.Open(configuration.Database.Path), &gorm.Config{})
	}
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&models.Item{})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func CloseDatabase(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Could not get DB instance: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}
