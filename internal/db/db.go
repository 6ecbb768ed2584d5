package db

import (
	"log"
	"os"
	"path/filepath"

	"commentbox/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to the embedded sqlite database at path and runs migrations.
// The returned handle is shared by the repositories; gorm serializes access
// to the underlying sqlite connection.
func Open(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	conn, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := conn.AutoMigrate(
		&models.User{},
		&models.Comment{},
		&models.Report{},
	); err != nil {
		return nil, err
	}
	log.Println("Database migration completed")

	return conn, nil
}
