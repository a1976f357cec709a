package database

import (
	"fmt"
	"log"

	"pagebinder-notes/pagebinder/models"

	"gorm.io/gorm"
)

// SchemaVersion is recorded in PRAGMA user_version on SQLite databases so
// older desktop builds can refuse to open a newer file.
const SchemaVersion = 3

// RunMigrations brings the tables, indexes and foreign keys up to date.
func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Notebook{},
		&models.Section{},
		&models.Page{},
		&models.Event{},
	)
	if err != nil {
		log.Printf("Migration failed: %v", err)
		return err
	}

	if db.Dialector.Name() == "sqlite" {
		var version int
		if err := db.Raw("PRAGMA user_version").Scan(&version).Error; err != nil {
			return err
		}
		if version < SchemaVersion {
			if err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
