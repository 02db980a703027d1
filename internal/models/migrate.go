package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates the users and reviews tables if they don't exist yet.
// There is no versioning; AutoMigrate only adds missing tables, columns and indexes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&User{},
		&Review{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
