package database

import (
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/HarmoniqaOrg/PharmOS/internal/models"
)

// Connect opens the registry database and runs migrations for the three
// registry collections.
func Connect(dbPath string) (*gorm.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.ModelEntry{},
		&models.VersionRecord{},
		&models.DeploymentSlot{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
