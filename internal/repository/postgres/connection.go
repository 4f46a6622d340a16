package postgres

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dom/draft-advisor/internal/repository"
)

// NewConnection opens a gorm connection and migrates the advisory log
// table, mirroring the corpus's internal/repository/postgres/connection.go
// NewConnection/AutoMigrate shape — trimmed to the single table this
// spec needs.
func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&repository.AdvisoryLogEntry{}); err != nil {
		return nil, err
	}

	return db, nil
}
