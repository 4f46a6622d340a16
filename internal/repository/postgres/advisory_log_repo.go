package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/dom/draft-advisor/internal/repository"
)

type advisoryLogRepository struct {
	db *gorm.DB
}

func NewAdvisoryLogRepository(db *gorm.DB) repository.AdvisoryLogRepository {
	return &advisoryLogRepository{db: db}
}

func (r *advisoryLogRepository) Create(ctx context.Context, entry *repository.AdvisoryLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
