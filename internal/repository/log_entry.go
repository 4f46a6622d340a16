// Package repository defines the advisory log's storage contract
// (spec.md §4.H): a best-effort, optional telemetry trail of what the
// recommender suggested versus what was actually chosen. Grounded on
// the corpus's internal/repository/interfaces.go (small, single-purpose
// repository interfaces backed by a gorm implementation under
// postgres/).
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AdvisoryLogEntry records one applied draft action alongside what the
// recommender suggested at that moment, for later offline analysis. It
// is pure telemetry: nothing in the advisor reads it back.
type AdvisoryLogEntry struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomCode         string    `gorm:"index"`
	TurnIndex        int
	Side             string
	ActionType       string
	ChosenHero       *string
	RecommendedHero  *string
	RecommendedScore *float64
	CreatedAt        time.Time
}

// AdvisoryLogRepository is the storage contract for advisory log
// entries. When no database is configured the repository is nil, and
// WriteAsync treats a nil repository as a no-op.
type AdvisoryLogRepository interface {
	Create(ctx context.Context, entry *AdvisoryLogEntry) error
}
