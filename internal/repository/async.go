package repository

import (
	"context"
	"log"
	"time"
)

// WriteAsync persists entry on a background goroutine with a bounded
// timeout, exactly like the corpus's recordDraftAction: callers never
// wait on the write, and a failure is logged rather than surfaced,
// since the advisory log is pure telemetry. No-op if repo is nil (no
// DATABASE_URL configured).
func WriteAsync(repo AdvisoryLogRepository, entry *AdvisoryLogEntry) {
	if repo == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := repo.Create(ctx, entry); err != nil {
			log.Printf("ERROR [repository.WriteAsync]: room=%s turn=%d: %v", entry.RoomCode, entry.TurnIndex, err)
		}
	}()
}
