package service

import (
	"context"
	"fmt"

	"student_intake/internal/repository"

	"go.uber.org/zap"
)

// ImportRoster copies every student read from src into dst and returns how
// many rows were written. Rows missing a phone or a name are skipped.
func ImportRoster(ctx context.Context, src repository.RosterSource, dst repository.RosterWriter, logger *zap.Logger) (int, error) {
	students, err := src.LoadRoster(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read roster for import: %w", err)
	}

	written := 0
	for i := range students {
		s := students[i]
		if s.Phone == "" || s.Name == "" {
			logger.Warn("skipping incomplete roster row", zap.String("phone", s.Phone))
			continue
		}
		if err := dst.Upsert(ctx, &s); err != nil {
			return written, fmt.Errorf("failed to import %s: %w", s.Phone, err)
		}
		written++
	}

	logger.Info("roster imported", zap.Int("students", written))
	return written, nil
}
