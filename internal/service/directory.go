package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"student_intake/internal/metrics"
	"student_intake/internal/model"
	"student_intake/internal/repository"

	"go.uber.org/zap"
)

var ErrDirectoryUnavailable = errors.New("student directory is not available")

// Directory looks students up by canonical phone
type Directory interface {
	// Lookup returns (nil, nil) when the phone is unknown and
	// ErrDirectoryUnavailable when no roster is loaded.
	Lookup(ctx context.Context, phone string) (*model.Student, error)
}

// RosterDirectory is an in-memory Directory filled from a RosterSource
type RosterDirectory struct {
	logger *zap.Logger

	mu       sync.RWMutex
	source   repository.RosterSource
	byPhone  map[string]model.Student
	loadedAt time.Time
}

// NewRosterDirectory creates an empty directory. Call Reload before serving.
func NewRosterDirectory(source repository.RosterSource, logger *zap.Logger) *RosterDirectory {
	return &RosterDirectory{source: source, logger: logger}
}

// SetSource installs the roster source used by later reloads. It lets a
// source that was unreachable at startup be attached once it comes up.
func (d *RosterDirectory) SetSource(source repository.RosterSource) {
	d.mu.Lock()
	d.source = source
	d.mu.Unlock()
}

// Reload replaces the table with a fresh read of the source. On failure the
// previous table is kept.
func (d *RosterDirectory) Reload(ctx context.Context) error {
	d.mu.RLock()
	source := d.source
	d.mu.RUnlock()

	if source == nil {
		return fmt.Errorf("%w: no roster source configured", ErrDirectoryUnavailable)
	}
	students, err := source.LoadRoster(ctx)
	if err != nil {
		d.logger.Error("roster load failed", zap.Error(err))
		return fmt.Errorf("failed to load roster: %w", err)
	}
	d.Replace(students)
	return nil
}

// Replace swaps in students as the whole table. Duplicate phones keep the first row.
func (d *RosterDirectory) Replace(students []model.Student) {
	byPhone := make(map[string]model.Student, len(students))
	for _, s := range students {
		if _, dup := byPhone[s.Phone]; dup {
			d.logger.Warn("duplicate roster phone ignored", zap.String("phone", s.Phone))
			continue
		}
		byPhone[s.Phone] = s
	}

	d.mu.Lock()
	d.byPhone = byPhone
	d.loadedAt = time.Now()
	d.mu.Unlock()

	metrics.RosterSize.Set(float64(len(byPhone)))
	d.logger.Info("roster loaded", zap.Int("students", len(byPhone)))
}

// Lookup implements Directory
func (d *RosterDirectory) Lookup(_ context.Context, phone string) (*model.Student, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if len(d.byPhone) == 0 {
		return nil, ErrDirectoryUnavailable
	}
	s, ok := d.byPhone[phone]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// Available reports whether lookups can be answered
func (d *RosterDirectory) Available() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.byPhone) > 0
}

// Size returns the number of loaded students
func (d *RosterDirectory) Size() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.byPhone)
}

// LoadedAt returns when the current table was installed
func (d *RosterDirectory) LoadedAt() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loadedAt
}
