package progress

import (
	courseModels "edumentor/models/course"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ModuleSnapshot is the module-level aggregate exposed to callers
type ModuleSnapshot struct {
	ModuleID       uint    `json:"module_id"`
	Percentage     float64 `json:"percentage"`
	CompletedCount int     `json:"completed_count"`
	TotalCount     int     `json:"total_count"`
	Completed      bool    `json:"completed"`
}

// RecomputeModule rebuilds the stored module aggregate for one student from
// the current ContentProgress rows. Safe to call redundantly: it is a pure
// function of current state plus an idempotent upsert.
func (s *Service) RecomputeModule(moduleID, studentID uint) (*ModuleSnapshot, error) {
	var snap *ModuleSnapshot
	err := s.db.Transaction(func(tx *gorm.DB) error {
		row, err := recomputeModule(NewStore(tx), moduleID, studentID)
		if err != nil {
			return err
		}
		snap = snapshotOf(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// GetModuleProgress returns the stored aggregate for a (module, student)
// pair, or a zero-valued snapshot when no aggregation pass has run yet.
func (s *Service) GetModuleProgress(studentID, moduleID uint) (*ModuleSnapshot, error) {
	store := s.store()

	if _, err := store.ModuleByID(moduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	row, err := store.ModuleProgressFor(moduleID, studentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		total, cerr := store.ContentCount(moduleID)
		if cerr != nil {
			return nil, cerr
		}
		return &ModuleSnapshot{ModuleID: moduleID, TotalCount: int(total)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch module progress: %w", err)
	}
	return snapshotOf(row), nil
}

func snapshotOf(row *courseModels.ModuleProgress) *ModuleSnapshot {
	return &ModuleSnapshot{
		ModuleID:       row.ModuleID,
		Percentage:     row.Percentage,
		CompletedCount: row.CompletedCount,
		TotalCount:     row.TotalCount,
		Completed:      row.Completed,
	}
}

// recomputeModule counts fresh, derives the percentage and upserts the
// (module, student) aggregate. Every content item counts equally; a module
// without content reports 0, never a division by zero.
func recomputeModule(store *Store, moduleID, studentID uint) (*courseModels.ModuleProgress, error) {
	total, err := store.ContentCount(moduleID)
	if err != nil {
		return nil, err
	}
	completed, err := store.CompletedCount(moduleID, studentID)
	if err != nil {
		return nil, err
	}

	percentage := float64(0)
	if total > 0 {
		percentage = round2(float64(completed) * 100 / float64(total))
	}

	row, err := store.ModuleProgressFor(moduleID, studentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = &courseModels.ModuleProgress{
			ModuleID:  moduleID,
			StudentID: studentID,
		}
	} else if err != nil {
		return nil, fmt.Errorf("fetch module progress: %w", err)
	}

	row.Percentage = percentage
	row.CompletedCount = int(completed)
	row.TotalCount = int(total)
	row.Completed = percentage >= 100
	row.LastUpdatedAt = time.Now().UTC()

	if err := store.db.Save(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Concurrent first pass created the row; retry as an update
			existing, ferr := store.ModuleProgressFor(moduleID, studentID)
			if ferr != nil {
				return nil, fmt.Errorf("fetch module progress after conflict: %w", ferr)
			}
			existing.Percentage = row.Percentage
			existing.CompletedCount = row.CompletedCount
			existing.TotalCount = row.TotalCount
			existing.Completed = row.Completed
			existing.LastUpdatedAt = row.LastUpdatedAt
			if serr := store.db.Save(existing).Error; serr != nil {
				return nil, fmt.Errorf("save module progress: %w", serr)
			}
			return existing, nil
		}
		return nil, fmt.Errorf("save module progress: %w", err)
	}
	return row, nil
}
