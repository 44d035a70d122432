package course

import (
	"time"

	"gorm.io/gorm"
)

// ContentProgress records one student's completion of one content item.
// The composite unique index is the storage-level guarantee that at most
// one row exists per (content, student) pair, even under concurrent writes.
type ContentProgress struct {
	gorm.Model
	ContentID   uint      `json:"content_id" gorm:"uniqueIndex:idx_content_progress_pair;not null"`
	StudentID   uint      `json:"student_id" gorm:"uniqueIndex:idx_content_progress_pair;not null"`
	Completed   bool      `json:"completed" gorm:"default:true"`
	CompletedAt time.Time `json:"completed_at"`
	Weight      float64   `json:"weight" gorm:"default:1"` // snapshot of Content.Weight at completion time
}

// ModuleProgress is the stored module-level aggregate for one student.
// Created lazily on the first aggregation pass, updated in place after.
type ModuleProgress struct {
	gorm.Model
	ModuleID       uint      `json:"module_id" gorm:"uniqueIndex:idx_module_progress_pair;not null"`
	StudentID      uint      `json:"student_id" gorm:"uniqueIndex:idx_module_progress_pair;not null"`
	Percentage     float64   `json:"percentage" gorm:"default:0"`
	CompletedCount int       `json:"completed_count" gorm:"default:0"`
	TotalCount     int       `json:"total_count" gorm:"default:0"`
	Completed      bool      `json:"completed" gorm:"default:false"`
	LastUpdatedAt  time.Time `json:"last_updated_at"`
}
