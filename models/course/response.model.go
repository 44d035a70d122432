package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ContentResponse stores a student's submitted answers for a task/form
// content item. One document per (content, student) pair, so concurrent
// submissions from different students never touch the same row.
type ContentResponse struct {
	gorm.Model
	ContentID uint           `json:"content_id" gorm:"uniqueIndex:idx_content_response_pair;not null"`
	StudentID uint           `json:"student_id" gorm:"uniqueIndex:idx_content_response_pair;not null"`
	Answers   datatypes.JSON `json:"answers"` // JSON array, newest submission appended last
}
