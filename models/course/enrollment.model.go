package course

import "gorm.io/gorm"

// Enrollment grants a student access to a course
type Enrollment struct {
	gorm.Model
	StudentID uint   `json:"student_id" gorm:"uniqueIndex:idx_enrollment_student_course;not null"`
	CourseID  uint   `json:"course_id" gorm:"uniqueIndex:idx_enrollment_student_course;not null"`
	Status    string `json:"status" gorm:"default:'ACTIVE'"` // ACTIVE, COMPLETED, CANCELLED
	IsDeleted bool   `gorm:"default:false"`
}

// Enrollment status values
const (
	EnrollmentActive    = "ACTIVE"
	EnrollmentCompleted = "COMPLETED"
	EnrollmentCancelled = "CANCELLED"
)
