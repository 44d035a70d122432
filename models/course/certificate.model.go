package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate represents an issued certificate for course completion
type Certificate struct {
	gorm.Model
	StudentID        uint      `json:"student_id" gorm:"uniqueIndex:idx_certificate_student_course;not null"`
	CourseID         uint      `json:"course_id" gorm:"uniqueIndex:idx_certificate_student_course;not null"`
	VerificationCode string    `json:"verification_code" gorm:"unique"`
	CertificateURL   string    `json:"certificate_url"`
	IssuedAt         time.Time `json:"issued_at"`
	IsDeleted        bool      `gorm:"default:false"`
}
