package utils

import (
	"edumentor/config"
	"edumentor/database"
	courseModels "edumentor/models/course"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// CertificateURL builds the public document URL for a verification code
func CertificateURL(verificationCode string) string {
	return config.AppConfig.CertificateBase + "/" + verificationCode + ".pdf"
}

// IssuePendingCertificates scans completed enrollments that have no
// certificate yet and issues one. Safe to run repeatedly: the unique
// (student, course) index makes double-issue a no-op.
func IssuePendingCertificates() {
	db := database.Database.Db

	var enrollments []courseModels.Enrollment
	if err := db.Where("status = ? AND is_deleted = ?", courseModels.EnrollmentCompleted, false).
		Find(&enrollments).Error; err != nil {
		log.Printf("Error fetching completed enrollments: %v", err)
		return
	}

	issued := 0
	for _, e := range enrollments {
		var existing courseModels.Certificate
		if err := db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", e.StudentID, e.CourseID, false).
			First(&existing).Error; err == nil {
			continue
		}

		cert := courseModels.Certificate{
			StudentID:        e.StudentID,
			CourseID:         e.CourseID,
			VerificationCode: uuid.NewString(),
			IssuedAt:         time.Now().UTC(),
		}
		cert.CertificateURL = CertificateURL(cert.VerificationCode)

		if err := db.Create(&cert).Error; err != nil {
			log.Printf("Error issuing certificate for student %d course %d: %v", e.StudentID, e.CourseID, err)
			continue
		}
		issued++
		go SendCompletionEmailFor(e.StudentID, e.CourseID)
	}

	if issued > 0 {
		log.Printf("Certificate scheduler issued %d certificate(s)", issued)
	}
}

// InitializeCertificateScheduler starts the periodic certificate issuer
func InitializeCertificateScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc(config.AppConfig.CertificateCron, IssuePendingCertificates); err != nil {
		log.Printf("Error scheduling certificate issuer: %v", err)
		return c
	}

	c.Start()
	log.Printf("Certificate scheduler started (%s)", config.AppConfig.CertificateCron)
	return c
}
