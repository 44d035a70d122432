package utils

import (
	"edumentor/config"
	"edumentor/database"
	"edumentor/models"
	courseModels "edumentor/models/course"
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// SendEmail sends a generic HTML email through the configured SMTP account
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: eduMentor <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	return nil
}

// SendEnrollmentEmail confirms a new enrollment to the student
func SendEnrollmentEmail(email, name, courseTitle string) {
	body := fmt.Sprintf(`
		<h2>Welcome to %s!</h2>
		<p>Hi %s,</p>
		<p>Your enrollment is confirmed. You can start learning right away from your dashboard.</p>
	`, courseTitle, name)

	if err := SendEmail([]string{email}, "Enrollment confirmed: "+courseTitle, body); err != nil {
		log.Printf("Error sending enrollment email to %s: %v", email, err)
	}
}

// SendCompletionEmailFor congratulates a student on finishing a course
func SendCompletionEmailFor(studentID, courseID uint) {
	var student models.User
	if err := database.Database.Db.Where("id = ?", studentID).First(&student).Error; err != nil {
		log.Printf("Error fetching student %d for completion email: %v", studentID, err)
		return
	}
	var course courseModels.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		log.Printf("Error fetching course %d for completion email: %v", courseID, err)
		return
	}

	body := fmt.Sprintf(`
		<h2>Congratulations, %s!</h2>
		<p>You have completed <strong>%s</strong>.</p>
		<p>Your certificate is now available from your dashboard.</p>
	`, student.Name, course.Title)

	if err := SendEmail([]string{student.Email}, "Course completed: "+course.Title, body); err != nil {
		log.Printf("Error sending completion email to %s: %v", student.Email, err)
	}
}
