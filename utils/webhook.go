package utils

import (
	"edumentor/config"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// NotifyCourseCompletion posts a course-completion event to the configured
// webhook so external systems (reporting, LMS integrations) stay in sync.
// Fire-and-forget: delivery failures are logged, never propagated.
func NotifyCourseCompletion(studentID, courseID uint, percentage float64) {
	url := config.AppConfig.CompletionWebhookURL
	if url == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"event":       "course.completed",
			"student_id":  studentID,
			"course_id":   courseID,
			"percentage":  percentage,
			"occurred_at": time.Now().UTC().Format(time.RFC3339),
		}).
		Post(url)
	if err != nil {
		log.Printf("Error posting completion webhook: %v", err)
		return
	}
	if resp.IsError() {
		log.Printf("Completion webhook returned %d", resp.StatusCode())
	}
}
