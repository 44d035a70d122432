package controllers

import (
	"edumentor/database"
	"edumentor/middleware"
	courseModels "edumentor/models/course"
	"edumentor/progress"
	"edumentor/utils"
	"encoding/json"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// MarkContentComplete records a completion event and cascades the module
// aggregation. Completing twice is reported as already_completed, not an error.
func MarkContentComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	contentID := c.Locals("contentID").(int)

	engine := newEngine()
	result, err := engine.MarkCompleted(userID, uint(contentID))
	if err != nil {
		return progressErrorResponse(c, err)
	}

	if result.AlreadyCompleted {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Content already marked as completed!", result)
	}

	finishCourseIfComplete(engine, userID, uint(courseID))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content marked as completed successfully!", result)
}

// SubmitAnswers stores a task/form submission and completes the content item
// on first submission
func SubmitAnswers(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	contentID := c.Locals("contentID").(int)

	if !json.Valid(c.Body()) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid JSON body!", nil)
	}

	engine := newEngine()
	result, err := engine.RecordAnswerSubmission(userID, uint(contentID), json.RawMessage(c.Body()))
	if err != nil {
		return progressErrorResponse(c, err)
	}

	if !result.AlreadyCompleted {
		finishCourseIfComplete(engine, userID, uint(courseID))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answers saved and progress updated!", result)
}

// GetModuleProgress returns the stored module aggregate for the caller
func GetModuleProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)

	engine := newEngine()
	allowed, err := engine.CanAccess(userID, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check enrollment!", nil)
	}
	if !allowed {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	snap, err := engine.GetModuleProgress(userID, uint(moduleID))
	if err != nil {
		return progressErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module progress fetched successfully!", snap)
}

// GetCourseProgress returns the derived course aggregate with the per-module breakdown
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	engine := newEngine()
	allowed, err := engine.CanAccess(userID, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check enrollment!", nil)
	}
	if !allowed {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	snap, err := engine.GetCourseProgress(userID, uint(courseID))
	if err != nil {
		return progressErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course progress fetched successfully!", snap)
}

// GetUserProgressOverview returns the caller's progress across all enrollments
func GetUserProgressOverview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	engine := newEngine()
	overview, err := engine.StudentOverview(userID)
	if err != nil {
		return progressErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress overview fetched successfully!", fiber.Map{
		"courses": overview,
		"total":   len(overview),
	})
}

// finishCourseIfComplete promotes the enrollment to COMPLETED when the course
// aggregate reaches 100% and notifies downstream consumers. Failures here are
// logged, not surfaced: the completion itself already succeeded.
func finishCourseIfComplete(engine *progress.Service, studentID, courseID uint) {
	snap, err := engine.GetCourseProgress(studentID, courseID)
	if err != nil {
		log.Printf("Error computing course progress for student %d course %d: %v", studentID, courseID, err)
		return
	}
	if !snap.Completed {
		return
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", studentID, courseID, false).First(&enrollment).Error; err != nil {
		log.Printf("Error fetching enrollment for student %d course %d: %v", studentID, courseID, err)
		return
	}
	if enrollment.Status == courseModels.EnrollmentCompleted {
		return
	}

	enrollment.Status = courseModels.EnrollmentCompleted
	if err := database.Database.Db.Save(&enrollment).Error; err != nil {
		log.Printf("Error updating enrollment status: %v", err)
		return
	}

	go utils.NotifyCourseCompletion(studentID, courseID, snap.Percentage)
	go utils.SendCompletionEmailFor(studentID, courseID)
}

// progressErrorResponse maps engine errors onto HTTP responses
func progressErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, progress.ErrNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	case errors.Is(err, progress.ErrUnauthenticated):
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	case errors.Is(err, progress.ErrNotEnrolled):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	default:
		log.Printf("Progress engine error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}
}
