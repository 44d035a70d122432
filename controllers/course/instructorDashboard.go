package controllers

import (
	"edumentor/database"
	"edumentor/middleware"
	"edumentor/models"
	courseModels "edumentor/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetInstructorDashboard returns the per-course rollup: how many students
// completed, are in progress or never started, and the averages per module
func GetInstructorDashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	// Instructors only see their own courses
	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if course.InstructorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	engine := newEngine()
	dashboard, err := engine.InstructorDashboard(uint(courseID))
	if err != nil {
		return progressErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"course": fiber.Map{
			"id":    course.ID,
			"title": course.Title,
			"level": course.Level,
		},
		"dashboard": dashboard,
	})
}

// GetCourseStudents lists a course's enrolled students with their progress
func GetCourseStudents(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if course.InstructorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type StudentProgress struct {
		StudentID   uint    `json:"student_id"`
		StudentName string  `json:"student_name"`
		Email       string  `json:"email"`
		Status      string  `json:"status"`
		Percentage  float64 `json:"percentage"`
	}

	engine := newEngine()
	result := make([]StudentProgress, 0, len(enrollments))
	for _, e := range enrollments {
		var student models.User
		database.Database.Db.Select("name, email").Where("id = ?", e.StudentID).First(&student)

		snap, err := engine.GetCourseProgress(e.StudentID, uint(courseID))
		if err != nil {
			return progressErrorResponse(c, err)
		}

		result = append(result, StudentProgress{
			StudentID:   e.StudentID,
			StudentName: student.Name,
			Email:       student.Email,
			Status:      e.Status,
			Percentage:  snap.Percentage,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Students fetched successfully!", fiber.Map{
		"students": result,
		"total":    len(result),
	})
}
