package controllers

import (
	"edumentor/database"
	"edumentor/middleware"
	"edumentor/models"
	courseModels "edumentor/models/course"

	"github.com/gofiber/fiber/v2"
)

// ContentWithCompletion represents content enriched with the caller's completion state
type ContentWithCompletion struct {
	courseModels.Content
	IsCompleted bool `json:"is_completed"`
}

// GetModuleContent lists a module's content items with per-student completion flags
func GetModuleContent(c *fiber.Ctx) error {
	// Retrieve userId from JWT middleware
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	// Check if user exists
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)

	// Access gate before anything else
	engine := newEngine()
	allowed, err := engine.CanAccess(userID, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check enrollment!", nil)
	}
	if !allowed {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	// Check module exists and belongs to the course
	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", moduleID, courseID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	// Get content in display order
	var contents []courseModels.Content
	if err := database.Database.Db.Where("module_id = ? AND is_deleted = ?", moduleID, false).
		Order("order_index asc").Find(&contents).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch content!", nil)
	}

	result := make([]ContentWithCompletion, len(contents))
	for i, content := range contents {
		result[i] = ContentWithCompletion{Content: content}

		// Check if completed by user
		var completion courseModels.ContentProgress
		if err := database.Database.Db.Where("student_id = ? AND content_id = ?", userID, content.ID).First(&completion).Error; err == nil {
			result[i].IsCompleted = true
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module content fetched successfully!", fiber.Map{
		"module":   module,
		"contents": result,
	})
}
