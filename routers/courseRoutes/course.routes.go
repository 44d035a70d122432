package courseRoutes

import (
	controllers "edumentor/controllers/course"
	"edumentor/middleware"
	courseValidator "edumentor/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all student-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalog
	courseGroup.Get("/list", middleware.JWTMiddleware, controllers.GetAllCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, courseValidator.GetCourseDetail(), controllers.GetCourseDetails)

	// Enrollment
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, courseValidator.EnrollCourse(), controllers.EnrollInCourse)

	// Content viewing (for enrolled users)
	courseGroup.Get("/:course_id/module/:module_id/content", middleware.JWTMiddleware, courseValidator.ModuleContentList(), controllers.GetModuleContent)

	// Content completion and answer submission
	courseGroup.Post("/:course_id/content/:content_id/complete", middleware.JWTMiddleware, courseValidator.MarkContentComplete(), controllers.MarkContentComplete)
	courseGroup.Post("/:course_id/content/:content_id/submit", middleware.JWTMiddleware, courseValidator.SubmitAnswers(), controllers.SubmitAnswers)

	// Progress tracking
	courseGroup.Get("/:course_id/module/:module_id/progress", middleware.JWTMiddleware, courseValidator.GetModuleProgress(), controllers.GetModuleProgress)
	courseGroup.Get("/:course_id/progress", middleware.JWTMiddleware, courseValidator.GetCourseProgress(), controllers.GetCourseProgress)

	// Certificates
	courseGroup.Post("/:course_id/certificate/request", middleware.JWTMiddleware, courseValidator.RequestCertificate(), controllers.RequestCertificate)

	// Student dashboard
	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetEnrollments)
	userGroup.Get("/progress", middleware.JWTMiddleware, controllers.GetUserProgressOverview)
	userGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)
}
