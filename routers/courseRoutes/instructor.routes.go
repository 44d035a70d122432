package courseRoutes

import (
	controllers "edumentor/controllers/course"
	"edumentor/middleware"
	courseValidator "edumentor/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupInstructorRoutes sets up the instructor-facing rollup routes
func SetupInstructorRoutes(app *fiber.App) {
	instructorGroup := app.Group("/instructor", middleware.JWTMiddleware, middleware.RequireRole("INSTRUCTOR"))

	instructorGroup.Get("/course/:course_id/dashboard", courseValidator.InstructorCourse(), controllers.GetInstructorDashboard)
	instructorGroup.Get("/course/:course_id/students", courseValidator.InstructorCourse(), controllers.GetCourseStudents)
}
