package lmsRoutes

import (
	lmsController "lms/controllers/lms"
	"lms/middleware"
	"lms/models"
	lmsValidator "lms/validators/lms"

	"github.com/gofiber/fiber/v2"
)

// SetupLmsRoutes sets up catalog, enrollment and reporting routes. Everything
// here requires a valid bearer token.
func SetupLmsRoutes(app *fiber.App) {
	lmsGroup := app.Group("/api/lms", middleware.JWTMiddleware)

	staffOnly := middleware.RequireRoles(models.RoleAdmin, models.RoleInstructor)
	instructorOnly := middleware.RequireRoles(models.RoleInstructor)

	// Categories
	categories := lmsGroup.Group("/categories")
	categories.Get("/", lmsController.ListCategories)
	categories.Post("/", staffOnly, lmsValidator.CreateCategory(), lmsController.CreateCategory)
	categories.Get("/:id", lmsController.GetCategory)
	categories.Put("/:id", staffOnly, lmsValidator.CreateCategory(), lmsController.UpdateCategory)
	categories.Delete("/:id", staffOnly, lmsController.DeleteCategory)

	// Courses (my_courses must precede the :id routes)
	courses := lmsGroup.Group("/courses")
	courses.Get("/", lmsController.ListCourses)
	courses.Get("/my_courses", lmsController.MyCourses)
	courses.Post("/", staffOnly, lmsValidator.CreateCourse(), lmsController.CreateCourse)
	courses.Get("/:id", lmsController.GetCourse)
	courses.Put("/:id", staffOnly, lmsValidator.UpdateCourse(), lmsController.UpdateCourse)
	courses.Patch("/:id", staffOnly, lmsValidator.PatchCourse(), lmsController.PatchCourse)
	courses.Delete("/:id", staffOnly, lmsController.DeleteCourse)
	courses.Post("/:id/enroll", lmsController.EnrollInCourse)

	// Enrollments
	enrollments := lmsGroup.Group("/enrollments")
	enrollments.Get("/", lmsController.ListEnrollments)
	enrollments.Post("/", lmsValidator.CreateEnrollment(), lmsController.CreateEnrollment)
	enrollments.Get("/:id", lmsController.GetEnrollment)
	enrollments.Post("/:id/update_progress", lmsValidator.UpdateProgress(), lmsController.UpdateProgress)
	enrollments.Delete("/:id", lmsController.DeleteEnrollment)

	// Lessons: reads for any role, mutations for instructors
	lessons := lmsGroup.Group("/lessons")
	lessons.Get("/", lmsController.ListLessons)
	lessons.Post("/", instructorOnly, lmsValidator.CreateLesson(), lmsController.CreateLesson)
	lessons.Get("/:id", lmsController.GetLesson)
	lessons.Put("/:id", instructorOnly, lmsValidator.UpdateLesson(), lmsController.UpdateLesson)
	lessons.Delete("/:id", instructorOnly, lmsController.DeleteLesson)

	// Reporting
	lmsGroup.Get("/dashboard/stats", lmsController.DashboardStats)
	lmsGroup.Get("/reports/admin", middleware.RequireRoles(models.RoleAdmin), lmsController.AdminReports)
}
