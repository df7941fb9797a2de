package lmsController

import (
	"sort"

	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

func countWhere(model interface{}, query string, args ...interface{}) int64 {
	var count int64
	database.Database.Db.Model(model).Where(query, args...).Count(&count)
	return count
}

// DashboardStats returns aggregate counts keyed by the caller's role
func DashboardStats(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db
	var stats fiber.Map

	switch user.Role {
	case models.RoleAdmin:
		var totalUsers int64
		db.Model(&models.User{}).Count(&totalUsers)

		stats = fiber.Map{
			"total_users":       totalUsers,
			"total_students":    countWhere(&models.User{}, "role = ?", models.RoleStudent),
			"total_instructors": countWhere(&models.User{}, "role = ?", models.RoleInstructor),
			"total_courses":     countWhere(&models.Course{}, "is_active = ?", true),
			"total_enrollments": countWhere(&models.Enrollment{}, "is_active = ?", true),
			"active_enrollments": countWhere(&models.Enrollment{},
				"status IN ? AND is_active = ?",
				[]models.EnrollmentStatus{models.StatusEnrolled, models.StatusInProgress}, true),
			"completed_enrollments": countWhere(&models.Enrollment{}, "status = ?", models.StatusCompleted),
		}

	case models.RoleInstructor:
		taught := db.Model(&models.Course{}).Select("id").Where("instructor_id = ?", user.ID)

		var totalStudents int64
		db.Model(&models.Enrollment{}).
			Where("course_id IN (?) AND is_active = ?", taught, true).
			Distinct("student_id").Count(&totalStudents)

		stats = fiber.Map{
			"total_courses": countWhere(&models.Course{}, "instructor_id = ?", user.ID),
			"total_students": totalStudents,
			"total_enrollments": countWhere(&models.Enrollment{},
				"course_id IN (?) AND is_active = ?", taught, true),
			"active_enrollments": countWhere(&models.Enrollment{},
				"course_id IN (?) AND status IN ? AND is_active = ?",
				taught, []models.EnrollmentStatus{models.StatusEnrolled, models.StatusInProgress}, true),
		}

	default: // student
		var avgProgress float64
		db.Model(&models.Enrollment{}).
			Where("student_id = ? AND is_active = ?", user.ID, true).
			Select("COALESCE(AVG(progress_percentage), 0)").
			Scan(&avgProgress)

		stats = fiber.Map{
			"enrolled_courses": countWhere(&models.Enrollment{}, "student_id = ? AND is_active = ?", user.ID, true),
			"in_progress": countWhere(&models.Enrollment{},
				"student_id = ? AND status = ? AND is_active = ?", user.ID, models.StatusInProgress, true),
			"completed": countWhere(&models.Enrollment{},
				"student_id = ? AND status = ? AND is_active = ?", user.ID, models.StatusCompleted, true),
			"average_progress": avgProgress,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", stats)
}

type categoryReport struct {
	Name        string `json:"name"`
	CourseCount int64  `json:"course_count"`
}

type topCourse struct {
	Title           string `json:"title"`
	EnrollmentCount int64  `json:"enrollment_count"`
}

// AdminReports is the admin-only extended report
func AdminReports(c *fiber.Ctx) error {
	db := database.Database.Db

	usersByRole := fiber.Map{
		"admin":      countWhere(&models.User{}, "role = ?", models.RoleAdmin),
		"instructor": countWhere(&models.User{}, "role = ?", models.RoleInstructor),
		"student":    countWhere(&models.User{}, "role = ?", models.RoleStudent),
	}

	var categories []models.Category
	db.Order("name asc").Find(&categories)
	coursesByCategory := make([]categoryReport, len(categories))
	for i, category := range categories {
		coursesByCategory[i] = categoryReport{
			Name:        category.Name,
			CourseCount: activeCourseCount(category.ID),
		}
	}

	var totalEnrollments int64
	db.Model(&models.Enrollment{}).Count(&totalEnrollments)
	enrollmentTrends := fiber.Map{
		"total":     totalEnrollments,
		"active":    countWhere(&models.Enrollment{}, "is_active = ?", true),
		"completed": countWhere(&models.Enrollment{}, "status = ?", models.StatusCompleted),
	}

	// Courses in insertion order so that the stable sort breaks enrollment-count
	// ties by creation order
	var courses []models.Course
	db.Order("created_at asc, id asc").Find(&courses)

	topCourses := make([]topCourse, len(courses))
	for i := range courses {
		topCourses[i] = topCourse{
			Title:           courses[i].Title,
			EnrollmentCount: activeEnrollmentCount(courses[i].ID),
		}
	}
	sort.SliceStable(topCourses, func(i, j int) bool {
		return topCourses[i].EnrollmentCount > topCourses[j].EnrollmentCount
	})
	if len(topCourses) > 5 {
		topCourses = topCourses[:5]
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Admin reports fetched successfully!", fiber.Map{
		"users_by_role":       usersByRole,
		"courses_by_category": coursesByCategory,
		"enrollment_trends":   enrollmentTrends,
		"top_courses":         topCourses,
	})
}
