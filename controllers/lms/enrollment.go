package lmsController

import (
	"math"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/serializers"
	lmsValidator "lms/validators/lms"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func enrollmentPreloads(db *gorm.DB) *gorm.DB {
	return db.Preload("Student").Preload("Course.Instructor")
}

// scopedEnrollments narrows visibility by role: students see their own
// enrollments, instructors see enrollments in courses they teach, admins see
// everything
func scopedEnrollments(user *models.User) *gorm.DB {
	db := database.Database.Db
	switch user.Role {
	case models.RoleStudent:
		return db.Where("student_id = ?", user.ID)
	case models.RoleInstructor:
		return db.Where("course_id IN (?)", db.Model(&models.Course{}).
			Select("id").Where("instructor_id = ?", user.ID))
	}
	return db
}

func ListEnrollments(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []models.Enrollment
	if err := enrollmentPreloads(scopedEnrollments(user)).
		Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", serializers.NewEnrollmentListResponse(enrollments))
}

func GetEnrollment(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment id!", nil)
	}

	// Outside the caller's visible set reads as not found
	var enrollment models.Enrollment
	if err := enrollmentPreloads(scopedEnrollments(user)).
		Where("enrollments.id = ?", enrollmentID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment fetched successfully!", serializers.NewEnrollmentResponse(&enrollment))
}

// CreateEnrollment enrolls the calling student in a course. The student is
// always the caller, never taken from the payload.
func CreateEnrollment(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if !middleware.IsStudent(user.Role) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only students can enroll!", nil)
	}

	reqData, ok := c.Locals("validatedEnrollment").(*lmsValidator.EnrollmentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_active = ?", reqData.Course, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var existing models.Enrollment
	if err := database.Database.Db.Where("student_id = ? AND course_id = ? AND is_active = ?", user.ID, course.ID, true).
		First(&existing).Error; err == nil {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"course": "Already enrolled in this course!",
		})
	}

	enrollment := models.Enrollment{
		StudentID: user.ID,
		CourseID:  course.ID,
		Status:    models.StatusEnrolled,
		IsActive:  true,
	}
	if err := database.Database.Db.Create(&enrollment).Error; err != nil {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"course": "Already enrolled in this course!",
		})
	}

	enrollmentPreloads(database.Database.Db).First(&enrollment, enrollment.ID)
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", serializers.NewEnrollmentResponse(&enrollment))
}

// UpdateProgress writes a new progress percentage and derives the status from
// it. Authorized for the enrolled student or any instructor.
func UpdateProgress(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment id!", nil)
	}

	var enrollment models.Enrollment
	if err := enrollmentPreloads(scopedEnrollments(user)).
		Where("enrollments.id = ?", enrollmentID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if !middleware.IsEnrollmentOwner(user, &enrollment) && !middleware.IsInstructor(user.Role) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to update this enrollment!", nil)
	}

	reqData, ok := c.Locals("validatedProgress").(*lmsValidator.UpdateProgressRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Stored with two decimal places
	progress := math.Round(*reqData.ProgressPercentage*100) / 100
	enrollment.ApplyProgress(progress)

	if err := database.Database.Db.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", serializers.NewEnrollmentResponse(&enrollment))
}

// DeleteEnrollment removes an enrollment. Students may drop their own,
// instructors may remove enrollments in courses they teach, admins any.
func DeleteEnrollment(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment id!", nil)
	}

	var enrollment models.Enrollment
	if err := scopedEnrollments(user).Where("enrollments.id = ?", enrollmentID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	// Instructors only reach this point for enrollments in their own courses,
	// the scoped fetch above filters out everything else
	if !middleware.IsEnrollmentOwner(user, &enrollment) && !middleware.IsAdmin(user.Role) && !middleware.IsInstructor(user.Role) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to remove this enrollment!", nil)
	}

	if err := database.Database.Db.Delete(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove enrollment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment removed successfully!", nil)
}
