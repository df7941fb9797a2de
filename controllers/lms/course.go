package lmsController

import (
	"strings"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/serializers"
	lmsValidator "lms/validators/lms"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func activeEnrollmentCount(courseID uint) int64 {
	var count int64
	database.Database.Db.Model(&models.Enrollment{}).
		Where("course_id = ? AND is_active = ?", courseID, true).
		Count(&count)
	return count
}

func buildCourseResponses(courses []models.Course) []serializers.CourseResponse {
	result := make([]serializers.CourseResponse, len(courses))
	for i := range courses {
		result[i] = serializers.NewCourseResponse(&courses[i], activeEnrollmentCount(courses[i].ID))
	}
	return result
}

func coursePreloads(db *gorm.DB) *gorm.DB {
	return db.Preload("Instructor").Preload("Category").
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			// "order" is a reserved word, keep it quoted
			return db.Order(`"order" asc`)
		})
}

func courseListFilters(c *fiber.Ctx, db *gorm.DB) *gorm.DB {
	db = db.Where("is_active = ?", true)

	if category := c.Query("category"); category != "" {
		db = db.Where("category_id = ?", category)
	}
	if difficulty := c.Query("difficulty"); difficulty != "" {
		db = db.Where("difficulty = ?", difficulty)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		db = db.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	return db
}

// ListCourses returns active courses, optionally filtered by category,
// difficulty and a case-insensitive search across title and description.
// When page or limit is sent the result is paginated and wrapped with the
// total count; without them every matching course is returned as a plain list.
func ListCourses(c *fiber.Ctx) error {
	db := courseListFilters(c, coursePreloads(database.Database.Db)).Order("created_at desc")

	page := c.QueryInt("page")
	limit := c.QueryInt("limit")

	if page <= 0 && limit <= 0 {
		var courses []models.Course
		if err := db.Find(&courses).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", buildCourseResponses(courses))
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit

	var total int64
	courseListFilters(c, database.Database.Db.Model(&models.Course{})).Count(&total)

	var courses []models.Course
	if err := db.Offset(offset).Limit(limit).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": buildCourseResponses(courses),
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

func GetCourse(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	var course models.Course
	if err := coursePreloads(database.Database.Db).
		Where("id = ? AND is_active = ?", courseID, true).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", serializers.NewCourseResponse(&course, activeEnrollmentCount(course.ID)))
}

// lookupInstructor enforces that the designated instructor is a user whose
// role is exactly instructor
func lookupInstructor(instructorID uint) (models.User, string) {
	var instructor models.User
	if err := database.Database.Db.First(&instructor, instructorID).Error; err != nil {
		return instructor, "Instructor not found!"
	}
	if !middleware.IsInstructor(instructor.Role) {
		return instructor, "Only instructors can be assigned to courses!"
	}
	return instructor, ""
}

func CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*lmsValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if _, msg := lookupInstructor(reqData.Instructor); msg != "" {
		return middleware.ValidationErrorResponse(c, map[string]string{"instructor": msg})
	}

	if reqData.Category != nil {
		if err := database.Database.Db.First(&models.Category{}, *reqData.Category).Error; err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"category": "Category not found!"})
		}
	}

	course := models.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		CategoryID:   reqData.Category,
		InstructorID: reqData.Instructor,
		Difficulty:   models.Difficulty(reqData.Difficulty),
		IsActive:     true,
	}
	if reqData.DurationWeeks != nil {
		course.DurationWeeks = *reqData.DurationWeeks
	} else {
		course.DurationWeeks = 4
	}
	if reqData.Thumbnail != nil {
		course.Thumbnail = *reqData.Thumbnail
	}
	if reqData.IsActive != nil {
		course.IsActive = *reqData.IsActive
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	coursePreloads(database.Database.Db).First(&course, course.ID)
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", serializers.NewCourseResponse(&course, 0))
}

// scopedCourse fetches a course for mutation. Instructors only see courses
// they teach, so a miss on someone else's course reads as "not found" and
// never leaks its existence.
func scopedCourse(user *models.User, courseID int) (*models.Course, bool) {
	db := database.Database.Db.Where("id = ? AND is_active = ?", courseID, true)
	if middleware.IsInstructor(user.Role) {
		db = db.Where("instructor_id = ?", user.ID)
	}

	var course models.Course
	if err := db.First(&course).Error; err != nil {
		return nil, false
	}
	return &course, true
}

func UpdateCourse(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*lmsValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, found := scopedCourse(user, courseID)
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Object-level ownership check on top of the queryset scoping
	if middleware.IsInstructor(user.Role) && !middleware.CanModifyCourse(user, course, false) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to modify this course!", nil)
	}

	if _, msg := lookupInstructor(reqData.Instructor); msg != "" {
		return middleware.ValidationErrorResponse(c, map[string]string{"instructor": msg})
	}

	if reqData.Category != nil {
		if err := database.Database.Db.First(&models.Category{}, *reqData.Category).Error; err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"category": "Category not found!"})
		}
	}

	course.Title = reqData.Title
	course.Description = reqData.Description
	course.CategoryID = reqData.Category
	course.InstructorID = reqData.Instructor
	course.Difficulty = models.Difficulty(reqData.Difficulty)
	if reqData.DurationWeeks != nil {
		course.DurationWeeks = *reqData.DurationWeeks
	}
	if reqData.Thumbnail != nil {
		course.Thumbnail = *reqData.Thumbnail
	}
	if reqData.IsActive != nil {
		course.IsActive = *reqData.IsActive
	}

	if err := database.Database.Db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	coursePreloads(database.Database.Db).First(course, course.ID)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", serializers.NewCourseResponse(course, activeEnrollmentCount(course.ID)))
}

// PatchCourse applies a partial update: only the fields present in the body
// are written. Scoping and ownership rules match UpdateCourse.
func PatchCourse(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	reqData, ok := c.Locals("validatedCoursePatch").(*lmsValidator.CoursePatchRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, found := scopedCourse(user, courseID)
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if middleware.IsInstructor(user.Role) && !middleware.CanModifyCourse(user, course, false) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to modify this course!", nil)
	}

	if reqData.Instructor != nil {
		if _, msg := lookupInstructor(*reqData.Instructor); msg != "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"instructor": msg})
		}
		course.InstructorID = *reqData.Instructor
	}

	if reqData.Category != nil {
		if err := database.Database.Db.First(&models.Category{}, *reqData.Category).Error; err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"category": "Category not found!"})
		}
		course.CategoryID = reqData.Category
	}

	if reqData.Title != nil {
		course.Title = *reqData.Title
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
	}
	if reqData.Difficulty != nil {
		course.Difficulty = models.Difficulty(*reqData.Difficulty)
	}
	if reqData.DurationWeeks != nil {
		course.DurationWeeks = *reqData.DurationWeeks
	}
	if reqData.Thumbnail != nil {
		course.Thumbnail = *reqData.Thumbnail
	}
	if reqData.IsActive != nil {
		course.IsActive = *reqData.IsActive
	}

	if err := database.Database.Db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	coursePreloads(database.Database.Db).First(course, course.ID)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", serializers.NewCourseResponse(course, activeEnrollmentCount(course.ID)))
}

// DeleteCourse removes a course with its lessons and enrollments
func DeleteCourse(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	course, found := scopedCourse(user, courseID)
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if middleware.IsInstructor(user.Role) && !middleware.CanModifyCourse(user, course, false) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to modify this course!", nil)
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", course.ID).Delete(&models.Lesson{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", course.ID).Delete(&models.Enrollment{}).Error; err != nil {
			return err
		}
		return tx.Delete(course).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// EnrollInCourse enrolls the calling student in an active course
func EnrollInCourse(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if !middleware.IsStudent(user.Role) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only students can enroll!", nil)
	}

	courseID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_active = ?", courseID, true).First(&course).Error; err != nil {
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

	// The unique index on (student_id, course_id) closes the race between the
	// existence check and the insert under concurrent identical requests
	if err := database.Database.Db.Create(&enrollment).Error; err != nil {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"course": "Already enrolled in this course!",
		})
	}

	database.Database.Db.Preload("Student").Preload("Course.Instructor").First(&enrollment, enrollment.ID)
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", serializers.NewEnrollmentResponse(&enrollment))
}

// MyCourses returns courses taught (instructor), actively enrolled courses
// (student), or every course otherwise
func MyCourses(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := coursePreloads(database.Database.Db).Order("created_at desc")

	var courses []models.Course
	switch user.Role {
	case models.RoleInstructor:
		db = db.Where("instructor_id = ?", user.ID)
	case models.RoleStudent:
		db = db.Where("id IN (?)", database.Database.Db.Model(&models.Enrollment{}).
			Select("course_id").
			Where("student_id = ? AND is_active = ?", user.ID, true))
	}

	if err := db.Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", buildCourseResponses(courses))
}
