package lmsController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/serializers"
	lmsValidator "lms/validators/lms"

	"github.com/gofiber/fiber/v2"
)

// ListLessons returns lessons, optionally filtered to a single course
func ListLessons(c *fiber.Ctx) error {
	db := database.Database.Db.Order(`course_id asc, "order" asc`)

	if course := c.Query("course"); course != "" {
		db = db.Where("course_id = ?", course)
	}

	var lessons []models.Lesson
	if err := db.Find(&lessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", serializers.NewLessonListResponse(lessons))
}

func GetLesson(c *fiber.Ctx) error {
	lessonID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
	}

	var lesson models.Lesson
	if err := database.Database.Db.First(&lesson, lessonID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	lessonResp := serializers.NewLessonResponse(&lesson)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", lessonResp)
}

func CreateLesson(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLesson").(*lmsValidator.LessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course models.Course
	if err := database.Database.Db.First(&course, reqData.Course).Error; err != nil {
		return middleware.ValidationErrorResponse(c, map[string]string{"course": "Course not found!"})
	}

	order := uint(0)
	if reqData.Order != nil {
		order = *reqData.Order
	}

	// No two lessons in a course may share an order position
	var existing models.Lesson
	if err := database.Database.Db.Where(`course_id = ? AND "order" = ?`, course.ID, order).
		First(&existing).Error; err == nil {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"order": "A lesson with this order already exists in the course!",
		})
	}

	lesson := models.Lesson{
		CourseID:   course.ID,
		Title:      reqData.Title,
		Content:    reqData.Content,
		LessonType: models.LessonType(reqData.LessonType),
		Order:      order,
	}
	if reqData.DurationMinutes != nil {
		lesson.DurationMinutes = *reqData.DurationMinutes
	}

	// Unique index on (course_id, "order") backs the check
	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"order": "A lesson with this order already exists in the course!",
		})
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", serializers.NewLessonResponse(&lesson))
}

func UpdateLesson(c *fiber.Ctx) error {
	lessonID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*lmsValidator.LessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var lesson models.Lesson
	if err := database.Database.Db.First(&lesson, lessonID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var course models.Course
	if err := database.Database.Db.First(&course, reqData.Course).Error; err != nil {
		return middleware.ValidationErrorResponse(c, map[string]string{"course": "Course not found!"})
	}

	order := lesson.Order
	if reqData.Order != nil {
		order = *reqData.Order
	}

	var existing models.Lesson
	if err := database.Database.Db.Where(`course_id = ? AND "order" = ? AND id <> ?`, course.ID, order, lesson.ID).
		First(&existing).Error; err == nil {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"order": "A lesson with this order already exists in the course!",
		})
	}

	lesson.CourseID = course.ID
	lesson.Title = reqData.Title
	lesson.Content = reqData.Content
	lesson.LessonType = models.LessonType(reqData.LessonType)
	lesson.Order = order
	if reqData.DurationMinutes != nil {
		lesson.DurationMinutes = *reqData.DurationMinutes
	}

	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", serializers.NewLessonResponse(&lesson))
}

func DeleteLesson(c *fiber.Ctx) error {
	lessonID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
	}

	var lesson models.Lesson
	if err := database.Database.Db.First(&lesson, lessonID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if err := database.Database.Db.Delete(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}
