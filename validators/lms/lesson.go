package lmsValidator

import (
	"strings"

	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

type LessonRequest struct {
	Course          uint   `json:"course"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	LessonType      string `json:"lesson_type"`
	Order           *uint  `json:"order"`
	DurationMinutes *uint  `json:"duration_minutes"`
}

func validateLessonBody(reqData *LessonRequest) map[string]string {
	errors := make(map[string]string)

	if reqData.Course == 0 {
		errors["course"] = "Course is required!"
	}

	if strings.TrimSpace(reqData.Title) == "" {
		errors["title"] = "Title is required!"
	} else if len(reqData.Title) > 200 {
		errors["title"] = "Title must be at most 200 characters long!"
	}

	if strings.TrimSpace(reqData.Content) == "" {
		errors["content"] = "Content is required!"
	}

	if reqData.LessonType == "" {
		reqData.LessonType = string(models.LessonText)
	}
	if !models.LessonType(reqData.LessonType).Valid() {
		errors["lesson_type"] = "Lesson type must be one of video, text, quiz, assignment!"
	}

	return errors
}

func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LessonRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validateLessonBody(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LessonRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validateLessonBody(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}
