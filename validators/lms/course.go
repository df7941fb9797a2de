package lmsValidator

import (
	"strings"

	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// CourseRequest is the write projection for course create/update. The student
// enrolling never goes through here; instructor assignment does and is checked
// against the user's actual role in the controller.
type CourseRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Category      *uint   `json:"category"`
	Instructor    uint    `json:"instructor"`
	Difficulty    string  `json:"difficulty"`
	DurationWeeks *uint   `json:"duration_weeks"`
	Thumbnail     *string `json:"thumbnail"`
	IsActive      *bool   `json:"is_active"`
}

func validateCourseBody(reqData *CourseRequest) map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(reqData.Title) == "" {
		errors["title"] = "Title is required!"
	} else if len(reqData.Title) > 200 {
		errors["title"] = "Title must be at most 200 characters long!"
	}

	if strings.TrimSpace(reqData.Description) == "" {
		errors["description"] = "Description is required!"
	}

	if reqData.Instructor == 0 {
		errors["instructor"] = "Instructor is required!"
	}

	if reqData.Difficulty == "" {
		reqData.Difficulty = string(models.DifficultyBeginner)
	}
	if !models.Difficulty(reqData.Difficulty).Valid() {
		errors["difficulty"] = "Difficulty must be one of beginner, intermediate, advanced!"
	}

	return errors
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validateCourseBody(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validateCourseBody(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// CoursePatchRequest is the partial write projection: absent fields stay
// untouched
type CoursePatchRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Category      *uint   `json:"category"`
	Instructor    *uint   `json:"instructor"`
	Difficulty    *string `json:"difficulty"`
	DurationWeeks *uint   `json:"duration_weeks"`
	Thumbnail     *string `json:"thumbnail"`
	IsActive      *bool   `json:"is_active"`
}

func PatchCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CoursePatchRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil {
			if strings.TrimSpace(*reqData.Title) == "" {
				errors["title"] = "Title cannot be empty!"
			} else if len(*reqData.Title) > 200 {
				errors["title"] = "Title must be at most 200 characters long!"
			}
		}
		if reqData.Description != nil && strings.TrimSpace(*reqData.Description) == "" {
			errors["description"] = "Description cannot be empty!"
		}
		if reqData.Instructor != nil && *reqData.Instructor == 0 {
			errors["instructor"] = "Instructor is required!"
		}
		if reqData.Difficulty != nil && !models.Difficulty(*reqData.Difficulty).Valid() {
			errors["difficulty"] = "Difficulty must be one of beginner, intermediate, advanced!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCoursePatch", reqData)
		return c.Next()
	}
}
