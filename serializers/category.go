package serializers

import (
	"time"

	"lms/models"
)

type CategoryResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CoursesCount int64     `json:"courses_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewCategoryResponse renders a category; coursesCount is the number of active
// courses in it, counted by the caller
func NewCategoryResponse(category *models.Category, coursesCount int64) CategoryResponse {
	return CategoryResponse{
		ID:           category.ID,
		Name:         category.Name,
		Description:  category.Description,
		CoursesCount: coursesCount,
		CreatedAt:    category.CreatedAt,
	}
}
