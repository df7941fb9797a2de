package serializers

import (
	"time"

	"lms/models"
)

type LessonResponse struct {
	ID              uint              `json:"id"`
	Course          uint              `json:"course"`
	Title           string            `json:"title"`
	Content         string            `json:"content"`
	LessonType      models.LessonType `json:"lesson_type"`
	Order           uint              `json:"order"`
	DurationMinutes uint              `json:"duration_minutes"`
	CreatedAt       time.Time         `json:"created_at"`
}

func NewLessonResponse(lesson *models.Lesson) LessonResponse {
	return LessonResponse{
		ID:              lesson.ID,
		Course:          lesson.CourseID,
		Title:           lesson.Title,
		Content:         lesson.Content,
		LessonType:      lesson.LessonType,
		Order:           lesson.Order,
		DurationMinutes: lesson.DurationMinutes,
		CreatedAt:       lesson.CreatedAt,
	}
}

func NewLessonListResponse(lessons []models.Lesson) []LessonResponse {
	out := make([]LessonResponse, len(lessons))
	for i := range lessons {
		out[i] = NewLessonResponse(&lessons[i])
	}
	return out
}
