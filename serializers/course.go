package serializers

import (
	"time"

	"lms/models"
)

// CourseResponse is the read projection of a course with denormalized
// instructor and category display fields
type CourseResponse struct {
	ID              uint              `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Category        *uint             `json:"category"`
	CategoryName    string            `json:"category_name"`
	Instructor      uint              `json:"instructor"`
	InstructorName  string            `json:"instructor_name"`
	InstructorEmail string            `json:"instructor_email"`
	Difficulty      models.Difficulty `json:"difficulty"`
	DurationWeeks   uint              `json:"duration_weeks"`
	Thumbnail       string            `json:"thumbnail"`
	IsActive        bool              `json:"is_active"`
	EnrolledCount   int64             `json:"enrolled_count"`
	Lessons         []LessonResponse  `json:"lessons"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// NewCourseResponse renders a course. Instructor, Category and Lessons must be
// preloaded; enrolledCount is the active-enrollment count for the course.
func NewCourseResponse(course *models.Course, enrolledCount int64) CourseResponse {
	resp := CourseResponse{
		ID:              course.ID,
		Title:           course.Title,
		Description:     course.Description,
		Category:        course.CategoryID,
		Instructor:      course.InstructorID,
		InstructorName:  course.Instructor.FullName(),
		InstructorEmail: course.Instructor.Email,
		Difficulty:      course.Difficulty,
		DurationWeeks:   course.DurationWeeks,
		Thumbnail:       course.Thumbnail,
		IsActive:        course.IsActive,
		EnrolledCount:   enrolledCount,
		Lessons:         NewLessonListResponse(course.Lessons),
		CreatedAt:       course.CreatedAt,
		UpdatedAt:       course.UpdatedAt,
	}
	if course.Category != nil {
		resp.CategoryName = course.Category.Name
	}
	return resp
}
