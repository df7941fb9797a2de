package serializers

import (
	"time"

	"lms/models"
)

// EnrollmentResponse is the read projection of an enrollment with denormalized
// student and course display fields
type EnrollmentResponse struct {
	ID                 uint                    `json:"id"`
	Student            uint                    `json:"student"`
	StudentName        string                  `json:"student_name"`
	StudentEmail       string                  `json:"student_email"`
	Course             uint                    `json:"course"`
	CourseTitle        string                  `json:"course_title"`
	CourseInstructor   string                  `json:"course_instructor"`
	Status             models.EnrollmentStatus `json:"status"`
	ProgressPercentage float64                 `json:"progress_percentage"`
	EnrolledAt         time.Time               `json:"enrolled_at"`
	CompletedAt        *time.Time              `json:"completed_at"`
	IsActive           bool                    `json:"is_active"`
}

// NewEnrollmentResponse renders an enrollment. Student, Course and
// Course.Instructor must be preloaded.
func NewEnrollmentResponse(enrollment *models.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:                 enrollment.ID,
		Student:            enrollment.StudentID,
		StudentName:        enrollment.Student.FullName(),
		StudentEmail:       enrollment.Student.Email,
		Course:             enrollment.CourseID,
		CourseTitle:        enrollment.Course.Title,
		CourseInstructor:   enrollment.Course.Instructor.FullName(),
		Status:             enrollment.Status,
		ProgressPercentage: enrollment.ProgressPercentage,
		EnrolledAt:         enrollment.CreatedAt,
		CompletedAt:        enrollment.CompletedAt,
		IsActive:           enrollment.IsActive,
	}
}

func NewEnrollmentListResponse(enrollments []models.Enrollment) []EnrollmentResponse {
	out := make([]EnrollmentResponse, len(enrollments))
	for i := range enrollments {
		out[i] = NewEnrollmentResponse(&enrollments[i])
	}
	return out
}
