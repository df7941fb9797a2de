package models

import (
	"time"

	"gorm.io/gorm"
)

// EnrollmentStatus is the closed set of enrollment states.
// enrolled -> in_progress -> completed; dropped is set administratively.
type EnrollmentStatus string

const (
	StatusEnrolled   EnrollmentStatus = "enrolled"
	StatusInProgress EnrollmentStatus = "in_progress"
	StatusCompleted  EnrollmentStatus = "completed"
	StatusDropped    EnrollmentStatus = "dropped"
)

func (s EnrollmentStatus) Valid() bool {
	switch s {
	case StatusEnrolled, StatusInProgress, StatusCompleted, StatusDropped:
		return true
	}
	return false
}

// Enrollment pairs a student with a course. The composite unique index is the
// authority on the one-row-per-(student, course) invariant; the handler-level
// existence check only produces the friendlier error message.
type Enrollment struct {
	gorm.Model
	StudentID          uint             `json:"student" gorm:"uniqueIndex:idx_student_course;not null"`
	CourseID           uint             `json:"course" gorm:"uniqueIndex:idx_student_course;not null"`
	Status             EnrollmentStatus `json:"status" gorm:"type:varchar(20);default:'enrolled'"`
	ProgressPercentage float64          `json:"progress_percentage" gorm:"default:0"`
	CompletedAt        *time.Time       `json:"completed_at"`
	IsActive           bool             `json:"is_active" gorm:"default:true"`

	Student User   `json:"-"`
	Course  Course `json:"-"`
}

// ApplyProgress writes a progress percentage and derives the resulting status.
// Progress 0 leaves the current status untouched.
func (e *Enrollment) ApplyProgress(progress float64) {
	e.ProgressPercentage = progress
	if progress >= 100 {
		e.Status = StatusCompleted
		if e.CompletedAt == nil {
			now := time.Now()
			e.CompletedAt = &now
		}
	} else if progress > 0 {
		e.Status = StatusInProgress
	}
}
