package models

import "gorm.io/gorm"

// LessonType is the closed set of lesson content types
type LessonType string

const (
	LessonVideo      LessonType = "video"
	LessonText       LessonType = "text"
	LessonQuiz       LessonType = "quiz"
	LessonAssignment LessonType = "assignment"
)

func (t LessonType) Valid() bool {
	switch t {
	case LessonVideo, LessonText, LessonQuiz, LessonAssignment:
		return true
	}
	return false
}

// Lesson belongs to exactly one course. No two lessons in the same course may
// share an order position, enforced by the composite unique index.
type Lesson struct {
	gorm.Model
	CourseID        uint       `json:"course" gorm:"uniqueIndex:idx_course_order;not null"`
	Title           string     `json:"title" gorm:"not null"`
	Content         string     `json:"content" gorm:"not null"`
	LessonType      LessonType `json:"lesson_type" gorm:"type:varchar(20);default:'text'"`
	Order           uint       `json:"order" gorm:"uniqueIndex:idx_course_order;default:0"`
	DurationMinutes uint       `json:"duration_minutes" gorm:"default:0"`

	Course Course `json:"-"`
}
