package models

import "gorm.io/gorm"

// Difficulty is the closed set of course difficulty levels
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Course is owned by an instructor. Listings default to active courses only;
// inactive courses are kept for historic enrollments rather than hard-deleted.
type Course struct {
	gorm.Model
	Title         string     `json:"title" gorm:"not null"`
	Description   string     `json:"description" gorm:"not null"`
	CategoryID    *uint      `json:"category" gorm:"index"`
	InstructorID  uint       `json:"instructor" gorm:"index;not null"`
	Difficulty    Difficulty `json:"difficulty" gorm:"type:varchar(20);default:'beginner'"`
	DurationWeeks uint       `json:"duration_weeks" gorm:"default:4"`
	Thumbnail     string     `json:"thumbnail" gorm:"default:''"`
	IsActive      bool       `json:"is_active" gorm:"default:true"`

	Category   *Category `json:"-"`
	Instructor User      `json:"-"`
	Lessons    []Lesson  `json:"-" gorm:"foreignKey:CourseID"`
}
