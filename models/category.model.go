package models

import "gorm.io/gorm"

// Category groups courses. Deleting a category detaches its courses
// (category_id is set to NULL), it never deletes them.
type Category struct {
	gorm.Model
	Name        string `json:"name" gorm:"unique;not null"`
	Description string `json:"description" gorm:"default:''"`

	Courses []Course `json:"-" gorm:"foreignKey:CategoryID"`
}
