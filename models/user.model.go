package models

import (
	"gorm.io/gorm"
)

// Role is the closed set of account roles. Role decides which relations a user
// may hold: only instructors own courses, only students own enrollments.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleInstructor Role = "instructor"
	RoleStudent    Role = "student"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleInstructor, RoleStudent:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	Email          string `json:"email" gorm:"unique;not null"`
	Password       string `json:"-" gorm:"not null"`
	FirstName      string `json:"first_name" gorm:"default:''"`
	LastName       string `json:"last_name" gorm:"default:''"`
	Role           Role   `json:"role" gorm:"type:varchar(20);default:'student'"`
	Phone          string `json:"phone" gorm:"default:''"`
	Bio            string `json:"bio" gorm:"default:''"`
	ProfilePicture string `json:"profile_picture" gorm:"default:''"`
}

// FullName joins first and last name for display fields
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
