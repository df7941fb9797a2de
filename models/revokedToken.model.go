package models

import (
	"time"

	"gorm.io/gorm"
)

// RevokedToken blacklists a refresh token's JTI after logout
type RevokedToken struct {
	gorm.Model
	JTI       string    `json:"jti" gorm:"uniqueIndex;not null"`
	UserID    uint      `json:"user_id" gorm:"index"`
	ExpiresAt time.Time `json:"expires_at"`
}
