package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`

	// LastManualReset is the lower (inclusive) bound of the current
	// tracking window. Meals created before it are excluded from the
	// daily status.
	LastManualReset time.Time `gorm:"not null" json:"lastManualReset"`
}
