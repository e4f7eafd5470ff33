package model

import (
	"time"

	"gorm.io/gorm"
)

// User struct
type User struct {
	gorm.Model
	Username string    `gorm:"uniqueIndex;not null" json:"username"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `json:"role"`
	Status   string    `gorm:"not null;default:offline" json:"status"`
	LastSeen time.Time `json:"last_seen"`

	Otp_enabled bool `gorm:"default:false;"`
	Otp_secret  string
}

const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)
