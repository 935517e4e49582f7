package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Name         string `gorm:"not null" json:"name"`

	// Password recovery state. Both fields are set together when a reset is
	// requested and cleared together when the token is redeemed or swept.
	// At most one live token exists per user; a new request overwrites the
	// previous one.
	ResetPasswordToken   *string    `gorm:"index" json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Stores []Store `gorm:"foreignKey:UserID" json:"stores,omitempty"`
	Hearts []Heart `gorm:"foreignKey:UserID" json:"hearts,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// BeforeSave normalizes the email so lookups are case-insensitive.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}
