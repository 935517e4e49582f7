package model

import (
	"time"
)

// Heart marks a store as a favorite of a user.
type Heart struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_user_store_heart,unique" json:"user_id"`
	StoreID   uint      `gorm:"not null;index:idx_user_store_heart,unique" json:"store_id"`
	CreatedAt time.Time `json:"created_at"`

	Store Store `gorm:"foreignKey:StoreID" json:"store,omitempty"`
}

func (Heart) TableName() string {
	return "hearts"
}
