package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"
)

// StringArray stores a []string as a JSON column so it works on both
// Postgres and the sqlite test database.
type StringArray []string

func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("failed to scan StringArray")
	}
}

type Store struct {
	ID          uint        `gorm:"primarykey" json:"id"`
	UserID      uint        `gorm:"index;not null" json:"user_id"`
	User        User        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"owner,omitempty"`
	Name        string      `gorm:"not null" json:"name"`
	Slug        string      `gorm:"uniqueIndex" json:"slug"`
	Description string      `gorm:"type:text" json:"description"`
	Address     string      `gorm:"type:text" json:"address"`
	Latitude    *float64    `gorm:"type:decimal(10,8)" json:"latitude"`
	Longitude   *float64    `gorm:"type:decimal(11,8)" json:"longitude"`
	Tags        StringArray `gorm:"type:text" json:"tags"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Store) TableName() string {
	return "stores"
}

// generateSlug builds a URL-safe identifier from the store name.
func generateSlug(name string) string {
	slug := strings.ToLower(name)

	reg := regexp.MustCompile(`[^\p{L}\p{N}-]+`)
	slug = reg.ReplaceAllString(slug, "-")

	reg = regexp.MustCompile(`-+`)
	slug = reg.ReplaceAllString(slug, "-")

	return strings.Trim(slug, "-")
}

// BeforeCreate assigns a unique slug when none is set.
func (s *Store) BeforeCreate(tx *gorm.DB) error {
	if s.Slug != "" {
		return nil
	}

	baseSlug := generateSlug(s.Name)
	slug := baseSlug

	counter := 1
	for {
		var count int64
		if err := tx.Model(&Store{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			break
		}
		counter++
		slug = fmt.Sprintf("%s-%d", baseSlug, counter)
	}

	s.Slug = slug
	return nil
}
