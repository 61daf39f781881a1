package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a platform account stored in the database
type User struct {
	ID             string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name           string    `json:"name" gorm:"type:varchar(100)"`
	Email          string    `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Phone          string    `json:"phone" gorm:"type:varchar(20)"`
	Country        string    `json:"country" gorm:"type:varchar(100)"`
	City           string    `json:"city" gorm:"type:varchar(100)"`
	Role           UserRole  `json:"role" gorm:"type:varchar(20);index"`
	ProfilePicture string    `json:"profile_picture"`
	OrphanageID    *string   `json:"orphanage_id" gorm:"type:varchar(36);index"`
	PasswordHash   string    `json:"-" gorm:"type:varchar(255)"`
	CreatedAt      time.Time `json:"created_at"`
}

// BeforeCreate assigns a generated id when none is set
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
