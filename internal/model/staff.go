package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Staff represents a staff member of an orphanage
type Staff struct {
	ID                string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	OrphanageID       string    `json:"orphanage_id" gorm:"type:varchar(36);index"`
	Name              string    `json:"name" gorm:"type:varchar(100)"`
	Role              string    `json:"role" gorm:"type:varchar(100)"`
	Contact           string    `json:"contact" gorm:"type:varchar(100)"`
	Bio               string    `json:"bio" gorm:"type:text"`
	IsDonationContact bool      `json:"is_donation_contact"`
	CreatedAt         time.Time `json:"created_at"`
}

func (s *Staff) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
