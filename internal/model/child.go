package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Child represents a child housed by an orphanage
type Child struct {
	ID            string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	OrphanageID   string    `json:"orphanage_id" gorm:"type:varchar(36);index"`
	Name          string    `json:"name" gorm:"type:varchar(100)"`
	Age           int       `json:"age"`
	Gender        string    `json:"gender" gorm:"type:varchar(20)"`
	ClassGrade    string    `json:"class_grade" gorm:"type:varchar(50)"`
	Bio           string    `json:"bio" gorm:"type:text"`
	SpecialNeeds  string    `json:"special_needs" gorm:"type:text"`
	Photo         string    `json:"photo"`
	AdmissionDate time.Time `json:"admission_date"`
	CreatedAt     time.Time `json:"created_at"`
}

// BeforeCreate assigns a generated id and defaults the admission date to now
func (c *Child) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.AdmissionDate.IsZero() {
		c.AdmissionDate = time.Now().UTC()
	}
	return nil
}
