package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Donation represents a recorded donation against an orphanage.
// Records are immutable after creation.
type Donation struct {
	ID               string             `json:"id" gorm:"type:varchar(36);primaryKey"`
	DonorID          string             `json:"donor_id" gorm:"type:varchar(36);index"`
	OrphanageID      string             `json:"orphanage_id" gorm:"type:varchar(36);index"`
	Amount           float64            `json:"amount"`
	Breakdown        map[string]float64 `json:"breakdown" gorm:"serializer:json"`
	Message          string             `json:"message" gorm:"type:text"`
	IsAnonymous      bool               `json:"is_anonymous"`
	DonorName        string             `json:"donor_name" gorm:"type:varchar(100)"`
	PaymentStatus    PaymentStatus      `json:"payment_status" gorm:"type:varchar(20)"`
	GatewayReference string             `json:"gateway_reference" gorm:"type:varchar(100)"`
	CreatedAt        time.Time          `json:"created_at"`
}

// BeforeCreate assigns a generated id and the mock gateway reference.
// Payment status defaults to COMPLETED; there is no gateway integration yet.
func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.PaymentStatus == "" {
		d.PaymentStatus = PaymentCompleted
	}
	if d.GatewayReference == "" {
		d.GatewayReference = "MOCK_" + uuid.NewString()
	}
	return nil
}
