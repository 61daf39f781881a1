package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Orphanage represents an orphanage profile stored in the database
type Orphanage struct {
	ID                     string             `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name                   string             `json:"name" gorm:"type:varchar(200)"`
	Slug                   string             `json:"slug" gorm:"type:varchar(220);uniqueIndex"`
	Description            string             `json:"description" gorm:"type:text"`
	RegistrationNumber     string             `json:"registration_number" gorm:"type:varchar(100)"`
	NGOID                  string             `json:"ngo_id" gorm:"column:ngo_id;type:varchar(100)"`
	ContactPerson          string             `json:"contact_person" gorm:"type:varchar(100)"`
	Email                  string             `json:"email" gorm:"type:varchar(100)"`
	Phone                  string             `json:"phone" gorm:"type:varchar(20)"`
	Address                string             `json:"address" gorm:"type:text"`
	City                   string             `json:"city" gorm:"type:varchar(100);index"`
	State                  string             `json:"state" gorm:"type:varchar(100);index"`
	Type                   OrphanageType      `json:"type" gorm:"type:varchar(20)"`
	VerificationStatus     VerificationStatus `json:"verification_status" gorm:"type:varchar(20);index"`
	Logo                   string             `json:"logo"`
	CoverImage             string             `json:"cover_image"`
	Gallery                []string           `json:"gallery" gorm:"serializer:json"`
	Mission                string             `json:"mission" gorm:"type:text"`
	BankAccount            string             `json:"bank_account" gorm:"type:varchar(100)"`
	PerDayMealCost         float64            `json:"per_day_meal_cost"`
	PerMonthEducationCost  float64            `json:"per_month_education_cost"`
	PerMonthHealthcareCost float64            `json:"per_month_healthcare_cost"`
	TotalChildren          int                `json:"total_children"`
	TotalDonations         float64            `json:"total_donations"`
	MonthlyTargets         map[string]float64 `json:"monthly_targets" gorm:"serializer:json"`
	CreatedAt              time.Time          `json:"created_at"`
}

// BeforeCreate assigns a generated id and fills cost defaults when unset
func (o *Orphanage) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.VerificationStatus == "" {
		o.VerificationStatus = VerificationPending
	}
	return nil
}
