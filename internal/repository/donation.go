package repository

import (
	"orphanage-service/internal/model"

	"gorm.io/gorm"
)

// DonationRepository persists donation records and keeps the owning
// orphanage's total_donations counter in step. Donations are immutable
// after creation.
type DonationRepository struct {
	db *gorm.DB
}

// NewDonationRepository creates a donation repository over the given handle
func NewDonationRepository(db *gorm.DB) *DonationRepository {
	return &DonationRepository{db: db}
}

// Create inserts a donation and increments the orphanage's total_donations
// counter by the donation amount in the same transaction
func (r *DonationRepository) Create(donation *model.Donation) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(donation).Error; err != nil {
			return err
		}
		return tx.Model(&model.Orphanage{}).
			Where("id = ?", donation.OrphanageID).
			UpdateColumn("total_donations", gorm.Expr("total_donations + ?", donation.Amount)).Error
	})
}

// FindByID returns the donation with the given id
func (r *DonationRepository) FindByID(id string) (*model.Donation, error) {
	var donation model.Donation
	if err := r.db.Where("id = ?", id).First(&donation).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &donation, nil
}

// ListByDonor returns a donor's donations in insertion order
func (r *DonationRepository) ListByDonor(donorID string) ([]model.Donation, error) {
	var donations []model.Donation
	if err := r.db.Where("donor_id = ?", donorID).Order("created_at").Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

// ListByOrphanage returns an orphanage's donations in insertion order
func (r *DonationRepository) ListByOrphanage(orphanageID string) ([]model.Donation, error) {
	var donations []model.Donation
	if err := r.db.Where("orphanage_id = ?", orphanageID).Order("created_at").Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

// ListAll returns every donation record in insertion order
func (r *DonationRepository) ListAll() ([]model.Donation, error) {
	var donations []model.Donation
	if err := r.db.Order("created_at").Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}
