package repository

import (
	"orphanage-service/internal/model"

	"gorm.io/gorm"
)

// StaffRepository persists staff rosters. Staff records are immutable after
// creation.
type StaffRepository struct {
	db *gorm.DB
}

// NewStaffRepository creates a staff repository over the given handle
func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// ListByOrphanage returns the staff of an orphanage
func (r *StaffRepository) ListByOrphanage(orphanageID string) ([]model.Staff, error) {
	var staff []model.Staff
	if err := r.db.Where("orphanage_id = ?", orphanageID).Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

// Add inserts a staff member
func (r *StaffRepository) Add(staff *model.Staff) error {
	return r.db.Create(staff).Error
}
