package repository

import (
	"orphanage-service/internal/model"

	"gorm.io/gorm"
)

// ChildRepository persists child records and keeps the parent orphanage's
// total_children counter in step
type ChildRepository struct {
	db *gorm.DB
}

// NewChildRepository creates a child repository over the given handle
func NewChildRepository(db *gorm.DB) *ChildRepository {
	return &ChildRepository{db: db}
}

// ListByOrphanage returns the children of an orphanage
func (r *ChildRepository) ListByOrphanage(orphanageID string) ([]model.Child, error) {
	var children []model.Child
	if err := r.db.Where("orphanage_id = ?", orphanageID).Find(&children).Error; err != nil {
		return nil, err
	}
	return children, nil
}

// Add inserts a child and increments the orphanage's total_children counter
// in the same transaction
func (r *ChildRepository) Add(child *model.Child) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(child).Error; err != nil {
			return err
		}
		return tx.Model(&model.Orphanage{}).
			Where("id = ?", child.OrphanageID).
			UpdateColumn("total_children", gorm.Expr("total_children + 1")).Error
	})
}

// Remove deletes a child belonging to the orphanage and decrements the
// counter only when a row was actually deleted. Returns whether the child
// existed.
func (r *ChildRepository) Remove(orphanageID, childID string) (bool, error) {
	var deleted bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND orphanage_id = ?", childID, orphanageID).Delete(&model.Child{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return tx.Model(&model.Orphanage{}).
			Where("id = ?", orphanageID).
			UpdateColumn("total_children", gorm.Expr("total_children - 1")).Error
	})
	return deleted, err
}
