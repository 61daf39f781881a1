package repository

import (
	"orphanage-service/internal/model"

	"gorm.io/gorm"
)

// UserRepository persists user accounts
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository over the given handle
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. The email column carries a unique index, so a
// concurrent duplicate that slips past EmailTaken still fails here.
func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

// FindByID returns the user with the given id
func (r *UserRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

// FindByEmail returns the user with the given email
func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

// EmailTaken reports whether a user with the given email already exists
func (r *UserRepository) EmailTaken(email string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AssignOrphanage links an orphanage admin account to the orphanage it owns
func (r *UserRepository) AssignOrphanage(userID, orphanageID string) error {
	result := r.db.Model(&model.User{}).Where("id = ?", userID).Update("orphanage_id", orphanageID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
