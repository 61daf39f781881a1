package repository

import (
	"strings"

	"orphanage-service/internal/model"

	"gorm.io/gorm"
)

// listLimit caps unpaginated listings
const listLimit = 100

// OrphanageRepository persists orphanage profiles
type OrphanageRepository struct {
	db *gorm.DB
}

// NewOrphanageRepository creates an orphanage repository over the given handle
func NewOrphanageRepository(db *gorm.DB) *OrphanageRepository {
	return &OrphanageRepository{db: db}
}

// SearchFilter narrows a public orphanage listing. Exact filters combine
// conjunctively; the free-text term matches name, city or state.
type SearchFilter struct {
	City     string
	State    string
	Type     model.OrphanageType
	Verified *bool
	Search   string
}

// OrphanageUpdate is the allow-list of mutable orphanage fields. Nil fields
// are left untouched. The slug never changes after creation.
type OrphanageUpdate struct {
	Name                   *string             `json:"name"`
	Description            *string             `json:"description"`
	RegistrationNumber     *string             `json:"registration_number"`
	NGOID                  *string             `json:"ngo_id"`
	ContactPerson          *string             `json:"contact_person"`
	Email                  *string             `json:"email"`
	Phone                  *string             `json:"phone"`
	Address                *string             `json:"address"`
	City                   *string             `json:"city"`
	State                  *string             `json:"state"`
	Type                   *model.OrphanageType `json:"type"`
	Logo                   *string             `json:"logo"`
	CoverImage             *string             `json:"cover_image"`
	Gallery                *[]string           `json:"gallery"`
	Mission                *string             `json:"mission"`
	BankAccount            *string             `json:"bank_account"`
	PerDayMealCost         *float64            `json:"per_day_meal_cost"`
	PerMonthEducationCost  *float64            `json:"per_month_education_cost"`
	PerMonthHealthcareCost *float64            `json:"per_month_healthcare_cost"`
	MonthlyTargets         *map[string]float64 `json:"monthly_targets"`
}

// Create inserts a new orphanage, deriving a unique slug from its name.
// A colliding slug gets a random 8-character suffix; the unique index on the
// slug column backstops the remaining race window.
func (r *OrphanageRepository) Create(o *model.Orphanage) error {
	slug := model.Slugify(o.Name)

	var count int64
	if err := r.db.Model(&model.Orphanage{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		slug = slug + "-" + model.SlugSuffix()
	}
	o.Slug = slug

	return r.db.Create(o).Error
}

// FindByID returns the orphanage with the given id
func (r *OrphanageRepository) FindByID(id string) (*model.Orphanage, error) {
	var o model.Orphanage
	if err := r.db.Where("id = ?", id).First(&o).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &o, nil
}

// FindBySlug returns the orphanage with the given slug
func (r *OrphanageRepository) FindBySlug(slug string) (*model.Orphanage, error) {
	var o model.Orphanage
	if err := r.db.Where("slug = ?", slug).First(&o).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &o, nil
}

// Search returns orphanages matching the filter, capped at 100 records
func (r *OrphanageRepository) Search(f SearchFilter) ([]model.Orphanage, error) {
	query := r.db.Model(&model.Orphanage{})

	if f.City != "" {
		query = query.Where("city = ?", f.City)
	}
	if f.State != "" {
		query = query.Where("state = ?", f.State)
	}
	if f.Type != "" {
		query = query.Where("type = ?", f.Type)
	}
	if f.Verified != nil {
		status := model.VerificationPending
		if *f.Verified {
			status = model.VerificationVerified
		}
		query = query.Where("verification_status = ?", status)
	}
	if f.Search != "" {
		term := "%" + strings.ToLower(f.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(city) LIKE ? OR LOWER(state) LIKE ?",
			term, term, term,
		)
	}

	var orphanages []model.Orphanage
	if err := query.Limit(listLimit).Find(&orphanages).Error; err != nil {
		return nil, err
	}
	return orphanages, nil
}

// ListAll returns every orphanage without filtering
func (r *OrphanageRepository) ListAll() ([]model.Orphanage, error) {
	var orphanages []model.Orphanage
	if err := r.db.Find(&orphanages).Error; err != nil {
		return nil, err
	}
	return orphanages, nil
}

// Update applies the non-nil fields of the allow-list to the orphanage and
// returns the updated record
func (r *OrphanageRepository) Update(id string, upd *OrphanageUpdate) (*model.Orphanage, error) {
	var o model.Orphanage
	if err := r.db.Where("id = ?", id).First(&o).Error; err != nil {
		return nil, translateNotFound(err)
	}

	if upd.Name != nil {
		o.Name = *upd.Name
	}
	if upd.Description != nil {
		o.Description = *upd.Description
	}
	if upd.RegistrationNumber != nil {
		o.RegistrationNumber = *upd.RegistrationNumber
	}
	if upd.NGOID != nil {
		o.NGOID = *upd.NGOID
	}
	if upd.ContactPerson != nil {
		o.ContactPerson = *upd.ContactPerson
	}
	if upd.Email != nil {
		o.Email = *upd.Email
	}
	if upd.Phone != nil {
		o.Phone = *upd.Phone
	}
	if upd.Address != nil {
		o.Address = *upd.Address
	}
	if upd.City != nil {
		o.City = *upd.City
	}
	if upd.State != nil {
		o.State = *upd.State
	}
	if upd.Type != nil {
		o.Type = *upd.Type
	}
	if upd.Logo != nil {
		o.Logo = *upd.Logo
	}
	if upd.CoverImage != nil {
		o.CoverImage = *upd.CoverImage
	}
	if upd.Gallery != nil {
		o.Gallery = *upd.Gallery
	}
	if upd.Mission != nil {
		o.Mission = *upd.Mission
	}
	if upd.BankAccount != nil {
		o.BankAccount = *upd.BankAccount
	}
	if upd.PerDayMealCost != nil {
		o.PerDayMealCost = *upd.PerDayMealCost
	}
	if upd.PerMonthEducationCost != nil {
		o.PerMonthEducationCost = *upd.PerMonthEducationCost
	}
	if upd.PerMonthHealthcareCost != nil {
		o.PerMonthHealthcareCost = *upd.PerMonthHealthcareCost
	}
	if upd.MonthlyTargets != nil {
		o.MonthlyTargets = *upd.MonthlyTargets
	}

	if err := r.db.Save(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// SetVerificationStatus updates the platform trust flag on an orphanage
func (r *OrphanageRepository) SetVerificationStatus(id string, status model.VerificationStatus) error {
	result := r.db.Model(&model.Orphanage{}).Where("id = ?", id).Update("verification_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
