package repository

import (
	"testing"

	"orphanage-service/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a unique in-memory database per test to avoid
// cross-test collisions.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Orphanage{},
		&model.Child{},
		&model.Staff{},
		&model.Donation{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedOrphanage(t *testing.T, db *gorm.DB, name string) *model.Orphanage {
	t.Helper()
	o := &model.Orphanage{
		Name:          name,
		Description:   "test orphanage",
		ContactPerson: "Contact",
		Email:         "contact@example.com",
		Phone:         "1234567890",
		Address:       "1 Test Street",
		City:          "Pune",
		State:         "Maharashtra",
		Type:          model.TypeMixed,
	}
	if err := NewOrphanageRepository(db).Create(o); err != nil {
		t.Fatalf("seed orphanage: %v", err)
	}
	return o
}

func seedDonor(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	u := &model.User{
		Name:         "Donor",
		Email:        email,
		Phone:        "1234567890",
		Country:      "India",
		Role:         model.RoleDonor,
		PasswordHash: "hash",
	}
	if err := NewUserRepository(db).Create(u); err != nil {
		t.Fatalf("seed donor: %v", err)
	}
	return u
}
