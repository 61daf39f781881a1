package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"orphanage-service/internal/model"
	"orphanage-service/internal/repository"

	"github.com/labstack/echo/v4"
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

func seedUser(t *testing.T, db *gorm.DB, email string, role model.UserRole) *model.User {
	t.Helper()
	u := &model.User{
		Name:         "Test User",
		Email:        email,
		Phone:        "1234567890",
		Country:      "India",
		Role:         role,
		PasswordHash: "hash",
	}
	if err := repository.NewUserRepository(db).Create(u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// seedOrphanageAdmin creates an ORPHANAGE_ADMIN account owning the given
// orphanage.
func seedOrphanageAdmin(t *testing.T, db *gorm.DB, email, orphanageID string) *model.User {
	t.Helper()
	u := seedUser(t, db, email, model.RoleOrphanageAdmin)
	if err := repository.NewUserRepository(db).AssignOrphanage(u.ID, orphanageID); err != nil {
		t.Fatalf("assign orphanage: %v", err)
	}
	u.OrphanageID = &orphanageID
	return u
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
	if err := repository.NewOrphanageRepository(db).Create(o); err != nil {
		t.Fatalf("seed orphanage: %v", err)
	}
	return o
}

// jsonContext builds an echo context carrying a JSON body and a recorder
// for the response.
func jsonContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}
