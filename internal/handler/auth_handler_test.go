package handler

import (
	"net/http"
	"testing"

	"orphanage-service/internal/middleware"
	"orphanage-service/internal/model"
	"orphanage-service/internal/repository"
	"orphanage-service/pkg/config"
	"orphanage-service/pkg/jwtutil"

	"gorm.io/gorm"
)

func newAuthHandler(db *gorm.DB) *AuthHandler {
	users := repository.NewUserRepository(db)
	jwt := jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "test-key", ExpirationHours: 1})
	return NewAuthHandler(users, jwt)
}

func TestRegisterLoginFlow(t *testing.T) {
	db := setupTestDB(t)
	h := newAuthHandler(db)

	c, rec := jsonContext(t, http.MethodPost, "/api/auth/register",
		`{"name":"Asha","email":"asha@example.com","password":"secret123","phone":"9876543210"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody(t, rec)
	token, _ := resp["token"].(string)
	if token == "" {
		t.Fatal("expected token in register response")
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("missing user in register response: %s", rec.Body.String())
	}
	if user["role"] != string(model.RoleDonor) {
		t.Errorf("default role = %v, want %s", user["role"], model.RoleDonor)
	}
	if user["country"] != "India" {
		t.Errorf("default country = %v, want India", user["country"])
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Error("password hash leaked in response")
	}

	c, rec = jsonContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"asha@example.com","password":"secret123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	if tok, _ := decodeBody(t, rec)["token"].(string); tok == "" {
		t.Error("expected token in login response")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	db := setupTestDB(t)
	h := newAuthHandler(db)

	c, rec := jsonContext(t, http.MethodPost, "/api/auth/register",
		`{"name":"Asha","email":"asha@example.com","password":"secret123","phone":"9876543210"}`)
	if err := h.Register(c); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("register failed: %v, status %d", err, rec.Code)
	}

	cases := []struct {
		name string
		body string
	}{
		{"wrong password", `{"email":"asha@example.com","password":"nope"}`},
		{"unknown email", `{"email":"ghost@example.com","password":"secret123"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := jsonContext(t, http.MethodPost, "/api/auth/login", tc.body)
			if err := h.Login(c); err != nil {
				t.Fatalf("login: %v", err)
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
			if msg := decodeBody(t, rec)["error"]; msg != "invalid credentials" {
				t.Errorf("error = %v, want invalid credentials", msg)
			}
		})
	}
}

func TestRegisterValidation(t *testing.T) {
	db := setupTestDB(t)
	h := newAuthHandler(db)

	cases := []struct {
		name string
		body string
	}{
		{"missing phone", `{"name":"Asha","email":"a@example.com","password":"secret123"}`},
		{"missing password", `{"name":"Asha","email":"a@example.com","phone":"9876543210"}`},
		{"unknown role", `{"name":"Asha","email":"a@example.com","password":"secret123","phone":"9876543210","role":"WIZARD"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := jsonContext(t, http.MethodPost, "/api/auth/register", tc.body)
			if err := h.Register(c); err != nil {
				t.Fatalf("register: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400, body %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	h := newAuthHandler(db)

	body := `{"name":"Asha","email":"asha@example.com","password":"secret123","phone":"9876543210"}`
	c, rec := jsonContext(t, http.MethodPost, "/api/auth/register", body)
	if err := h.Register(c); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("first register failed: %v, status %d", err, rec.Code)
	}

	c, rec = jsonContext(t, http.MethodPost, "/api/auth/register", body)
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if msg := decodeBody(t, rec)["error"]; msg != "email already registered" {
		t.Errorf("error = %v, want email already registered", msg)
	}
}

func TestRegisterAdminRole(t *testing.T) {
	db := setupTestDB(t)
	h := newAuthHandler(db)

	c, rec := jsonContext(t, http.MethodPost, "/api/auth/register",
		`{"name":"Admin","email":"admin@example.com","password":"secret123","phone":"9876543210","role":"ORPHANAGE_ADMIN"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	user := decodeBody(t, rec)["user"].(map[string]any)
	if user["role"] != string(model.RoleOrphanageAdmin) {
		t.Errorf("role = %v, want %s", user["role"], model.RoleOrphanageAdmin)
	}
}

func TestMe(t *testing.T) {
	db := setupTestDB(t)
	h := newAuthHandler(db)
	donor := seedUser(t, db, "donor@example.com", model.RoleDonor)

	c, rec := jsonContext(t, http.MethodGet, "/api/auth/me", "")
	middleware.SetCurrentUser(c, donor)
	if err := h.Me(c); err != nil {
		t.Fatalf("me: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decodeBody(t, rec)["email"]; got != donor.Email {
		t.Errorf("email = %v, want %s", got, donor.Email)
	}
}
