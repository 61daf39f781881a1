package handler

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"orphanage-service/internal/middleware"
	"orphanage-service/internal/model"
	"orphanage-service/internal/repository"

	"gorm.io/gorm"
)

func newDonationHandler(db *gorm.DB) *DonationHandler {
	return NewDonationHandler(
		repository.NewDonationRepository(db),
		repository.NewOrphanageRepository(db),
		repository.NewUserRepository(db),
	)
}

func TestDonationCreate(t *testing.T) {
	db := setupTestDB(t)
	h := newDonationHandler(db)
	o := seedOrphanage(t, db, "Hope House")
	donor := seedUser(t, db, "donor@example.com", model.RoleDonor)

	body := fmt.Sprintf(`{"orphanage_id":%q,"amount":500,"breakdown":{"MEALS":300,"EDUCATION":200},"message":"for the kids"}`, o.ID)
	c, rec := jsonContext(t, http.MethodPost, "/api/donations/create", body)
	middleware.SetCurrentUser(c, donor)
	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody(t, rec)
	if resp["donor_id"] != donor.ID {
		t.Errorf("donor_id = %v, want %s", resp["donor_id"], donor.ID)
	}
	if resp["payment_status"] != string(model.PaymentCompleted) {
		t.Errorf("payment_status = %v, want COMPLETED", resp["payment_status"])
	}
	ref, _ := resp["gateway_reference"].(string)
	if !strings.HasPrefix(ref, "MOCK_") {
		t.Errorf("gateway_reference = %q, want MOCK_ prefix", ref)
	}

	// The orphanage running total moves with the donation
	reloaded, err := repository.NewOrphanageRepository(db).FindByID(o.ID)
	if err != nil {
		t.Fatalf("reload orphanage: %v", err)
	}
	if reloaded.TotalDonations != 500 {
		t.Errorf("total_donations = %v, want 500", reloaded.TotalDonations)
	}
}

func TestDonationCreateValidation(t *testing.T) {
	db := setupTestDB(t)
	h := newDonationHandler(db)
	o := seedOrphanage(t, db, "Hope House")
	donor := seedUser(t, db, "donor@example.com", model.RoleDonor)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"missing orphanage", `{"amount":500}`, http.StatusBadRequest},
		{"zero amount", fmt.Sprintf(`{"orphanage_id":%q,"amount":0}`, o.ID), http.StatusBadRequest},
		{"negative amount", fmt.Sprintf(`{"orphanage_id":%q,"amount":-10}`, o.ID), http.StatusBadRequest},
		{"unknown orphanage", `{"orphanage_id":"missing-id","amount":500}`, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := jsonContext(t, http.MethodPost, "/api/donations/create", tc.body)
			middleware.SetCurrentUser(c, donor)
			if err := h.Create(c); err != nil {
				t.Fatalf("create: %v", err)
			}
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestDonationMyHistory(t *testing.T) {
	db := setupTestDB(t)
	h := newDonationHandler(db)
	o := seedOrphanage(t, db, "Hope House")
	donor := seedUser(t, db, "donor@example.com", model.RoleDonor)
	other := seedUser(t, db, "other@example.com", model.RoleDonor)

	donations := repository.NewDonationRepository(db)
	if err := donations.Create(&model.Donation{DonorID: donor.ID, OrphanageID: o.ID, Amount: 100}); err != nil {
		t.Fatalf("seed donation: %v", err)
	}
	if err := donations.Create(&model.Donation{DonorID: other.ID, OrphanageID: o.ID, Amount: 999}); err != nil {
		t.Fatalf("seed donation: %v", err)
	}

	c, rec := jsonContext(t, http.MethodGet, "/api/donations/my", "")
	middleware.SetCurrentUser(c, donor)
	if err := h.My(c); err != nil {
		t.Fatalf("my: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	got := decodeList(t, rec)
	if len(got) != 1 {
		t.Fatalf("got %d donations, want only the caller's", len(got))
	}
	if got[0]["orphanage_name"] != "Hope House" {
		t.Errorf("orphanage_name = %v, want Hope House", got[0]["orphanage_name"])
	}
}

func TestDonationReceiptAccess(t *testing.T) {
	db := setupTestDB(t)
	h := newDonationHandler(db)
	o := seedOrphanage(t, db, "Hope House")
	donor := seedUser(t, db, "donor@example.com", model.RoleDonor)
	other := seedUser(t, db, "other@example.com", model.RoleDonor)
	super := seedUser(t, db, "super@example.com", model.RoleSuperAdmin)

	d := &model.Donation{DonorID: donor.ID, OrphanageID: o.ID, Amount: 100}
	if err := repository.NewDonationRepository(db).Create(d); err != nil {
		t.Fatalf("seed donation: %v", err)
	}

	cases := []struct {
		name   string
		caller *model.User
		want   int
	}{
		{"donor reads own receipt", donor, http.StatusOK},
		{"other donor denied", other, http.StatusForbidden},
		{"super admin allowed", super, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := jsonContext(t, http.MethodGet, "/", "")
			middleware.SetCurrentUser(c, tc.caller)
			c.SetParamNames("id")
			c.SetParamValues(d.ID)
			if err := h.Receipt(c); err != nil {
				t.Fatalf("receipt: %v", err)
			}
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
			if tc.want != http.StatusOK {
				return
			}
			resp := decodeBody(t, rec)
			// Donor details always belong to whoever made the donation
			donorInfo, ok := resp["donor"].(map[string]any)
			if !ok {
				t.Fatalf("missing donor in receipt: %s", rec.Body.String())
			}
			if donorInfo["email"] != donor.Email {
				t.Errorf("donor email = %v, want %s", donorInfo["email"], donor.Email)
			}
		})
	}

	c, rec := jsonContext(t, http.MethodGet, "/", "")
	middleware.SetCurrentUser(c, donor)
	c.SetParamNames("id")
	c.SetParamValues("missing-id")
	if err := h.Receipt(c); err != nil {
		t.Fatalf("receipt: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestDonationListByOrphanageMasksAnonymous(t *testing.T) {
	db := setupTestDB(t)
	h := newDonationHandler(db)
	o := seedOrphanage(t, db, "Hope House")
	owner := seedOrphanageAdmin(t, db, "owner@example.com", o.ID)
	donor := seedUser(t, db, "donor@example.com", model.RoleDonor)

	donations := repository.NewDonationRepository(db)
	if err := donations.Create(&model.Donation{DonorID: donor.ID, OrphanageID: o.ID, Amount: 100}); err != nil {
		t.Fatalf("seed donation: %v", err)
	}
	if err := donations.Create(&model.Donation{DonorID: donor.ID, OrphanageID: o.ID, Amount: 200, IsAnonymous: true}); err != nil {
		t.Fatalf("seed donation: %v", err)
	}

	c, rec := jsonContext(t, http.MethodGet, "/", "")
	middleware.SetCurrentUser(c, owner)
	c.SetParamNames("id")
	c.SetParamValues(o.ID)
	if err := h.ListByOrphanage(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	got := decodeList(t, rec)
	if len(got) != 2 {
		t.Fatalf("got %d donations, want 2", len(got))
	}
	for _, entry := range got {
		if entry["is_anonymous"] == true {
			if entry["donor_name"] != "Anonymous" {
				t.Errorf("anonymous donor_name = %v", entry["donor_name"])
			}
			if entry["donor_id"] != "" {
				t.Errorf("anonymous donor_id leaked: %v", entry["donor_id"])
			}
		} else {
			if entry["donor_name"] != donor.Name {
				t.Errorf("donor_name = %v, want %s", entry["donor_name"], donor.Name)
			}
			if entry["donor_id"] != donor.ID {
				t.Errorf("donor_id = %v, want %s", entry["donor_id"], donor.ID)
			}
		}
	}
}

func TestDonationListByOrphanageDenied(t *testing.T) {
	db := setupTestDB(t)
	h := newDonationHandler(db)
	o := seedOrphanage(t, db, "Hope House")
	donor := seedUser(t, db, "donor@example.com", model.RoleDonor)

	c, rec := jsonContext(t, http.MethodGet, "/", "")
	middleware.SetCurrentUser(c, donor)
	c.SetParamNames("id")
	c.SetParamValues(o.ID)
	if err := h.ListByOrphanage(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}
