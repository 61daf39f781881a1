package handler

import (
	"errors"
	"net/http"
	"time"

	"orphanage-service/internal/middleware"
	"orphanage-service/internal/model"
	"orphanage-service/internal/policy"
	"orphanage-service/internal/repository"
	"orphanage-service/pkg/logger"
	"orphanage-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// DonationHandler serves donation recording and history endpoints
type DonationHandler struct {
	donations  *repository.DonationRepository
	orphanages *repository.OrphanageRepository
	users      *repository.UserRepository
}

// NewDonationHandler creates a donation handler
func NewDonationHandler(
	donations *repository.DonationRepository,
	orphanages *repository.OrphanageRepository,
	users *repository.UserRepository,
) *DonationHandler {
	return &DonationHandler{donations: donations, orphanages: orphanages, users: users}
}

// donationWithOrphanage decorates a donation with the orphanage it went to
type donationWithOrphanage struct {
	model.Donation
	OrphanageName string `json:"orphanage_name"`
	OrphanageLogo string `json:"orphanage_logo"`
}

// orphanageDonation is the shape listed to orphanage admins. Anonymous
// donations carry no donor identity, whoever asks.
type orphanageDonation struct {
	model.Donation
	DonorID   string `json:"donor_id"`
	DonorName string `json:"donor_name"`
}

// Create records a donation against an orphanage
func (h *DonationHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)

	var req struct {
		OrphanageID string             `json:"orphanage_id"`
		Amount      float64            `json:"amount"`
		Breakdown   map[string]float64 `json:"breakdown"`
		Message     string             `json:"message"`
		IsAnonymous bool               `json:"is_anonymous"`
		DonorName   string             `json:"donor_name"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.OrphanageID == "" || req.Amount <= 0 {
		log.Error("Incomplete donation data", zap.Float64("amount", req.Amount))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "orphanage_id and a positive amount are required"})
	}

	if _, err := h.orphanages.FindByID(req.OrphanageID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("Orphanage not found", zap.String("orphanage_id", req.OrphanageID))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "orphanage not found"})
		}
		log.Error("Failed to load orphanage", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record donation"})
	}

	donation := &model.Donation{
		DonorID:     user.ID,
		OrphanageID: req.OrphanageID,
		Amount:      req.Amount,
		Breakdown:   req.Breakdown,
		Message:     req.Message,
		IsAnonymous: req.IsAnonymous,
		DonorName:   req.DonorName,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.donations.Create(donation); err != nil {
		log.Error("Failed to record donation",
			zap.String("orphanage_id", req.OrphanageID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record donation"})
	}

	prometheus.DonationCounter.Inc()
	prometheus.DonationAmountCounter.Add(donation.Amount)
	log.Info("Donation recorded",
		zap.String("donation_id", donation.ID),
		zap.String("orphanage_id", donation.OrphanageID),
		zap.Float64("amount", donation.Amount))
	return c.JSON(http.StatusOK, donation)
}

// My returns the caller's donation history with orphanage names joined
func (h *DonationHandler) My(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	donations, err := h.donations.ListByDonor(user.ID)
	if err != nil {
		log.Error("Failed to list donations", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve donations"})
	}

	out := make([]donationWithOrphanage, 0, len(donations))
	for _, d := range donations {
		entry := donationWithOrphanage{Donation: d, OrphanageName: "Unknown"}
		if orphanage, err := h.orphanages.FindByID(d.OrphanageID); err == nil {
			entry.OrphanageName = orphanage.Name
			entry.OrphanageLogo = orphanage.Logo
		}
		out = append(out, entry)
	}

	return c.JSON(http.StatusOK, out)
}

// Receipt returns a single donation together with donor and orphanage
// details. Only the donor who made it and the super-admin may read it.
func (h *DonationHandler) Receipt(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)
	id := c.Param("id")

	donation, err := h.donations.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("Donation not found", zap.String("donation_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "donation not found"})
		}
		log.Error("Failed to load donation", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve donation"})
	}

	if err := policy.CanReadDonation(user.Role, user.ID, donation.DonorID); err != nil {
		log.Warn("Receipt access denied",
			zap.String("donation_id", id),
			zap.String("role", string(user.Role)))
		prometheus.RecordAccessDenied("donations")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	donorInfo := echo.Map{"name": "", "email": ""}
	if donor, err := h.users.FindByID(donation.DonorID); err == nil {
		donorInfo = echo.Map{"name": donor.Name, "email": donor.Email}
	}

	var orphanage *model.Orphanage
	if o, err := h.orphanages.FindByID(donation.OrphanageID); err == nil {
		orphanage = o
	}

	return c.JSON(http.StatusOK, echo.Map{
		"donation":  donation,
		"donor":     donorInfo,
		"orphanage": orphanage,
	})
}

// ListByOrphanage returns an orphanage's donations with donor names
// resolved, honoring anonymity
func (h *DonationHandler) ListByOrphanage(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)
	orphanageID := c.Param("id")

	if err := policy.CanManageOrphanage(user.Role, user.OrphanageID, orphanageID); err != nil {
		log.Warn("Donation listing denied",
			zap.String("role", string(user.Role)),
			zap.String("orphanage_id", orphanageID))
		prometheus.RecordAccessDenied("donations")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	donations, err := h.donations.ListByOrphanage(orphanageID)
	if err != nil {
		log.Error("Failed to list donations", zap.String("orphanage_id", orphanageID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve donations"})
	}

	out := make([]orphanageDonation, 0, len(donations))
	for _, d := range donations {
		entry := orphanageDonation{Donation: d, DonorName: "Anonymous"}
		if d.IsAnonymous {
			// Identity stays hidden for any caller, donor id included.
			out = append(out, entry)
			continue
		}
		entry.DonorID = d.DonorID
		if donor, err := h.users.FindByID(d.DonorID); err == nil {
			entry.DonorName = donor.Name
		}
		out = append(out, entry)
	}

	return c.JSON(http.StatusOK, out)
}
