package handler

import (
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

// StaffHandler serves the staff roster endpoints
type StaffHandler struct {
	staff *repository.StaffRepository
}

// NewStaffHandler creates a staff handler
func NewStaffHandler(staff *repository.StaffRepository) *StaffHandler {
	return &StaffHandler{staff: staff}
}

// List handles retrieving an orphanage's staff. Public endpoint.
func (h *StaffHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	orphanageID := c.Param("id")

	defer prometheus.TrackDBOperation("query")(time.Now())
	staff, err := h.staff.ListByOrphanage(orphanageID)
	if err != nil {
		log.Error("Failed to list staff", zap.String("orphanage_id", orphanageID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve staff"})
	}

	return c.JSON(http.StatusOK, staff)
}

// Add handles adding a staff member to an orphanage
func (h *StaffHandler) Add(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)
	orphanageID := c.Param("id")

	if err := policy.CanManageOrphanage(user.Role, user.OrphanageID, orphanageID); err != nil {
		log.Warn("Staff add denied",
			zap.String("role", string(user.Role)),
			zap.String("orphanage_id", orphanageID))
		prometheus.RecordAccessDenied("staff")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	var req struct {
		Name              string `json:"name"`
		Role              string `json:"role"`
		Contact           string `json:"contact"`
		Bio               string `json:"bio"`
		IsDonationContact bool   `json:"is_donation_contact"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Name == "" || req.Role == "" || req.Contact == "" {
		log.Error("Incomplete staff data", zap.String("orphanage_id", orphanageID))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, role and contact are required"})
	}

	staff := &model.Staff{
		OrphanageID:       orphanageID,
		Name:              req.Name,
		Role:              req.Role,
		Contact:           req.Contact,
		Bio:               req.Bio,
		IsDonationContact: req.IsDonationContact,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.staff.Add(staff); err != nil {
		log.Error("Failed to add staff", zap.String("orphanage_id", orphanageID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add staff"})
	}

	log.Info("Staff added",
		zap.String("staff_id", staff.ID),
		zap.String("orphanage_id", orphanageID))
	return c.JSON(http.StatusOK, staff)
}
