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

// AdminHandler serves the super-admin platform surface
type AdminHandler struct {
	orphanages *repository.OrphanageRepository
	donations  *repository.DonationRepository
}

// NewAdminHandler creates an admin handler
func NewAdminHandler(orphanages *repository.OrphanageRepository, donations *repository.DonationRepository) *AdminHandler {
	return &AdminHandler{orphanages: orphanages, donations: donations}
}

// ListOrphanages returns every orphanage, unfiltered
func (h *AdminHandler) ListOrphanages(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)

	if err := policy.RequireSuperAdmin(user.Role); err != nil {
		log.Warn("Admin orphanage listing denied", zap.String("role", string(user.Role)))
		prometheus.RecordAccessDenied("admin")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	orphanages, err := h.orphanages.ListAll()
	if err != nil {
		log.Error("Failed to list orphanages", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve orphanages"})
	}

	return c.JSON(http.StatusOK, orphanages)
}

// ListDonations returns every donation record, unfiltered
func (h *AdminHandler) ListDonations(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)

	if err := policy.RequireSuperAdmin(user.Role); err != nil {
		log.Warn("Admin donation listing denied", zap.String("role", string(user.Role)))
		prometheus.RecordAccessDenied("admin")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	donations, err := h.donations.ListAll()
	if err != nil {
		log.Error("Failed to list donations", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve donations"})
	}

	return c.JSON(http.StatusOK, donations)
}

// Verify sets an orphanage's verification status
func (h *AdminHandler) Verify(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)
	orphanageID := c.Param("id")

	if err := policy.RequireSuperAdmin(user.Role); err != nil {
		log.Warn("Orphanage verification denied", zap.String("role", string(user.Role)))
		prometheus.RecordAccessDenied("admin")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	status := model.VerificationStatus(c.QueryParam("status"))
	if !model.ValidVerificationStatus(status) {
		log.Error("Unknown verification status", zap.String("status", string(status)))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown verification status"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := h.orphanages.SetVerificationStatus(orphanageID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("Orphanage not found for verification", zap.String("orphanage_id", orphanageID))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "orphanage not found"})
		}
		log.Error("Failed to update verification status",
			zap.String("orphanage_id", orphanageID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update verification status"})
	}

	log.Info("Orphanage verification updated",
		zap.String("orphanage_id", orphanageID),
		zap.String("status", string(status)))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// MetricsHandler exposes the Prometheus metrics endpoint
func MetricsHandler(c echo.Context) error {
	handler := prometheus.GetPrometheusHandler()
	handler.ServeHTTP(c.Response(), c.Request())
	return nil
}
