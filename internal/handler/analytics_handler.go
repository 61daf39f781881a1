package handler

import (
	"errors"
	"net/http"
	"time"

	"orphanage-service/internal/middleware"
	"orphanage-service/internal/policy"
	"orphanage-service/internal/repository"
	"orphanage-service/pkg/logger"
	"orphanage-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AnalyticsHandler serves the aggregated statistics endpoints
type AnalyticsHandler struct {
	analytics  *repository.AnalyticsRepository
	orphanages *repository.OrphanageRepository
}

// NewAnalyticsHandler creates an analytics handler
func NewAnalyticsHandler(analytics *repository.AnalyticsRepository, orphanages *repository.OrphanageRepository) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, orphanages: orphanages}
}

// Orphanage returns per-orphanage donation statistics
func (h *AnalyticsHandler) Orphanage(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)
	orphanageID := c.Param("id")

	if err := policy.CanManageOrphanage(user.Role, user.OrphanageID, orphanageID); err != nil {
		log.Warn("Analytics access denied",
			zap.String("role", string(user.Role)),
			zap.String("orphanage_id", orphanageID))
		prometheus.RecordAccessDenied("analytics")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	orphanage, err := h.orphanages.FindByID(orphanageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("Orphanage not found", zap.String("orphanage_id", orphanageID))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "orphanage not found"})
		}
		log.Error("Failed to load orphanage", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute analytics"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	stats, err := h.analytics.OrphanageStats(orphanage, time.Now().UTC())
	if err != nil {
		log.Error("Failed to compute analytics", zap.String("orphanage_id", orphanageID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute analytics"})
	}

	return c.JSON(http.StatusOK, stats)
}

// Platform returns platform-wide statistics. Super-admin only.
func (h *AnalyticsHandler) Platform(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)

	if err := policy.RequireSuperAdmin(user.Role); err != nil {
		log.Warn("Platform analytics denied", zap.String("role", string(user.Role)))
		prometheus.RecordAccessDenied("analytics")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	stats, err := h.analytics.PlatformStats()
	if err != nil {
		log.Error("Failed to compute platform analytics", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute analytics"})
	}

	return c.JSON(http.StatusOK, stats)
}
