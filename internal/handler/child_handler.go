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

// ChildHandler serves the child roster endpoints
type ChildHandler struct {
	children *repository.ChildRepository
}

// NewChildHandler creates a child handler
func NewChildHandler(children *repository.ChildRepository) *ChildHandler {
	return &ChildHandler{children: children}
}

// List handles retrieving an orphanage's children. Public endpoint.
func (h *ChildHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	orphanageID := c.Param("id")

	defer prometheus.TrackDBOperation("query")(time.Now())
	children, err := h.children.ListByOrphanage(orphanageID)
	if err != nil {
		log.Error("Failed to list children", zap.String("orphanage_id", orphanageID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve children"})
	}

	return c.JSON(http.StatusOK, children)
}

// Add handles adding a child to an orphanage roster
func (h *ChildHandler) Add(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)
	orphanageID := c.Param("id")

	if err := policy.CanManageOrphanage(user.Role, user.OrphanageID, orphanageID); err != nil {
		log.Warn("Child add denied",
			zap.String("role", string(user.Role)),
			zap.String("orphanage_id", orphanageID))
		prometheus.RecordAccessDenied("children")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	var req struct {
		Name         string `json:"name"`
		Age          int    `json:"age"`
		Gender       string `json:"gender"`
		ClassGrade   string `json:"class_grade"`
		Bio          string `json:"bio"`
		SpecialNeeds string `json:"special_needs"`
		Photo        string `json:"photo"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Name == "" || req.Gender == "" {
		log.Error("Incomplete child data", zap.String("orphanage_id", orphanageID))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and gender are required"})
	}

	child := &model.Child{
		OrphanageID:  orphanageID,
		Name:         req.Name,
		Age:          req.Age,
		Gender:       req.Gender,
		ClassGrade:   req.ClassGrade,
		Bio:          req.Bio,
		SpecialNeeds: req.SpecialNeeds,
		Photo:        req.Photo,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.children.Add(child); err != nil {
		log.Error("Failed to add child", zap.String("orphanage_id", orphanageID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add child"})
	}

	log.Info("Child added",
		zap.String("child_id", child.ID),
		zap.String("orphanage_id", orphanageID))
	return c.JSON(http.StatusOK, child)
}

// Remove handles deleting a child from an orphanage roster
func (h *ChildHandler) Remove(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)
	orphanageID := c.Param("id")
	childID := c.Param("childId")

	if err := policy.CanManageOrphanage(user.Role, user.OrphanageID, orphanageID); err != nil {
		log.Warn("Child removal denied",
			zap.String("role", string(user.Role)),
			zap.String("orphanage_id", orphanageID))
		prometheus.RecordAccessDenied("children")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	removed, err := h.children.Remove(orphanageID, childID)
	if err != nil {
		log.Error("Failed to remove child",
			zap.String("child_id", childID),
			zap.String("orphanage_id", orphanageID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to remove child"})
	}

	log.Info("Child removal processed",
		zap.String("child_id", childID),
		zap.Bool("removed", removed))
	return c.JSON(http.StatusOK, echo.Map{"success": removed})
}
