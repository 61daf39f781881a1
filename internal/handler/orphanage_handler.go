package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
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

// OrphanageRequest defines the structure for orphanage creation requests
type OrphanageRequest struct {
	Name               string              `json:"name"`
	Description        string              `json:"description"`
	RegistrationNumber string              `json:"registration_number"`
	NGOID              string              `json:"ngo_id"`
	ContactPerson      string              `json:"contact_person"`
	Email              string              `json:"email"`
	Phone              string              `json:"phone"`
	Address            string              `json:"address"`
	City               string              `json:"city"`
	State              string              `json:"state"`
	Type               model.OrphanageType `json:"type"`
	Logo               string              `json:"logo"`
	CoverImage         string              `json:"cover_image"`
	Mission            string              `json:"mission"`
}

// OrphanageHandler serves the public and admin-facing orphanage endpoints
type OrphanageHandler struct {
	orphanages *repository.OrphanageRepository
	users      *repository.UserRepository
}

// NewOrphanageHandler creates an orphanage handler
func NewOrphanageHandler(orphanages *repository.OrphanageRepository, users *repository.UserRepository) *OrphanageHandler {
	return &OrphanageHandler{orphanages: orphanages, users: users}
}

// List handles retrieving orphanages with optional filtering and search
func (h *OrphanageHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	filter := repository.SearchFilter{
		City:   c.QueryParam("city"),
		State:  c.QueryParam("state"),
		Search: c.QueryParam("search"),
	}

	if typeParam := c.QueryParam("type"); typeParam != "" {
		t := model.OrphanageType(typeParam)
		if !model.ValidOrphanageType(t) {
			log.Warn("Invalid type parameter", zap.String("value", typeParam))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown orphanage type"})
		}
		filter.Type = t
	}

	if verifiedParam := c.QueryParam("verified"); verifiedParam != "" {
		verified, err := strconv.ParseBool(verifiedParam)
		if err != nil {
			log.Warn("Invalid verified parameter", zap.String("value", verifiedParam))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "verified must be a boolean"})
		}
		filter.Verified = &verified
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	orphanages, err := h.orphanages.Search(filter)
	if err != nil {
		log.Error("Failed to list orphanages", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve orphanages"})
	}

	log.Info("Orphanages retrieved", zap.Int("count", len(orphanages)))
	return c.JSON(http.StatusOK, orphanages)
}

// GetBySlug handles retrieving a single orphanage profile by its slug
func (h *OrphanageHandler) GetBySlug(c echo.Context) error {
	log := logger.FromContext(c)
	slug := c.Param("slug")

	orphanage, err := h.orphanages.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("Orphanage not found", zap.String("slug", slug))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "orphanage not found"})
		}
		log.Error("Failed to load orphanage", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve orphanage"})
	}

	return c.JSON(http.StatusOK, orphanage)
}

// Create handles registering a new orphanage profile
func (h *OrphanageHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)

	if err := policy.CanCreateOrphanage(user.Role); err != nil {
		log.Warn("Orphanage creation denied", zap.String("role", string(user.Role)))
		prometheus.RecordAccessDenied("orphanage")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	var req OrphanageRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.Name == "" || req.Description == "" || req.RegistrationNumber == "" ||
		req.ContactPerson == "" || req.Email == "" || req.Phone == "" ||
		req.Address == "" || req.City == "" || req.State == "" {
		log.Error("Incomplete orphanage data", zap.String("name", req.Name))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing required orphanage fields"})
	}
	if !model.ValidOrphanageType(req.Type) {
		log.Error("Unknown orphanage type", zap.String("type", string(req.Type)))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown orphanage type"})
	}

	orphanage := &model.Orphanage{
		Name:                   req.Name,
		Description:            req.Description,
		RegistrationNumber:     req.RegistrationNumber,
		NGOID:                  req.NGOID,
		ContactPerson:          req.ContactPerson,
		Email:                  req.Email,
		Phone:                  req.Phone,
		Address:                req.Address,
		City:                   req.City,
		State:                  req.State,
		Type:                   req.Type,
		Logo:                   req.Logo,
		CoverImage:             req.CoverImage,
		Mission:                req.Mission,
		PerDayMealCost:         50.0,
		PerMonthEducationCost:  1500.0,
		PerMonthHealthcareCost: 1000.0,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.orphanages.Create(orphanage); err != nil {
		log.Error("Failed to create orphanage", zap.String("name", req.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create orphanage"})
	}

	// An orphanage admin becomes the owner of the profile they register
	if user.Role == model.RoleOrphanageAdmin {
		if err := h.users.AssignOrphanage(user.ID, orphanage.ID); err != nil {
			log.Error("Failed to link admin to orphanage", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to link orphanage"})
		}
	}

	prometheus.OrphanageCreatedCounter.Inc()
	log.Info("Orphanage created",
		zap.String("orphanage_id", orphanage.ID),
		zap.String("slug", orphanage.Slug))
	return c.JSON(http.StatusOK, orphanage)
}

// Update handles partial updates to an orphanage profile. Only allow-listed
// fields are mutable; unknown fields are rejected.
func (h *OrphanageHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)
	id := c.Param("id")

	if err := policy.CanManageOrphanage(user.Role, user.OrphanageID, id); err != nil {
		log.Warn("Orphanage update denied",
			zap.String("role", string(user.Role)),
			zap.String("orphanage_id", id))
		prometheus.RecordAccessDenied("orphanage")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	var upd repository.OrphanageUpdate
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&upd); err != nil {
		log.Error("Invalid update payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid update payload"})
	}
	if upd.Type != nil && !model.ValidOrphanageType(*upd.Type) {
		log.Error("Unknown orphanage type", zap.String("type", string(*upd.Type)))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown orphanage type"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	orphanage, err := h.orphanages.Update(id, &upd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("Orphanage not found for update", zap.String("orphanage_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "orphanage not found"})
		}
		log.Error("Failed to update orphanage", zap.String("orphanage_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update orphanage"})
	}

	log.Info("Orphanage updated", zap.String("orphanage_id", id))
	return c.JSON(http.StatusOK, orphanage)
}
