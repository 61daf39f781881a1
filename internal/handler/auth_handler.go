package handler

import (
	"errors"
	"net/http"
	"time"

	"orphanage-service/internal/middleware"
	"orphanage-service/internal/model"
	"orphanage-service/internal/repository"
	"orphanage-service/pkg/jwtutil"
	"orphanage-service/pkg/logger"
	"orphanage-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler serves registration, login and profile endpoints
type AuthHandler struct {
	users *repository.UserRepository
	jwt   *jwtutil.JWTUtil
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(users *repository.UserRepository, jwt *jwtutil.JWTUtil) *AuthHandler {
	return &AuthHandler{users: users, jwt: jwt}
}

// Register creates a new user account and returns a token with the profile
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req struct {
		Name           string         `json:"name"`
		Email          string         `json:"email"`
		Password       string         `json:"password"`
		Phone          string         `json:"phone"`
		Country        string         `json:"country"`
		City           string         `json:"city"`
		Role           model.UserRole `json:"role"`
		ProfilePicture string         `json:"profile_picture"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Name == "" || req.Email == "" || req.Password == "" || req.Phone == "" {
		log.Error("Invalid registration data", zap.String("email", req.Email))
		prometheus.RecordAuthError("incomplete_registration")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, email, password and phone are required"})
	}

	if req.Role == "" {
		req.Role = model.RoleDonor
	}
	if !model.ValidRole(req.Role) {
		log.Error("Unknown role in registration", zap.String("role", string(req.Role)))
		prometheus.RecordAuthError("invalid_role")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
	}
	if req.Country == "" {
		req.Country = "India"
	}

	// Check if the email is already registered - track DB query
	defer prometheus.TrackDBOperation("query")(time.Now())
	taken, err := h.users.EmailTaken(req.Email)
	if err != nil {
		log.Error("Failed to check email", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}
	if taken {
		log.Error("Email already registered", zap.String("email", req.Email))
		prometheus.RecordAuthError("email_already_exists")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already registered"})
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		prometheus.RecordAuthError("password_hash_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	user := &model.User{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Country:        req.Country,
		City:           req.City,
		Role:           req.Role,
		ProfilePicture: req.ProfilePicture,
		PasswordHash:   string(hashedPassword),
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.users.Create(user); err != nil {
		log.Error("Failed to create user", zap.Error(err))
		prometheus.RecordAuthError("user_creation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	token, err := h.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("User registered", zap.String("email", user.Email), zap.String("role", string(user.Role)))
	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user":  user,
	})
}

// Login verifies credentials and returns a token with the profile
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	user, err := h.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("User not found", zap.String("email", req.Email))
			prometheus.RecordAuthError("user_not_found")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		log.Error("Failed to query user", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Error("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := h.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("User logged in", zap.String("email", user.Email), zap.String("role", string(user.Role)))
	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user":  user,
	})
}

// Me returns the authenticated caller's profile
func (h *AuthHandler) Me(c echo.Context) error {
	user := middleware.CurrentUser(c)
	return c.JSON(http.StatusOK, user)
}
