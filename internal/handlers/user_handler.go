package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paisa/internal/engine"
	apperrors "paisa/internal/errors"
	"paisa/internal/services"
)

// UserHandler manages user provisioning and round-up settings.
type UserHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserServicer, auditService services.AuditServicer) *UserHandler {
	return &UserHandler{userService: userService, auditService: auditService}
}

// CreateUserRequest is the payload for provisioning a user.
type CreateUserRequest struct {
	Email  string `json:"email" binding:"required,email"`
	Name   string `json:"name" binding:"required,max=255"`
	Preset string `json:"preset" binding:"omitempty,preset"`
}

// Create provisions a user with default round-up settings.
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.CreateUser(req.Email, req.Name, req.Preset)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(user.ID, "CREATE_USER", "user", user.ID, c.ClientIP(),
		map[string]interface{}{"preset": user.Preset})

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// Me returns the scoped user.
func (h *UserHandler) Me(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateSettingsRequest is the payload for replacing round-up settings.
type UpdateSettingsRequest struct {
	Preset         string  `json:"preset" binding:"required,preset"`
	RoundToNearest float64 `json:"round_to_nearest" binding:"required,gt=0,finite"`
	MinRoundup     float64 `json:"min_roundup" binding:"gte=0,finite"`
	MaxRoundup     float64 `json:"max_roundup" binding:"required,gt=0,finite"`
}

// UpdateSettings replaces the scoped user's preset and round-up rule.
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.UpdateSettings(userID, req.Preset, engine.RoundupRule{
		RoundToNearest: req.RoundToNearest,
		MinRoundup:     req.MinRoundup,
		MaxRoundup:     req.MaxRoundup,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_SETTINGS", "user", userID, c.ClientIP(),
		map[string]interface{}{"preset": req.Preset, "round_to_nearest": req.RoundToNearest})

	c.JSON(http.StatusOK, gin.H{"user": user})
}
