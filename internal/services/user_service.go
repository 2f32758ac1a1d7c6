package services

import (
	"errors"

	"gorm.io/gorm"

	"paisa/internal/engine"
	apperrors "paisa/internal/errors"
	"paisa/internal/models"
)

// userService manages users and their round-up settings.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// CreateUser registers a user with default round-up settings and the given
// preset (growth when empty).
func (s *userService) CreateUser(email, name, preset string) (*models.User, error) {
	if preset == "" {
		preset = engine.PresetGrowth
	}
	if !engine.ValidPresetName(preset) {
		return nil, apperrors.WithMessage(apperrors.ErrUnknownPreset, "Unknown preset: "+preset)
	}

	user := &models.User{
		Email:          email,
		Name:           name,
		Preset:         preset,
		RoundToNearest: 10,
		MinRoundup:     1,
		MaxRoundup:     50,
		IsActive:       true,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}

// GetUserByID returns a user by ID.
func (s *userService) GetUserByID(userID string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// UpdateSettings replaces the user's preset and round-up rule. A malformed
// rule is rejected outright.
func (s *userService) UpdateSettings(userID, preset string, rule engine.RoundupRule) (*models.User, error) {
	if !engine.ValidPresetName(preset) {
		return nil, apperrors.WithMessage(apperrors.ErrUnknownPreset, "Unknown preset: "+preset)
	}
	if err := rule.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidRule, err)
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"preset":           preset,
		"round_to_nearest": rule.RoundToNearest,
		"min_roundup":      rule.MinRoundup,
		"max_roundup":      rule.MaxRoundup,
	}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}

// ListActiveUsers returns all active users, for the sweep scheduler.
func (s *userService) ListActiveUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Where("is_active = ?", true).Find(&users).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return users, nil
}

// roundupRule maps a user's persisted settings to an engine rule.
func roundupRule(u *models.User) engine.RoundupRule {
	return engine.RoundupRule{
		RoundToNearest: u.RoundToNearest,
		MinRoundup:     u.MinRoundup,
		MaxRoundup:     u.MaxRoundup,
	}
}
