package models

// User holds the per-user round-up configuration and chosen allocation
// preset. There is no credential material here: identity is asserted by the
// upstream gateway.
type User struct {
	Base
	Email          string  `gorm:"uniqueIndex;not null" json:"email"`
	Name           string  `json:"name"`
	Preset         string  `gorm:"not null;default:growth" json:"preset"`
	RoundToNearest float64 `gorm:"not null;default:10" json:"round_to_nearest"`
	MinRoundup     float64 `gorm:"not null;default:1" json:"min_roundup"`
	MaxRoundup     float64 `gorm:"not null;default:50" json:"max_roundup"`
	IsActive       bool    `gorm:"not null;default:true" json:"is_active"`
}
