// Package validator registers custom validation functions with Gin's binding
// engine.
package validator

import (
	"math"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"paisa/internal/engine"
)

// Register installs all custom validators. Call once at startup before any
// request binding happens.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("direction", validateDirection)
		_ = v.RegisterValidation("entry_type", validateEntryType)
		_ = v.RegisterValidation("preset", validatePreset)
		_ = v.RegisterValidation("finite", validateFinite)
	}
}

func validateDirection(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debit", "credit":
		return true
	}
	return false
}

func validateEntryType(fl validator.FieldLevel) bool {
	return engine.KnownEntryType(engine.EntryType(fl.Field().String()))
}

func validatePreset(fl validator.FieldLevel) bool {
	return engine.ValidPresetName(fl.Field().String())
}

// validateFinite rejects NaN and infinity, which survive JSON decoding when
// clients send them as quoted extremes through permissive parsers upstream.
func validateFinite(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
