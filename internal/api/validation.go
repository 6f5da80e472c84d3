package api

import (
	"time"

	"github.com/AgentTarik/pizzeria-api/internal/hours"
	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator with the "hhmm" and "date" tags registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	RegisterValidations(v)
	return v
}

func RegisterValidations(v *validator.Validate) {
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, ok := hours.ParseClock(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
}
