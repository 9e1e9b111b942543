package utils

import (
	"calmwave/models"
	"calmwave/services/analytics"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations adds the domain enum tags to gin's validator engine.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	rules := map[string]validator.Func{
		"emotion": func(fl validator.FieldLevel) bool {
			return analytics.IsEmotion(fl.Field().String())
		},
		"alcohol": func(fl validator.FieldLevel) bool {
			f := models.AlcoholFlag(fl.Field().String())
			return f == models.AlcoholYes || f == models.AlcoholNo
		},
		"bookingstatus": func(fl validator.FieldLevel) bool {
			switch models.BookingStatus(fl.Field().String()) {
			case models.BookingPending, models.BookingApproved, models.BookingRejected:
				return true
			}
			return false
		},
		"role": func(fl validator.FieldLevel) bool {
			r := models.Role(fl.Field().String())
			return r == models.RoleUser || r == models.RoleTherapist
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}
