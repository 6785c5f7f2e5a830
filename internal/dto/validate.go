package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/aiabusehotline/hotline-core/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("abuse_type", func(fl validator.FieldLevel) bool {
		return models.AbuseType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("web_report_type", func(fl validator.FieldLevel) bool {
		return models.WebReportType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("expected_volume", func(fl validator.FieldLevel) bool {
		return models.ExpectedVolume(fl.Field().String()).Valid()
	})
	return v
}

// Validate checks a decoded request body against its struct tags.
// Malformed requests are rejected here, before anything reaches the
// classifier.
func Validate(s interface{}) error {
	return validate.Struct(s)
}
