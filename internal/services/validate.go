package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// NewValidator builds the request validator with the custom date and time
// format checks used by every submission endpoint.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.RegisterValidation("dateformat", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
	v.RegisterValidation("timeformat", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("15:04", fl.Field().String())
		return err == nil
	})

	return v
}

var validationMessages = map[string]string{
	"Name.notblank":           "Name is required and must be a non-empty string",
	"Name.required":           "Name is required and must be a non-empty string",
	"DateOfBirth.required":    "Date of birth is required (format: YYYY-MM-DD)",
	"DateOfBirth.dateformat":  "Date of birth must be in YYYY-MM-DD format",
	"TimeOfBirth.required":    "Time of birth is required (format: HH:MM)",
	"TimeOfBirth.timeformat":  "Time of birth must be in HH:MM format (24-hour)",
	"PlaceOfBirth.required":   "Place of birth is required and must be a non-empty string",
	"PlaceOfBirth.notblank":   "Place of birth is required and must be a non-empty string",
	"Latitude.min":            "Latitude must be a number between -90 and 90",
	"Latitude.max":            "Latitude must be a number between -90 and 90",
	"Longitude.min":           "Longitude must be a number between -180 and 180",
	"Longitude.max":           "Longitude must be a number between -180 and 180",
	"ChartStyle.oneof":        "Chart style must be one of: northIndian, southIndian, eastIndian, western",
	"ImageURL.required":       "Palm image URL is required",
	"ImageURL.url":            "Palm image URL must be a valid URL",
	"HandType.oneof":          "Hand type must be one of: left, right, both",
	"AnalysisType.oneof":      "Analysis type must be one of: basic, detailed, comprehensive",
	"SpecificQuestions.max":   "At most 10 specific questions are allowed",
	"ReportType.oneof":        "Report type must be one of: basic, detailed, comprehensive",
	"PartnerDateOfBirth.dateformat": "Partner date of birth must be in YYYY-MM-DD format",
}

// validateRequest runs the validator and folds all field violations into a
// single validation-stage error, so the caller sees every problem at once.
func validateRequest(v *validator.Validate, req interface{}) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return newProcessingError(StageValidation, "invalid-argument", err.Error(), err)
	}

	var messages []string
	for _, ve := range verrs {
		key := ve.Field() + "." + ve.Tag()
		if msg, found := validationMessages[key]; found {
			messages = append(messages, msg)
		} else {
			messages = append(messages, fmt.Sprintf("%s failed %s validation", ve.Field(), ve.Tag()))
		}
	}
	return newProcessingError(StageValidation, "invalid-argument", strings.Join(messages, "; "), err)
}
