package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/habitkit/habit-api/internal/dates"
	"github.com/habitkit/habit-api/internal/models"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	// Register custom validators for enums
	// These should never fail in normal operation, but log if they do
	if err := Validate.RegisterValidation("log_status", validateLogStatus); err != nil {
		panic(fmt.Sprintf("failed to register log_status validator: %v", err))
	}
	if err := Validate.RegisterValidation("frequency_type", validateFrequencyType); err != nil {
		panic(fmt.Sprintf("failed to register frequency_type validator: %v", err))
	}
	if err := Validate.RegisterValidation("calendar_date", validateCalendarDate); err != nil {
		panic(fmt.Sprintf("failed to register calendar_date validator: %v", err))
	}
}

// validateLogStatus validates that a string is a valid LogStatus enum value
func validateLogStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	switch models.LogStatus(value) {
	case models.LogStatusCompleted, models.LogStatusPartial, models.LogStatusSkipped, models.LogStatusFailed:
		return true
	default:
		return false
	}
}

// validateFrequencyType validates that a string is a valid FrequencyType enum value
func validateFrequencyType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	switch models.FrequencyType(value) {
	case models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyMonthly, models.FrequencyCustom:
		return true
	default:
		return false
	}
}

// validateCalendarDate validates that a string is a real YYYY-MM-DD calendar day
func validateCalendarDate(fl validator.FieldLevel) bool {
	_, err := dates.Parse(fl.Field().String())
	return err == nil
}

// SanitizeText sanitizes text input by trimming whitespace and removing control characters
func SanitizeText(text string) string {
	// Trim whitespace
	text = strings.TrimSpace(text)

	// Remove control characters except newline and tab
	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}

// ValidateLogStatus validates a LogStatus string value
func ValidateLogStatus(value string) error {
	status := models.LogStatus(value)
	switch status {
	case models.LogStatusCompleted, models.LogStatusPartial, models.LogStatusSkipped, models.LogStatusFailed:
		return nil
	default:
		return fmt.Errorf("invalid status: %s (must be 'completed', 'partial', 'skipped', or 'failed')", value)
	}
}

// ValidateFrequencyType validates a FrequencyType string value
func ValidateFrequencyType(value string) error {
	ft := models.FrequencyType(value)
	switch ft {
	case models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyMonthly, models.FrequencyCustom:
		return nil
	default:
		return fmt.Errorf("invalid frequency_type: %s (must be 'daily', 'weekly', 'monthly', or 'custom')", value)
	}
}

// ValidateCalendarDate validates a YYYY-MM-DD date string and returns the day
func ValidateCalendarDate(value string) (time.Time, error) {
	return dates.Parse(value)
}

// ValidateRating validates an optional 1-10 rating
func ValidateRating(name string, value *int) error {
	if value == nil {
		return nil
	}
	if *value < models.MinRating || *value > models.MaxRating {
		return fmt.Errorf("%s must be between %d and %d", name, models.MinRating, models.MaxRating)
	}
	return nil
}
