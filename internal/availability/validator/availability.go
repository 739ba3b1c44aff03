package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"insightery/internal/availability/reconcile"
	"insightery/pkg/logger"
	"insightery/pkg/model"
	"insightery/pkg/sanitizer"
	"insightery/pkg/timeofday"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

var isoDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type AvailabilityValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewAvailabilityValidator(log *logger.Logger) *AvailabilityValidator {
	v := validator.New()

	if err := v.RegisterValidation("hhmm_time", validateHHMMTime); err != nil {
		log.Fatal("Failed to register 'hhmm_time' validator", "error", err)
	}
	if err := v.RegisterValidation("iso_date", validateISODate); err != nil {
		log.Fatal("Failed to register 'iso_date' validator", "error", err)
	}
	if err := v.RegisterValidation("weekday_name", validateWeekdayName); err != nil {
		log.Fatal("Failed to register 'weekday_name' validator", "error", err)
	}

	log.Info("Availability validator initialized successfully")

	return &AvailabilityValidator{
		validate: v,
		logger:   log,
	}
}

func validateHHMMTime(fl validator.FieldLevel) bool {
	_, err := timeofday.Parse(fl.Field().String())
	return err == nil
}

func validateISODate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return isoDateRegex.MatchString(value) && sanitizer.IsDate(value)
}

func validateWeekdayName(fl validator.FieldLevel) bool {
	day := sanitizer.NormalizeDay(fl.Field().String())
	for _, d := range model.Days {
		if day == d {
			return true
		}
	}
	return false
}

// ValidateSchedule checks the full schedule the way save does: struct-level
// field rules, slot shape on every slot of every day, the inactive-day
// invariant, exception parsing and shape, and live duplicate flags. Returns
// ValidationErrors with one entry per broken rule, or nil when clean.
//
// Duplicates are flagged, not removed; incomplete exceptions are skipped by
// both the shape check and duplicate detection so in-progress rows never
// block other fields from being reported.
func (v *AvailabilityValidator) ValidateSchedule(s *model.Schedule) error {
	var result ValidationErrors

	if err := v.validate.Struct(s); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			result = append(result, v.translateFieldErrors(fieldErrs)...)
		} else {
			return err
		}
	}

	for _, day := range s.Availability {
		if !day.Active && len(day.Times) > 0 {
			result = append(result, ValidationError{
				Field:   fmt.Sprintf("availability[%s]", day.Day),
				Message: "inactive day must not have time slots",
			})
		}
		for i, slot := range day.Times {
			for _, violation := range CheckSlot(slot.Start, slot.End) {
				result = append(result, ValidationError{
					Field:   fmt.Sprintf("availability[%s].times[%d]", day.Day, i),
					Message: violation.Message,
				})
			}
		}
	}

	for i, exc := range s.Exceptions {
		if exc.Date == "" || exc.StartTime == "" || exc.EndTime == "" {
			continue
		}
		start, startErr := timeofday.Parse(exc.StartTime)
		end, endErr := timeofday.Parse(exc.EndTime)
		if startErr != nil || endErr != nil {
			// already reported by the hhmm_time field rule
			continue
		}
		for _, violation := range CheckSlot(start, end) {
			result = append(result, ValidationError{
				Field:   fmt.Sprintf("availability_exceptions[%d]", i),
				Message: violation.Message,
			})
		}
	}

	for _, i := range reconcile.Duplicates(s.Exceptions) {
		result = append(result, ValidationError{
			Field:   fmt.Sprintf("availability_exceptions[%d]", i),
			Message: "duplicate of an earlier exception with the same date and times",
		})
	}

	if len(result) > 0 {
		return result
	}
	return nil
}

func (v *AvailabilityValidator) translateFieldErrors(errs validator.ValidationErrors) ValidationErrors {
	var translated ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "hhmm_time":
			message = fmt.Sprintf("%s must be a valid HH:MM 24-hour time", err.Field())
		case "iso_date":
			message = fmt.Sprintf("%s must be a valid YYYY-MM-DD date", err.Field())
		case "weekday_name":
			message = fmt.Sprintf("%s must be a weekday name (monday through sunday)", err.Field())
		case "gte":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		}

		translated = append(translated, ValidationError{
			Field:   err.Namespace(),
			Message: message,
		})
	}

	return translated
}
