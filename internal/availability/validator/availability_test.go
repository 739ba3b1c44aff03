package validator

import (
	"errors"
	"strings"
	"testing"

	"insightery/pkg/logger"
	"insightery/pkg/model"
	"insightery/pkg/timeofday"
)

func newTestValidator() *AvailabilityValidator {
	return NewAvailabilityValidator(logger.Discard())
}

func scheduleWithSlot(day, start, end string) *model.Schedule {
	s := model.DefaultSchedule()
	d := s.Availability.Day(day)
	d.Active = true
	d.Times = []model.Slot{{
		Start: timeofday.MustParse(start),
		End:   timeofday.MustParse(end),
		Rate:  50,
	}}
	return s
}

func fieldErrors(t *testing.T, err error) ValidationErrors {
	t.Helper()
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %T: %v", err, err)
	}
	return verrs
}

func hasFieldError(verrs ValidationErrors, field, fragment string) bool {
	for _, e := range verrs {
		if e.Field == field && strings.Contains(e.Message, fragment) {
			return true
		}
	}
	return false
}

func TestValidateScheduleAcceptsDefault(t *testing.T) {
	v := newTestValidator()
	if err := v.ValidateSchedule(model.DefaultSchedule()); err != nil {
		t.Errorf("ValidateSchedule(default) = %v, want nil", err)
	}
}

func TestValidateScheduleAcceptsValidSlots(t *testing.T) {
	v := newTestValidator()
	s := scheduleWithSlot("monday", "09:00", "10:00")
	s.Exceptions = []model.AvailabilityException{
		{Date: "2025-06-01", StartTime: "10:00", EndTime: "11:00"},
	}
	if err := v.ValidateSchedule(s); err != nil {
		t.Errorf("ValidateSchedule() = %v, want nil", err)
	}
}

func TestValidateScheduleRejectsNinetyMinuteSlot(t *testing.T) {
	v := newTestValidator()
	s := scheduleWithSlot("monday", "09:00", "10:30")

	verrs := fieldErrors(t, v.ValidateSchedule(s))
	if !hasFieldError(verrs, "availability[monday].times[0]", "exactly 60 minutes, got 90") {
		t.Errorf("missing NotOneHour error, got %v", verrs)
	}
}

func TestValidateScheduleRejectsInactiveDayWithSlots(t *testing.T) {
	v := newTestValidator()
	s := scheduleWithSlot("tuesday", "09:00", "10:00")
	s.Availability.Day("tuesday").Active = false

	verrs := fieldErrors(t, v.ValidateSchedule(s))
	if !hasFieldError(verrs, "availability[tuesday]", "inactive day") {
		t.Errorf("missing inactive-day error, got %v", verrs)
	}
}

func TestValidateScheduleRejectsMalformedExceptionTime(t *testing.T) {
	v := newTestValidator()
	s := model.DefaultSchedule()
	s.Exceptions = []model.AvailabilityException{
		{Date: "2025-06-01", StartTime: "25:00", EndTime: "11:00"},
	}

	verrs := fieldErrors(t, v.ValidateSchedule(s))
	found := false
	for _, e := range verrs {
		if strings.Contains(e.Message, "HH:MM") {
			found = true
		}
	}
	if !found {
		t.Errorf("missing time format error, got %v", verrs)
	}
}

func TestValidateScheduleRejectsExceptionShape(t *testing.T) {
	v := newTestValidator()
	s := model.DefaultSchedule()
	s.Exceptions = []model.AvailabilityException{
		{Date: "2025-06-01", StartTime: "10:00", EndTime: "10:00"},
	}

	verrs := fieldErrors(t, v.ValidateSchedule(s))
	if !hasFieldError(verrs, "availability_exceptions[0]", "must be after") {
		t.Errorf("missing NonPositiveDuration error, got %v", verrs)
	}
}

func TestValidateScheduleFlagsLaterDuplicates(t *testing.T) {
	v := newTestValidator()
	s := model.DefaultSchedule()
	s.Exceptions = []model.AvailabilityException{
		{Date: "2025-06-01", StartTime: "10:00", EndTime: "11:00"},
		{Date: "2025-06-01", StartTime: "10:00", EndTime: "11:00"},
	}

	verrs := fieldErrors(t, v.ValidateSchedule(s))
	if !hasFieldError(verrs, "availability_exceptions[1]", "duplicate") {
		t.Errorf("missing duplicate flag on index 1, got %v", verrs)
	}
	if hasFieldError(verrs, "availability_exceptions[0]", "duplicate") {
		t.Errorf("first occurrence must not be flagged, got %v", verrs)
	}
}

func TestValidateScheduleRejectsBadWeekdayName(t *testing.T) {
	v := newTestValidator()
	s := &model.Schedule{
		Availability: model.Week{{Day: "someday", Active: false, Times: []model.Slot{}}},
		Exceptions:   []model.AvailabilityException{},
	}
	// bypass Normalize on purpose: the raw entry carries the bad name

	verrs := fieldErrors(t, v.ValidateSchedule(s))
	found := false
	for _, e := range verrs {
		if strings.Contains(e.Message, "weekday name") {
			found = true
		}
	}
	if !found {
		t.Errorf("missing weekday_name error, got %v", verrs)
	}
}
