package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"insightery/pkg/sanitizer"
	"insightery/pkg/timeofday"
)

// Days is the canonical weekday order used everywhere a week is rendered or
// persisted. Template lookups go by day name, never by array position.
var Days = []string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

// Slot is a single bookable hour-long time range with a price per booking.
type Slot struct {
	Start timeofday.TimeOfDay `json:"start_time" bson:"start_time"`
	End   timeofday.TimeOfDay `json:"end_time" bson:"end_time"`
	Rate  float64             `json:"rate" bson:"rate" validate:"gte=0"`
}

// DayAvailability is one weekday of the recurring template. An inactive day
// always has an empty Times list.
type DayAvailability struct {
	Day    string `json:"day" bson:"day" validate:"required,weekday_name"`
	Active bool   `json:"active" bson:"active"`
	Times  []Slot `json:"times" bson:"times" validate:"dive"`
}

// Week is the seven-entry recurring availability template in canonical
// Monday-to-Sunday order.
//
// Stores deliver the week either as an array or as an object keyed by day
// name; both decode into the canonical array form. Encoding always produces
// the array.
type Week []DayAvailability

// DefaultWeek returns seven inactive days with empty slot lists.
func DefaultWeek() Week {
	week := make(Week, 0, len(Days))
	for _, day := range Days {
		week = append(week, DayAvailability{Day: day, Active: false, Times: []Slot{}})
	}
	return week
}

// Day returns the entry for the named weekday, or nil when the name is not a
// weekday. The name is normalized before lookup.
func (w Week) Day(name string) *DayAvailability {
	name = sanitizer.NormalizeDay(name)
	for i := range w {
		if w[i].Day == name {
			return &w[i]
		}
	}
	return nil
}

// Normalize re-projects arbitrary day entries onto the canonical seven-day
// array. Days absent from the input come back inactive with no slots; nil
// slot lists become empty so inactive days serialize as [].
func (w Week) Normalize() Week {
	byDay := make(map[string]DayAvailability, len(w))
	for _, entry := range w {
		day := sanitizer.NormalizeDay(entry.Day)
		if _, seen := byDay[day]; seen {
			continue
		}
		entry.Day = day
		byDay[day] = entry
	}

	normalized := make(Week, 0, len(Days))
	for _, day := range Days {
		entry, ok := byDay[day]
		if !ok {
			entry = DayAvailability{Day: day, Active: false}
		}
		if entry.Times == nil {
			entry.Times = []Slot{}
		}
		normalized = append(normalized, entry)
	}
	return normalized
}

// UnmarshalJSON accepts both wire shapes for the weekly template: a plain
// array of day entries and an object keyed by day name. The result is always
// the normalized canonical array.
func (w *Week) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var asArray []DayAvailability
		if err := json.Unmarshal(trimmed, &asArray); err != nil {
			return err
		}
		*w = Week(asArray).Normalize()
		return nil
	}

	var asObject map[string]DayAvailability
	if err := json.Unmarshal(trimmed, &asObject); err != nil {
		return fmt.Errorf("availability must be an array of days or an object keyed by day name: %w", err)
	}

	entries := make(Week, 0, len(asObject))
	for key, entry := range asObject {
		if entry.Day == "" {
			entry.Day = key
		}
		entries = append(entries, entry)
	}
	*w = entries.Normalize()
	return nil
}

func (w Week) MarshalJSON() ([]byte, error) {
	return json.Marshal([]DayAvailability(w.Normalize()))
}

// AvailabilityException is a one-off, date-stamped slot outside the weekly
// template. Existence means availability; there is no active flag.
//
// Rate exists for in-editor symmetry with Slot but is never transmitted:
// the persisted exception record carries date and times only.
type AvailabilityException struct {
	Date      string  `json:"exception_date" bson:"exception_date" validate:"required,iso_date"`
	StartTime string  `json:"start_time" bson:"start_time" validate:"required,hhmm_time"`
	EndTime   string  `json:"end_time" bson:"end_time" validate:"required,hhmm_time"`
	Rate      float64 `json:"-" bson:"-"`
}

// UnmarshalJSON normalizes the inbound exception_date, which may arrive as an
// ISO datetime or a plain date string.
func (e *AvailabilityException) UnmarshalJSON(data []byte) error {
	type alias AvailabilityException
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	decoded.Date = sanitizer.NormalizeDate(decoded.Date)
	*e = AvailabilityException(decoded)
	return nil
}

// Schedule is the full provider-side availability definition: the recurring
// weekly template plus its date-specific exceptions. It doubles as the wire
// payload exchanged with the store.
type Schedule struct {
	Availability Week                    `json:"availability" bson:"availability" validate:"dive"`
	Exceptions   []AvailabilityException `json:"availability_exceptions" bson:"availability_exceptions" validate:"dive"`
}

// DefaultSchedule is the empty-but-usable state: seven inactive days and no
// exceptions.
func DefaultSchedule() *Schedule {
	return &Schedule{
		Availability: DefaultWeek(),
		Exceptions:   []AvailabilityException{},
	}
}

// Normalize canonicalizes the week and replaces nil collections with empty
// ones so the serialized form is stable.
func (s *Schedule) Normalize() {
	s.Availability = s.Availability.Normalize()
	if s.Exceptions == nil {
		s.Exceptions = []AvailabilityException{}
	}
}
