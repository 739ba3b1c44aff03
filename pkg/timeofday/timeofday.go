// Package timeofday provides a comparable instant-of-day value parsed from
// and rendered to zero-padded "HH:MM" strings. Values carry no date and no
// timezone.
package timeofday

import (
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

const (
	Layout = "HH:MM"

	MinutesPerHour = 60
	HoursPerDay    = 24
)

type TimeOfDay struct {
	Hour   int
	Minute int
}

// FormatError reports a string that could not be parsed as "HH:MM".
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid time %q: expected %s in 24-hour format", e.Input, Layout)
}

// Parse converts a "HH:MM" string into a TimeOfDay. It fails with *FormatError
// unless the input is two colon-separated integers with hour 0-23 and
// minute 0-59.
func Parse(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return TimeOfDay{}, &FormatError{Input: s}
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, &FormatError{Input: s}
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, &FormatError{Input: s}
	}

	if hour < 0 || hour >= HoursPerDay || minute < 0 || minute >= MinutesPerHour {
		return TimeOfDay{}, &FormatError{Input: s}
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// MustParse panics on malformed input. Intended for constants and tests.
func MustParse(s string) TimeOfDay {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes returns the value as minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*MinutesPerHour + t.Minute
}

// FromMinutes builds a TimeOfDay from minutes since midnight. The hour wraps
// at 24 so adding an hour to 23:30 yields 00:30.
func FromMinutes(m int) TimeOfDay {
	m %= HoursPerDay * MinutesPerHour
	if m < 0 {
		m += HoursPerDay * MinutesPerHour
	}
	return TimeOfDay{Hour: m / MinutesPerHour, Minute: m % MinutesPerHour}
}

// AddMinutes returns the value shifted by delta minutes, wrapping at midnight.
func (t TimeOfDay) AddMinutes(delta int) TimeOfDay {
	return FromMinutes(t.Minutes() + delta)
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.Minutes() > other.Minutes()
}

// Compare orders two values by minutes since midnight, returning -1, 0 or 1.
func (t TimeOfDay) Compare(other TimeOfDay) int {
	switch {
	case t.Minutes() < other.Minutes():
		return -1
	case t.Minutes() > other.Minutes():
		return 1
	default:
		return 0
	}
}

// MarshalJSON encodes the value as its "HH:MM" string so slots embed directly
// in wire payloads.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return &FormatError{Input: string(data)}
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalBSONValue stores the value as its "HH:MM" string, keeping Mongo
// documents identical to the wire payload.
func (t TimeOfDay) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(t.String())
}

func (t *TimeOfDay) UnmarshalBSONValue(bt bsontype.Type, data []byte) error {
	var s string
	if err := bson.UnmarshalValue(bt, data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
