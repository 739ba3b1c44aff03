package model

import (
	"encoding/json"
	"testing"

	"insightery/pkg/timeofday"
)

func TestDefaultWeek(t *testing.T) {
	week := DefaultWeek()

	if len(week) != 7 {
		t.Fatalf("expected 7 days, got %d", len(week))
	}
	for i, day := range week {
		if day.Day != Days[i] {
			t.Errorf("day %d = %q, want %q", i, day.Day, Days[i])
		}
		if day.Active {
			t.Errorf("day %q should start inactive", day.Day)
		}
		if day.Times == nil || len(day.Times) != 0 {
			t.Errorf("day %q should have an empty, non-nil slot list", day.Day)
		}
	}
}

func TestWeek_DayLookup(t *testing.T) {
	week := DefaultWeek()

	entry := week.Day("  Monday ")
	if entry == nil {
		t.Fatal("expected lookup by normalized name to succeed")
	}
	entry.Active = true
	if !week[0].Active {
		t.Error("Day should return a pointer into the week, not a copy")
	}

	if week.Day("noday") != nil {
		t.Error("expected nil for a non-weekday name")
	}
}

func TestWeek_UnmarshalArray(t *testing.T) {
	payload := `[
		{"day":"monday","active":true,"times":[{"start_time":"09:00","end_time":"10:00","rate":25}]},
		{"day":"tuesday","active":false,"times":[]}
	]`

	var week Week
	if err := json.Unmarshal([]byte(payload), &week); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if len(week) != 7 {
		t.Fatalf("expected normalization to 7 days, got %d", len(week))
	}
	monday := week.Day("monday")
	if !monday.Active || len(monday.Times) != 1 {
		t.Fatalf("monday = %+v", monday)
	}
	slot := monday.Times[0]
	if slot.Start.String() != "09:00" || slot.End.String() != "10:00" || slot.Rate != 25 {
		t.Errorf("unexpected slot %+v", slot)
	}
	for _, day := range Days[1:] {
		if week.Day(day).Active {
			t.Errorf("day %q should be inactive", day)
		}
	}
}

func TestWeek_UnmarshalObjectKeyedByDay(t *testing.T) {
	payload := `{
		"Wednesday": {"active":true,"times":[{"start_time":"14:00","end_time":"15:00","rate":40}]},
		"friday": {"day":"friday","active":true,"times":[{"start_time":"09:30","end_time":"10:30","rate":10}]}
	}`

	var week Week
	if err := json.Unmarshal([]byte(payload), &week); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if len(week) != 7 {
		t.Fatalf("expected 7 days, got %d", len(week))
	}
	if week[0].Day != "monday" || week[6].Day != "sunday" {
		t.Errorf("object form must re-project into Monday..Sunday order, got %q..%q", week[0].Day, week[6].Day)
	}

	wednesday := week.Day("wednesday")
	if !wednesday.Active || len(wednesday.Times) != 1 || wednesday.Times[0].Start.String() != "14:00" {
		t.Errorf("wednesday = %+v", wednesday)
	}
	if monday := week.Day("monday"); monday.Active || len(monday.Times) != 0 {
		t.Errorf("absent days must decode as inactive with empty times, got %+v", monday)
	}
}

// Feeding a day-object-keyed payload through decode then encode must yield
// the canonical 7-element array with identical day contents.
func TestWeek_ObjectToArrayRoundTrip(t *testing.T) {
	payload := `{"tuesday":{"active":true,"times":[{"start_time":"10:00","end_time":"11:00","rate":15}]}}`

	var week Week
	if err := json.Unmarshal([]byte(payload), &week); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	encoded, err := json.Marshal(week)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var roundTripped []DayAvailability
	if err := json.Unmarshal(encoded, &roundTripped); err != nil {
		t.Fatalf("re-decode canonical array: %v", err)
	}
	if len(roundTripped) != 7 {
		t.Fatalf("canonical form must have 7 entries, got %d", len(roundTripped))
	}
	for i, day := range roundTripped {
		if day.Day != Days[i] {
			t.Errorf("entry %d = %q, want %q", i, day.Day, Days[i])
		}
		if day.Times == nil {
			t.Errorf("day %q times must encode as [], not null", day.Day)
		}
	}
	tuesday := roundTripped[1]
	if !tuesday.Active || len(tuesday.Times) != 1 || tuesday.Times[0].Rate != 15 {
		t.Errorf("tuesday contents lost in round trip: %+v", tuesday)
	}
}

func TestWeek_NormalizeDropsDuplicateDays(t *testing.T) {
	week := Week{
		{Day: "monday", Active: true, Times: []Slot{{Start: timeofday.MustParse("09:00"), End: timeofday.MustParse("10:00")}}},
		{Day: "Monday", Active: false},
	}

	normalized := week.Normalize()
	monday := normalized.Day("monday")
	if !monday.Active {
		t.Error("first occurrence of a duplicated day must win")
	}
}

func TestException_UnmarshalNormalizesDate(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"plain date", `{"exception_date":"2025-06-01","start_time":"10:00","end_time":"11:00"}`, "2025-06-01"},
		{"iso datetime", `{"exception_date":"2025-06-01T09:30:00Z","start_time":"10:00","end_time":"11:00"}`, "2025-06-01"},
		{"missing date", `{"start_time":"10:00","end_time":"11:00"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var exc AvailabilityException
			if err := json.Unmarshal([]byte(tt.payload), &exc); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if exc.Date != tt.want {
				t.Errorf("Date = %q, want %q", exc.Date, tt.want)
			}
		})
	}
}

func TestException_RateNeverSerialized(t *testing.T) {
	exc := AvailabilityException{
		Date:      "2025-06-01",
		StartTime: "10:00",
		EndTime:   "11:00",
		Rate:      99,
	}

	data, err := json.Marshal(exc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var asMap map[string]any
	if err := json.Unmarshal(data, &asMap); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, present := asMap["rate"]; present {
		t.Error("exception rate must not appear on the wire")
	}
	if asMap["exception_date"] != "2025-06-01" {
		t.Errorf("exception_date = %v", asMap["exception_date"])
	}
}

func TestSchedule_WireRoundTrip(t *testing.T) {
	payload := `{
		"availability": {"monday":{"active":true,"times":[{"start_time":"09:00","end_time":"10:00","rate":20}]}},
		"availability_exceptions": [{"exception_date":"2025-06-01T00:00:00Z","start_time":"10:00","end_time":"11:00"}]
	}`

	var schedule Schedule
	if err := json.Unmarshal([]byte(payload), &schedule); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	encoded, err := json.Marshal(&schedule)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded Schedule
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	if len(decoded.Availability) != 7 {
		t.Fatalf("expected canonical week, got %d entries", len(decoded.Availability))
	}
	if got := decoded.Availability.Day("monday").Times[0].Rate; got != 20 {
		t.Errorf("monday rate = %v, want 20", got)
	}
	if len(decoded.Exceptions) != 1 || decoded.Exceptions[0].Date != "2025-06-01" {
		t.Errorf("exceptions = %+v", decoded.Exceptions)
	}
}

func TestSchedule_NormalizeFillsNilCollections(t *testing.T) {
	var schedule Schedule
	schedule.Normalize()

	if len(schedule.Availability) != 7 {
		t.Errorf("expected 7 days after normalize, got %d", len(schedule.Availability))
	}
	if schedule.Exceptions == nil {
		t.Error("expected non-nil exceptions slice")
	}
}
