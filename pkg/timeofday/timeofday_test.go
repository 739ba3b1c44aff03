package timeofday

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		input  string
		hour   int
		minute int
	}{
		{"00:00", 0, 0},
		{"09:00", 9, 0},
		{"14:30", 14, 30},
		{"23:59", 23, 59},
		{"9:05", 9, 5}, // unpadded hour still parses as two integers
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if got.Hour != tt.hour || got.Minute != tt.minute {
				t.Errorf("Parse(%q) = %02d:%02d, want %02d:%02d", tt.input, got.Hour, got.Minute, tt.hour, tt.minute)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"09",
		"09:00:00",
		"24:00",
		"-1:30",
		"12:60",
		"12:-5",
		"ab:cd",
		"12.30",
		"noon",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want FormatError", input)
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Errorf("Parse(%q) error = %T, want *FormatError", input, err)
			}
		})
	}
}

func TestString_ZeroPads(t *testing.T) {
	got := TimeOfDay{Hour: 9, Minute: 5}.String()
	if got != "09:05" {
		t.Errorf("String() = %q, want %q", got, "09:05")
	}
}

func TestMinutesRoundTrip(t *testing.T) {
	for m := 0; m < HoursPerDay*MinutesPerHour; m += 17 {
		if got := FromMinutes(m).Minutes(); got != m {
			t.Fatalf("FromMinutes(%d).Minutes() = %d", m, got)
		}
	}
}

func TestFromMinutes_WrapsHour(t *testing.T) {
	got := FromMinutes(24*60 + 30)
	want := TimeOfDay{Hour: 0, Minute: 30}
	if got != want {
		t.Errorf("FromMinutes wrapped to %v, want %v", got, want)
	}
}

func TestAddMinutes(t *testing.T) {
	got := MustParse("23:30").AddMinutes(60)
	if got.String() != "00:30" {
		t.Errorf("23:30 + 60m = %s, want 00:30", got)
	}
}

func TestCompare_TotalOrder(t *testing.T) {
	early := MustParse("08:15")
	late := MustParse("17:45")

	if !early.Before(late) {
		t.Error("expected 08:15 before 17:45")
	}
	if !late.After(early) {
		t.Error("expected 17:45 after 08:15")
	}
	if c := early.Compare(late); c != -1 {
		t.Errorf("Compare = %d, want -1", c)
	}
	if c := late.Compare(early); c != 1 {
		t.Errorf("Compare = %d, want 1", c)
	}
	if c := early.Compare(early); c != 0 {
		t.Errorf("Compare = %d, want 0", c)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	original := MustParse("14:30")

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"14:30"` {
		t.Errorf("Marshal = %s, want %q", data, `"14:30"`)
	}

	var decoded TimeOfDay
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("round trip = %v, want %v", decoded, original)
	}
}

func TestJSONUnmarshal_Invalid(t *testing.T) {
	var decoded TimeOfDay
	if err := json.Unmarshal([]byte(`"25:00"`), &decoded); err == nil {
		t.Error("expected error decoding 25:00")
	}
	if err := json.Unmarshal([]byte(`1430`), &decoded); err == nil {
		t.Error("expected error decoding a number")
	}
}
