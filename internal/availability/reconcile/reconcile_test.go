package reconcile

import (
	"reflect"
	"testing"

	"insightery/pkg/model"
)

func exc(date, start, end string) model.AvailabilityException {
	return model.AvailabilityException{Date: date, StartTime: start, EndTime: end}
}

func TestKey(t *testing.T) {
	tests := []struct {
		name    string
		input   model.AvailabilityException
		wantKey string
		wantOK  bool
	}{
		{
			name:    "complete entry",
			input:   exc("2025-06-01", "10:00", "11:00"),
			wantKey: "2025-06-01|10:00|11:00",
			wantOK:  true,
		},
		{
			name:   "missing date",
			input:  exc("", "10:00", "11:00"),
			wantOK: false,
		},
		{
			name:   "missing start",
			input:  exc("2025-06-01", "", "11:00"),
			wantOK: false,
		},
		{
			name:   "missing end",
			input:  exc("2025-06-01", "10:00", ""),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := Key(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Key() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && key != tt.wantKey {
				t.Errorf("Key() = %q, want %q", key, tt.wantKey)
			}
		})
	}
}

func TestDuplicates(t *testing.T) {
	tests := []struct {
		name  string
		input []model.AvailabilityException
		want  []int
	}{
		{
			name:  "no duplicates",
			input: []model.AvailabilityException{exc("2025-06-01", "10:00", "11:00"), exc("2025-06-02", "10:00", "11:00")},
			want:  nil,
		},
		{
			name: "later members flagged, first survives",
			input: []model.AvailabilityException{
				exc("2025-06-01", "10:00", "11:00"),
				exc("2025-06-02", "10:00", "11:00"),
				exc("2025-06-01", "10:00", "11:00"),
				exc("2025-06-01", "10:00", "11:00"),
			},
			want: []int{2, 3},
		},
		{
			name: "incomplete entries never flagged",
			input: []model.AvailabilityException{
				exc("", "10:00", "11:00"),
				exc("", "10:00", "11:00"),
			},
			want: nil,
		},
		{
			name: "same time on different dates is not a duplicate",
			input: []model.AvailabilityException{
				exc("2025-06-01", "10:00", "11:00"),
				exc("2025-06-08", "10:00", "11:00"),
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Duplicates(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Duplicates() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReconcile(t *testing.T) {
	t.Run("removes second of identical pair regardless of rate", func(t *testing.T) {
		first := exc("2025-06-01", "10:00", "11:00")
		first.Rate = 50
		second := exc("2025-06-01", "10:00", "11:00")
		second.Rate = 75

		kept, removed := Reconcile([]model.AvailabilityException{first, second})
		if removed != 1 {
			t.Fatalf("Reconcile() removed = %d, want 1", removed)
		}
		if len(kept) != 1 || kept[0].Rate != 50 {
			t.Errorf("Reconcile() kept = %+v, want the first entry", kept)
		}
	})

	t.Run("preserves order and keeps lowest index per key", func(t *testing.T) {
		input := []model.AvailabilityException{
			exc("2025-06-02", "09:00", "10:00"),
			exc("2025-06-01", "10:00", "11:00"),
			exc("2025-06-02", "09:00", "10:00"),
			exc("2025-06-03", "12:00", "13:00"),
			exc("2025-06-01", "10:00", "11:00"),
		}
		want := []model.AvailabilityException{
			exc("2025-06-02", "09:00", "10:00"),
			exc("2025-06-01", "10:00", "11:00"),
			exc("2025-06-03", "12:00", "13:00"),
		}

		kept, removed := Reconcile(input)
		if removed != 2 {
			t.Fatalf("Reconcile() removed = %d, want 2", removed)
		}
		if !reflect.DeepEqual(kept, want) {
			t.Errorf("Reconcile() kept = %+v, want %+v", kept, want)
		}
	})

	t.Run("incomplete entries survive even when otherwise identical", func(t *testing.T) {
		input := []model.AvailabilityException{
			exc("", "10:00", "11:00"),
			exc("", "10:00", "11:00"),
		}
		kept, removed := Reconcile(input)
		if removed != 0 {
			t.Fatalf("Reconcile() removed = %d, want 0", removed)
		}
		if len(kept) != 2 {
			t.Errorf("Reconcile() kept %d entries, want 2", len(kept))
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		input := []model.AvailabilityException{
			exc("2025-06-01", "10:00", "11:00"),
			exc("2025-06-01", "10:00", "11:00"),
			exc("", "10:00", "11:00"),
		}
		once, _ := Reconcile(input)
		twice, removed := Reconcile(once)
		if removed != 0 {
			t.Fatalf("second Reconcile() removed = %d, want 0", removed)
		}
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("second Reconcile() changed the sequence: %+v vs %+v", once, twice)
		}
	})
}
