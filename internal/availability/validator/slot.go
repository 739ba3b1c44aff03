package validator

import (
	"fmt"

	"insightery/pkg/timeofday"
)

// SlotDurationMinutes is the only slot length the template accepts.
const SlotDurationMinutes = 60

type ViolationCode string

const (
	// MinuteMismatch means start and end do not land on the same minute of
	// the hour.
	MinuteMismatch ViolationCode = "MINUTE_MISMATCH"

	// NonPositiveDuration means end is not after start.
	NonPositiveDuration ViolationCode = "NON_POSITIVE_DURATION"

	// NotOneHour means the span is positive but not exactly 60 minutes.
	NotOneHour ViolationCode = "NOT_ONE_HOUR"
)

// Violation is one broken slot-shape rule. DiffMinutes carries the actual
// span for NotOneHour and is zero otherwise.
type Violation struct {
	Code        ViolationCode `json:"code"`
	Message     string        `json:"message"`
	DiffMinutes int           `json:"diff_minutes,omitempty"`
}

func (v Violation) Error() string {
	return v.Message
}

// CheckSlot reports every broken rule for a candidate (start, end) pair:
// minute alignment, positive duration, and the exact one-hour span. Minute
// alignment and ordering are always evaluated; the one-hour rule is only
// meaningful once end is after start, so its diff is reported only then.
// A nil result means the slot shape is valid.
func CheckSlot(start, end timeofday.TimeOfDay) []Violation {
	var violations []Violation

	if start.Minute != end.Minute {
		violations = append(violations, Violation{
			Code:    MinuteMismatch,
			Message: fmt.Sprintf("start %s and end %s must land on the same minute of the hour", start, end),
		})
	}

	diff := end.Minutes() - start.Minutes()
	if diff <= 0 {
		violations = append(violations, Violation{
			Code:    NonPositiveDuration,
			Message: fmt.Sprintf("end %s must be after start %s", end, start),
		})
		return violations
	}

	if diff != SlotDurationMinutes {
		violations = append(violations, Violation{
			Code:        NotOneHour,
			Message:     fmt.Sprintf("slot must span exactly %d minutes, got %d", SlotDurationMinutes, diff),
			DiffMinutes: diff,
		})
	}

	return violations
}
