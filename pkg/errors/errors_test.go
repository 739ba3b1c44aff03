package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusUnprocessableEntity)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.StatusCode() != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.StatusCode())
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("store unreachable", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

func TestErrorMessage_WithCause(t *testing.T) {
	cause := errors.New("boom")
	err := StoreWrite(cause)

	want := "SERVICE_UNAVAILABLE: Failed to save availability to the store (caused by: boom)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want bool
	}{
		{"store read is retryable", StoreRead(errors.New("down")), true},
		{"store write is retryable", StoreWrite(errors.New("down")), true},
		{"internal is retryable", Internal("oops", nil), true},
		{"timeout is retryable", Timeout("slow"), true},
		{"validation is not retryable", Validation("bad slot", nil), false},
		{"invalid input is not retryable", InvalidInput("bad id"), false},
		{"not found is not retryable", NotFound("Schedule"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Retryable(); got != tt.want {
				t.Errorf("Retryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNotFoundWithID_Details(t *testing.T) {
	err := NotFoundWithID("Schedule", "abc123")

	if err.Details["resource"] != "Schedule" || err.Details["id"] != "abc123" {
		t.Errorf("unexpected details: %v", err.Details)
	}
	if err.StatusCode() != http.StatusNotFound {
		t.Errorf("status = %d", err.StatusCode())
	}
}

func TestAsAppError_WrapsForeignErrors(t *testing.T) {
	plain := errors.New("something broke")

	appErr := AsAppError(plain)
	if appErr.Code != CodeInternal {
		t.Errorf("expected foreign errors to become %s, got %s", CodeInternal, appErr.Code)
	}
	if !errors.Is(appErr, plain) {
		t.Error("expected original error to be preserved as cause")
	}

	already := Conflict("duplicate")
	if AsAppError(already) != already {
		t.Error("expected AppError to pass through unchanged")
	}
}

func TestIsAppError(t *testing.T) {
	if !IsAppError(Validation("x", nil)) {
		t.Error("expected true for AppError")
	}
	if IsAppError(errors.New("plain")) {
		t.Error("expected false for plain error")
	}
}
