package repository

import (
	"context"
	"testing"
	"time"
)

func TestWithTimeout_CapsLongerCallerDeadline(t *testing.T) {
	r := &mongoAvailabilityRepository{}

	parent, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ctx, cancelOp := r.withTimeout(parent, 2*time.Second)
	defer cancelOp()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected a deadline on the wrapped context")
	}
	if remaining := time.Until(deadline); remaining > 2*time.Second {
		t.Errorf("deadline %s away, want at most the 2s operation timeout", remaining)
	}
}

func TestWithTimeout_KeepsShorterCallerDeadline(t *testing.T) {
	r := &mongoAvailabilityRepository{}

	parent, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	ctx, cancelOp := r.withTimeout(parent, 5*time.Second)
	defer cancelOp()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected a deadline on the wrapped context")
	}
	if remaining := time.Until(deadline); remaining > time.Second {
		t.Errorf("deadline %s away, want the caller's tighter deadline preserved", remaining)
	}
}

func TestWithTimeout_AddsDeadlineWhenMissing(t *testing.T) {
	r := &mongoAvailabilityRepository{}

	ctx, cancelOp := r.withTimeout(context.Background(), 2*time.Second)
	defer cancelOp()

	if _, ok := ctx.Deadline(); !ok {
		t.Error("expected the operation timeout to apply when the caller has no deadline")
	}
}

func TestValidInsighterID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"insighter-1", true},
		{"", false},
		{"   ", false},
	}

	for _, tt := range tests {
		if got := validInsighterID(tt.id); got != tt.want {
			t.Errorf("validInsighterID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}
