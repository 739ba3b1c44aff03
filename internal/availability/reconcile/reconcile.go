// Package reconcile collapses duplicate availability exceptions. Two
// exceptions are duplicates when they share (date, start, end); rate is not
// part of the identity. The same key function backs both the live duplicate
// flags shown while editing and the destructive cleanup run before save.
package reconcile

import (
	"strings"

	"insightery/pkg/model"
)

// Key returns the identity key for an exception. ok is false when any of the
// three identity fields is empty; such in-progress entries are exempt from
// duplicate detection entirely.
func Key(exc model.AvailabilityException) (string, bool) {
	if exc.Date == "" || exc.StartTime == "" || exc.EndTime == "" {
		return "", false
	}
	return strings.Join([]string{exc.Date, exc.StartTime, exc.EndTime}, "|"), true
}

// Duplicates returns the indexes of every exception that repeats an earlier
// entry's key, in ascending order. The first occurrence of each key is never
// reported. Incomplete entries are skipped.
func Duplicates(excs []model.AvailabilityException) []int {
	seen := make(map[string]struct{}, len(excs))
	var dups []int
	for i, exc := range excs {
		key, ok := Key(exc)
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			dups = append(dups, i)
			continue
		}
		seen[key] = struct{}{}
	}
	return dups
}

// Reconcile removes every duplicate exception, keeping the first occurrence
// of each key and preserving order. It returns the surviving sequence and the
// number of entries removed. Incomplete entries always survive. Running
// Reconcile on its own output removes nothing.
func Reconcile(excs []model.AvailabilityException) ([]model.AvailabilityException, int) {
	dups := Duplicates(excs)
	if len(dups) == 0 {
		return excs, 0
	}

	drop := make(map[int]struct{}, len(dups))
	for _, i := range dups {
		drop[i] = struct{}{}
	}

	kept := make([]model.AvailabilityException, 0, len(excs)-len(dups))
	for i, exc := range excs {
		if _, gone := drop[i]; gone {
			continue
		}
		kept = append(kept, exc)
	}
	return kept, len(dups)
}
