package repository

import (
	"testing"
	"time"
)

func TestDateArg(t *testing.T) {
	t.Parallel()

	utc := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	if got := dateArg(utc); got != "2024-03-15" {
		t.Fatalf("dateArg(%v) = %q, want %q", utc, got, "2024-03-15")
	}

	// The argument carries its own zone's calendar day, so a local midnight
	// east of UTC stays on its own date instead of shifting to the prior day.
	east := time.FixedZone("UTC+13", 13*60*60)
	local := time.Date(2024, time.March, 15, 0, 0, 0, 0, east)
	if got := dateArg(local); got != "2024-03-15" {
		t.Fatalf("dateArg(%v) = %q, want %q", local, got, "2024-03-15")
	}
}
