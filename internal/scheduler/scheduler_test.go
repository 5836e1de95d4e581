package scheduler

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

type nopCycle struct{}

func (nopCycle) RunCycle(context.Context) error { return nil }

func TestDailySpec(t *testing.T) {
	t.Parallel()
	tests := []struct {
		hour int
		want string
	}{
		{hour: 0, want: "0 0 * * *"},
		{hour: 8, want: "0 8 * * *"},
		{hour: 23, want: "0 23 * * *"},
	}

	for _, tt := range tests {
		if got := dailySpec(tt.hour); got != tt.want {
			t.Fatalf("dailySpec(%d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestNewDailyValidHours(t *testing.T) {
	t.Parallel()
	for _, hour := range []int{0, 12, 23} {
		if _, err := NewDaily(hour, nopCycle{}, zerolog.Nop()); err != nil {
			t.Fatalf("NewDaily(%d) error: %v", hour, err)
		}
	}
}

func TestNewDailyInvalidHour(t *testing.T) {
	t.Parallel()
	for _, hour := range []int{-1, 24} {
		if _, err := NewDaily(hour, nopCycle{}, zerolog.Nop()); err == nil {
			t.Fatalf("NewDaily(%d) expected error", hour)
		}
	}
}

func TestSchedulerStartStop(t *testing.T) {
	t.Parallel()
	s, err := NewDaily(8, nopCycle{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewDaily error: %v", err)
	}
	s.Start()
	s.Stop()
}
