package format_test

import (
	"testing"

	"cronos/internal/ui/format"
)

func TestClock(t *testing.T) {
	t.Parallel()
	cases := map[int]string{
		0:    "0:00",
		9:    "0:09",
		90:   "1:30",
		1500: "25:00",
		3725: "1:02:05",
		-4:   "0:00",
	}
	for in, want := range cases {
		if got := format.Clock(in); got != want {
			t.Fatalf("Clock(%d) = %q, want %q", in, got, want)
		}
	}
}
