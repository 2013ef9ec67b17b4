package domain

import "testing"

func TestRoundDuration(t *testing.T) {
	cases := []struct {
		name      string
		raw       int64
		interval  int
		roundUpAt int
		want      int64
	}{
		{"zero elapsed yields one interval", 0, 15, 8, 900},
		{"remainder above threshold rounds up", 500, 15, 8, 900},
		{"remainder below threshold still floors to one interval", 420, 15, 8, 900},
		{"remainder below threshold rounds down", 1000, 15, 8, 900},
		{"tie rounds up", 8 * 60, 15, 8, 900},
		{"exact multiple stays", 30 * 60, 15, 8, 1800},
		{"many intervals", 4*3600 + 23*60, 15, 8, 4*3600 + 30*60},
		{"many intervals below threshold", 4*3600 + 7*60, 15, 8, 4 * 3600},
		{"interval not dividing an hour", 3600, 7, 4, 63 * 60},
		{"ten minute interval", 630, 10, 5, 600},
		{"negative raw from clock skew", -60, 15, 8, 900},
		{"large negative raw", -3600, 15, 8, 900},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RoundDuration(tc.raw, tc.interval, tc.roundUpAt)
			if got != tc.want {
				t.Errorf("RoundDuration(%d, %d, %d) = %d, want %d", tc.raw, tc.interval, tc.roundUpAt, got, tc.want)
			}
		})
	}
}

func TestRoundDuration_DisabledReturnsRaw(t *testing.T) {
	for _, interval := range []int{0, -1, -15} {
		for _, raw := range []int64{0, 1, 59, 61, 3601, -30} {
			if got := RoundDuration(raw, interval, 8); got != raw {
				t.Errorf("interval=%d raw=%d: got %d, want raw unchanged", interval, raw, got)
			}
		}
	}
}

func TestRoundDuration_AlwaysPositiveWhenEnabled(t *testing.T) {
	for raw := int64(-120); raw <= 7200; raw += 37 {
		if got := RoundDuration(raw, 15, 8); got <= 0 || got%900 != 0 {
			t.Fatalf("raw=%d: got %d, want a positive multiple of 900", raw, got)
		}
	}
}
