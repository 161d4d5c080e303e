package flip

import (
	"testing"

	"FlipPulse/internal/domain/models"
)

func TestTaxStandard(t *testing.T) {
	cases := []struct {
		sell int64
		want int64
	}{
		{0, 0},
		{49, 0},
		{50, 1},
		{97, 1},
		{100, 2},
		{1_000_000, 20_000},
		{250_000_000, 5_000_000},  // capped
		{10_000_000_000, 5_000_000},
	}
	for _, tc := range cases {
		if got := Tax(tc.sell, models.TaxStandard); got != tc.want {
			t.Fatalf("Tax(%d) = %d, want %d", tc.sell, got, tc.want)
		}
	}
}

func TestTaxLegacy(t *testing.T) {
	if got := Tax(100, models.TaxLegacy); got != 1 {
		t.Fatalf("legacy Tax(100) = %d, want 1", got)
	}
	// No cap on the legacy model.
	if got := Tax(1_000_000_000, models.TaxLegacy); got != 10_000_000 {
		t.Fatalf("legacy Tax(1b) = %d, want 10m", got)
	}
}

func TestTaxNone(t *testing.T) {
	if got := Tax(1_000_000, models.TaxNone); got != 0 {
		t.Fatalf("none Tax = %d, want 0", got)
	}
}

func TestTaxMonotone(t *testing.T) {
	prev := int64(-1)
	for sell := int64(0); sell <= 2000; sell++ {
		got := Tax(sell, models.TaxStandard)
		if got < prev {
			t.Fatalf("tax decreased at sell=%d: %d < %d", sell, got, prev)
		}
		prev = got
	}
}
