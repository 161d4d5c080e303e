package flip

import (
	"math"
	"testing"
)

func TestSizeReferenceScenario(t *testing.T) {
	// buy=83, profit/unit=13, limit=1000, bank=10,000 in one slot.
	s, ok := Size(83, 13, 1000, 50_000, 10_000, 1)
	if !ok {
		t.Fatalf("expected sizable position")
	}
	if s.Qty != 120 {
		t.Fatalf("qty = %d, want 120", s.Qty)
	}
	if s.GPNeeded != 9_960 {
		t.Fatalf("gp needed = %d, want 9960", s.GPNeeded)
	}
	if s.EstProfit != 1_560 {
		t.Fatalf("est profit = %d, want 1560", s.EstProfit)
	}
	if math.Abs(s.ROI-float64(1560)/float64(9960)) > 1e-12 {
		t.Fatalf("roi = %v", s.ROI)
	}
}

func TestSizeRespectsLimit(t *testing.T) {
	s, ok := Size(10, 5, 50, 10_000, 1_000_000, 1)
	if !ok || s.Qty != 50 {
		t.Fatalf("expected limit-bound qty 50, got %d", s.Qty)
	}
}

func TestSizeSplitsBankAcrossSlots(t *testing.T) {
	one, _ := Size(100, 10, 10_000, 0, 100_000, 1)
	five, _ := Size(100, 10, 10_000, 0, 100_000, 5)
	if one.Qty != 1000 || five.Qty != 200 {
		t.Fatalf("slot split wrong: %d / %d", one.Qty, five.Qty)
	}
}

func TestSizeUnaffordable(t *testing.T) {
	if _, ok := Size(1_000_000, 10, 100, 1000, 5000, 1); ok {
		t.Fatalf("expected qty 0 rejection")
	}
}

func TestSizeCyclesCappedAtSix(t *testing.T) {
	s, _ := Size(10, 5, 100, 10_000, 100_000, 1)
	if s.CyclesPerDay != 6.0 {
		t.Fatalf("cycles = %v, want cap 6", s.CyclesPerDay)
	}
	// Volume at 2x the limit means two cycles.
	s, _ = Size(10, 5, 100, 200, 100_000, 1)
	if s.CyclesPerDay != 2.0 {
		t.Fatalf("cycles = %v, want 2", s.CyclesPerDay)
	}
}

func TestSizeDailyCapBounds(t *testing.T) {
	// Cap never exceeds profitUnit * limit * 6 regardless of volume.
	s, _ := Size(10, 7, 100, 1_000_000, 100_000, 1)
	if s.DailyQtyCap != 600 {
		t.Fatalf("daily qty cap = %d, want limit*6", s.DailyQtyCap)
	}
	if s.DailyProfitCap != 7*600 {
		t.Fatalf("daily profit cap = %d, want %d", s.DailyProfitCap, 7*600)
	}
	// Thin market: volume bounds the cap instead.
	s, _ = Size(10, 7, 100, 250, 100_000, 1)
	if s.DailyQtyCap != 250 || s.DailyProfitCap != 7*250 {
		t.Fatalf("volume-bound cap wrong: %d / %d", s.DailyQtyCap, s.DailyProfitCap)
	}
}

func TestSizeZeroVolume(t *testing.T) {
	s, ok := Size(100, 10, 1000, 0, 100_000, 1)
	if !ok {
		t.Fatalf("zero volume must still size")
	}
	if !math.IsInf(s.HoursToClear, 1) || !math.IsInf(s.ParticipationPct, 1) {
		t.Fatalf("expected infinite ETA and participation")
	}
	if s.CyclesPerDay != 0 || s.DailyProfitEst != 0 || s.DailyQtyCap != 0 {
		t.Fatalf("expected zero daily estimates")
	}
	if s.ProfitPerHour != 0 {
		t.Fatalf("profit/hr must be 0 with infinite ETA, got %v", s.ProfitPerHour)
	}
	// log1p(0) == 0, so the score is still computable: 0 * 1 = 0.
	if s.Score != 0 {
		t.Fatalf("score = %v, want 0", s.Score)
	}
}

func TestSizeEtaAndParticipation(t *testing.T) {
	s, _ := Size(100, 10, 1000, 2400, 100_000, 1)
	// qty = min(1000, 100000/100) = 1000; eta = 1000/2400*24 = 10h.
	if math.Abs(s.HoursToClear-10) > 1e-9 {
		t.Fatalf("eta = %v, want 10", s.HoursToClear)
	}
	if math.Abs(s.DaysToClear-10.0/24) > 1e-9 {
		t.Fatalf("days = %v", s.DaysToClear)
	}
	wantPart := float64(1000) / 2400 * 100
	if math.Abs(s.ParticipationPct-wantPart) > 1e-9 {
		t.Fatalf("participation = %v, want %v", s.ParticipationPct, wantPart)
	}
	if math.Abs(s.ProfitPerHour-float64(s.EstProfit)/10) > 1e-9 {
		t.Fatalf("profit/hr = %v", s.ProfitPerHour)
	}
}

func TestScoreLiquidityBonus(t *testing.T) {
	// Equal daily profit, higher volume ranks higher.
	thin, _ := Size(10, 5, 100, 600, 1_000, 1)
	thick, _ := Size(10, 5, 100, 6_000, 1_000, 1)
	if thin.CyclesPerDay != 6 || thick.CyclesPerDay != 6 {
		t.Fatalf("both should hit the cycle cap")
	}
	if thick.Score <= thin.Score {
		t.Fatalf("liquidity bonus missing: %v <= %v", thick.Score, thin.Score)
	}
	// The bonus is damped: less than a 2x swing for a 10x volume gap.
	if thick.Score > thin.Score*2 {
		t.Fatalf("liquidity dominates profit: %v vs %v", thick.Score, thin.Score)
	}
}
