package flip

import "math"

// maxCyclesPerDay caps the cycle estimate at one per buy-limit refresh (4h).
const maxCyclesPerDay = 6.0

// Sizing carries the position size and every derived risk metric.
// HoursToClear, DaysToClear and ParticipationPct are +Inf when no volume
// signal exists.
type Sizing struct {
	Qty       int64
	GPNeeded  int64
	EstProfit int64
	ROI       float64

	CyclesPerDay   float64
	DailyProfitEst float64
	DailyLimitQty  int64
	DailyQtyCap    int64
	DailyProfitCap int64

	HoursToClear     float64
	DaysToClear      float64
	ParticipationPct float64
	ProfitPerHour    float64

	Score float64
}

// Size computes a bank- and limit-bounded position plus the risk metrics
// for it. ok is false when the bank cannot afford a single unit.
func Size(buy, profitUnit, limit, volume, bank int64, slots int) (Sizing, bool) {
	var s Sizing

	if slots < 1 {
		slots = 1
	}
	perSlot := bank / int64(slots)
	if perSlot < 1 {
		perSlot = 1
	}
	if buy < 1 {
		buy = 1
	}

	s.Qty = perSlot / buy
	if s.Qty > limit {
		s.Qty = limit
	}
	if s.Qty <= 0 {
		return s, false
	}

	s.GPNeeded = buy * s.Qty
	s.EstProfit = profitUnit * s.Qty
	if s.GPNeeded > 0 {
		s.ROI = float64(s.EstProfit) / float64(s.GPNeeded)
	}

	// Cycle estimate: daily volume at 2x the buy limit means ~2 cycles/day,
	// capped at one cycle per 4h limit refresh.
	if volume > 0 && limit > 0 {
		div := limit
		if div < 1 {
			div = 1
		}
		s.CyclesPerDay = math.Min(maxCyclesPerDay, float64(volume)/float64(div))
	}

	if volume > 0 {
		s.HoursToClear = float64(s.Qty) / float64(volume) * 24
		s.DaysToClear = s.HoursToClear / 24
		s.ParticipationPct = float64(s.Qty) / float64(volume) * 100
	} else {
		s.HoursToClear = math.Inf(1)
		s.DaysToClear = math.Inf(1)
		s.ParticipationPct = math.Inf(1)
	}

	s.DailyProfitEst = float64(s.EstProfit) * s.CyclesPerDay

	// Theoretical cap with unlimited bank: bounded by market volume and by
	// the buy limit's daily ceiling.
	s.DailyLimitQty = limit * int64(maxCyclesPerDay)
	if volume > 0 {
		s.DailyQtyCap = volume
		if s.DailyLimitQty < s.DailyQtyCap {
			s.DailyQtyCap = s.DailyLimitQty
		}
	}
	s.DailyProfitCap = profitUnit * s.DailyQtyCap

	if !math.IsInf(s.HoursToClear, 1) {
		s.ProfitPerHour = float64(s.EstProfit) / math.Max(0.25, s.HoursToClear)
	}

	// Rank: bank-limited daily profit with a damped liquidity bonus, so
	// equal profits rank by relative liquidity without volume dominating.
	vol := float64(volume)
	if vol < 0 {
		vol = 0
	}
	s.Score = s.DailyProfitEst * (1.0 + math.Log1p(vol)/10.0)

	return s, true
}
