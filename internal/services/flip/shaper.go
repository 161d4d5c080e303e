package flip

import (
	"math"
	"time"

	"FlipPulse/internal/domain/models"
)

// ChoosePrices suggests a buy slightly above the window low and a sell
// slightly below the window high. aggressiveness is in [0, 0.5]; higher
// means quicker fills and a smaller margin. A spread of 1 or less leaves no
// room to shape and is returned unchanged.
func ChoosePrices(low, high int64, aggressiveness float64) (buy, sell int64) {
	spread := high - low
	if spread <= 1 {
		return low, high
	}
	step := int64(float64(spread) * aggressiveness)
	if step < 1 {
		step = 1
	}
	return low + step, high - step
}

// LatestFresh reports whether the latest quote is recent enough on both
// sides to back a trade right now. An averaged window can still show a
// spread after the market has moved; a stale latest quote is the tell.
func LatestFresh(q models.LatestQuote, now time.Time, maxAge time.Duration) bool {
	if !usable(q.High, q.Low) {
		return false
	}
	maxSec := int64(maxAge / time.Second)
	nowTS := now.Unix()
	if q.HighTime != 0 && nowTS-q.HighTime > maxSec {
		return false
	}
	if q.LowTime != 0 && nowTS-q.LowTime > maxSec {
		return false
	}
	return true
}

// WithinDeviation rejects shaped prices that drifted too far from the live
// order book on either side. maxDeviation is a fraction, e.g. 0.20.
func WithinDeviation(buy, sell int64, q models.LatestQuote, maxDeviation float64) bool {
	if q.Low > 0 && math.Abs(float64(buy-q.Low))/float64(q.Low) > maxDeviation {
		return false
	}
	if q.High > 0 && math.Abs(float64(sell-q.High))/float64(q.High) > maxDeviation {
		return false
	}
	return true
}
