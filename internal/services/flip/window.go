package flip

import (
	"time"

	"FlipPulse/internal/domain/models"
)

// Price source labels, in cascade preference order.
const (
	SourceFiveMin = "5m"
	SourceDaily   = "24h"
	SourceLatest  = "latest"
)

// PickPriceWindow selects a single, internally consistent price window for
// an item: 5m averages first, then 24h averages, then the latest order book
// quote if it is fresh. Mixing sides from different windows manufactures
// phantom spreads, so both sides always come from the same source.
// Returns (0, 0, "") when no window is usable.
func PickPriceWindow(id int, data *models.MarketData, now time.Time, maxAge time.Duration) (high, low int64, source string) {
	if fm, ok := data.FiveMin[id]; ok {
		if usable(fm.AvgHighPrice, fm.AvgLowPrice) {
			return fm.AvgHighPrice, fm.AvgLowPrice, SourceFiveMin
		}
	}

	if d, ok := data.Daily[id]; ok {
		if usable(d.AvgHighPrice, d.AvgLowPrice) {
			return d.AvgHighPrice, d.AvgLowPrice, SourceDaily
		}
	}

	if q, ok := data.Latest[id]; ok && usable(q.High, q.Low) {
		maxSec := int64(maxAge / time.Second)
		nowTS := now.Unix()
		tooOld := (q.HighTime != 0 && nowTS-q.HighTime > maxSec) ||
			(q.LowTime != 0 && nowTS-q.LowTime > maxSec)
		farApart := q.HighTime != 0 && q.LowTime != 0 && abs64(q.HighTime-q.LowTime) > maxSec
		if !tooOld && !farApart {
			return q.High, q.Low, SourceLatest
		}
	}

	return 0, 0, ""
}

// usable requires both sides present, positive, and an actual spread.
func usable(high, low int64) bool {
	return high > 0 && low > 0 && high > low
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
