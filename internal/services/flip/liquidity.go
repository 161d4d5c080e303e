package flip

import "FlipPulse/internal/domain/models"

// EstimateVolume cascades over the volume signals for an item and returns
// the first non-zero one: 24h two-sided, then 5m two-sided, then the raw
// aggregate count. Zero means no signal at all, which callers must treat as
// "unknown", not "illiquid".
func EstimateVolume(id int, data *models.MarketData) int64 {
	if d, ok := data.Daily[id]; ok {
		if v := twoSided(d.HighPriceVolume, d.LowPriceVolume); v > 0 {
			return v
		}
	}
	if fm, ok := data.FiveMin[id]; ok {
		if v := twoSided(fm.HighPriceVolume, fm.LowPriceVolume); v > 0 {
			return v
		}
	}
	return data.Volumes[id]
}

// twoSided approximates round-trip liquidity: quantity that could be both
// bought and sold, i.e. the smaller of the two fill counts. Zero when either
// side is missing.
func twoSided(highVol, lowVol int64) int64 {
	if highVol > 0 && lowVol > 0 {
		if highVol < lowVol {
			return highVol
		}
		return lowVol
	}
	return 0
}
