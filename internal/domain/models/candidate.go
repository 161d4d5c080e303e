package models

import (
	"encoding/json"
	"math"
)

// NullableFloat marshals to JSON null when not finite. ETA and participation
// are infinite for zero-volume items and IEEE Inf is not valid JSON.
type NullableFloat float64

func (f NullableFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// IsFinite reports whether the value is a real number.
func (f NullableFloat) IsFinite() bool {
	v := float64(f)
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// FlipCandidate is one accepted flip recommendation. Built once per item per
// evaluation pass; never mutated afterwards.
type FlipCandidate struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Buy         int64  `json:"buy"`
	Sell        int64  `json:"sell"`
	Tax         int64  `json:"tax"`
	ProfitUnit  int64  `json:"profit_unit"`
	Qty         int64  `json:"qty"`
	GPNeeded    int64  `json:"gp_needed"`
	EstProfit   int64  `json:"est_profit"`
	ROIPct      float64 `json:"roi_pct"`
	Limit       int64  `json:"limit_4h"`
	Volume      int64  `json:"vol"`
	PriceSource string `json:"price_src"`

	// High alch fallback
	HAValue    int64 `json:"ha_value"`
	HARuneCost int64 `json:"ha_rune_cost"`
	HAFloor    int64 `json:"ha_floor"`
	HAProfit   int64 `json:"ha_profit"`
	HASafe     bool  `json:"ha_safe"`

	// Time / risk / caps
	CyclesPerDay     float64       `json:"cycles_per_day"`
	DailyProfitEst   float64       `json:"daily_profit_est"`
	DailyProfitCap   int64         `json:"daily_profit_cap"`
	DailyQtyCap      int64         `json:"daily_qty_cap"`
	DailyLimitQty    int64         `json:"daily_limit_qty"`
	HoursToClear     NullableFloat `json:"hours_to_clear"`
	DaysToClear      NullableFloat `json:"days_to_clear"`
	ParticipationPct NullableFloat `json:"participation_pct"`
	ProfitPerHour    float64       `json:"profit_per_hour"`

	Score float64 `json:"score"`
}
