package flip

import (
	"sort"
	"time"

	"FlipPulse/internal/domain/models"
)

// Rejection stage labels, used for metrics and debugging. A rejection only
// ever excludes the single item; it never aborts the pass.
const (
	StageNonMembers = "non_members"
	StageNoLimit    = "no_limit"
	StageNoWindow   = "no_window"
	StageBadShape   = "bad_shape"
	StageStale      = "stale_latest"
	StageDeviation  = "deviation"
	StageLowProfit  = "low_profit"
	StageLowVolume  = "low_volume"
	StageNoQty      = "no_qty"
	StageHAUnsafe   = "ha_unsafe"
)

// Result is the outcome of one evaluation pass.
type Result struct {
	Candidates []models.FlipCandidate
	Rejections map[string]int
}

// Evaluate runs the whole pipeline over one market snapshot: a pure,
// deterministic pass with no retained state. Items are visited in catalog
// order and accepted candidates are returned sorted by score descending.
func Evaluate(data *models.MarketData, p models.Params, now time.Time) Result {
	res := Result{
		Candidates: make([]models.FlipCandidate, 0, 64),
		Rejections: make(map[string]int),
	}

	for _, item := range data.Items {
		if c, stage := evaluateItem(item, data, p, now); stage != "" {
			res.Rejections[stage]++
		} else {
			res.Candidates = append(res.Candidates, c)
		}
	}

	sort.SliceStable(res.Candidates, func(i, j int) bool {
		return res.Candidates[i].Score > res.Candidates[j].Score
	})
	return res
}

// evaluateItem applies the full filter chain to a single item. On rejection
// it returns the stage that failed; on acceptance the stage is empty.
func evaluateItem(item models.Item, data *models.MarketData, p models.Params, now time.Time) (models.FlipCandidate, string) {
	var none models.FlipCandidate

	if !item.Members {
		return none, StageNonMembers
	}
	if item.Limit <= 0 {
		return none, StageNoLimit
	}

	high, low, source := PickPriceWindow(item.ID, data, now, p.MaxAge)
	if high <= 0 || low <= 0 || high <= low {
		return none, StageNoWindow
	}

	buy, sell := ChoosePrices(low, high, p.Aggressiveness)
	if sell <= buy {
		return none, StageBadShape
	}

	// Cross-check against the live book regardless of which window won:
	// averaged windows can trail a market that already moved.
	latest := data.Latest[item.ID]
	if !LatestFresh(latest, now, p.MaxAge) {
		return none, StageStale
	}
	if !WithinDeviation(buy, sell, latest, p.MaxDeviation) {
		return none, StageDeviation
	}

	tax := Tax(sell, p.TaxModel)
	profitUnit := sell - buy - tax
	if profitUnit < p.MinProfitUnit {
		return none, StageLowProfit
	}

	volume := EstimateVolume(item.ID, data)
	// Only enforce the floor when a signal exists; absence of data is not
	// evidence of illiquidity.
	if volume > 0 && volume < p.MinVolume24h {
		return none, StageLowVolume
	}

	sizing, ok := Size(buy, profitUnit, item.Limit, volume, p.Bank, p.Slots)
	if !ok {
		return none, StageNoQty
	}

	safety := AlchSafety(item.HighAlch, p.RuneCost, buy)
	if p.RequireHAFloor && !safety.Safe {
		return none, StageHAUnsafe
	}

	return models.FlipCandidate{
		ID:          item.ID,
		Name:        item.Name,
		Buy:         buy,
		Sell:        sell,
		Tax:         tax,
		ProfitUnit:  profitUnit,
		Qty:         sizing.Qty,
		GPNeeded:    sizing.GPNeeded,
		EstProfit:   sizing.EstProfit,
		ROIPct:      sizing.ROI * 100,
		Limit:       item.Limit,
		Volume:      volume,
		PriceSource: source,

		HAValue:    safety.Value,
		HARuneCost: safety.RuneCost,
		HAFloor:    safety.Floor,
		HAProfit:   safety.Profit,
		HASafe:     safety.Safe,

		CyclesPerDay:     sizing.CyclesPerDay,
		DailyProfitEst:   sizing.DailyProfitEst,
		DailyProfitCap:   sizing.DailyProfitCap,
		DailyQtyCap:      sizing.DailyQtyCap,
		DailyLimitQty:    sizing.DailyLimitQty,
		HoursToClear:     models.NullableFloat(sizing.HoursToClear),
		DaysToClear:      models.NullableFloat(sizing.DaysToClear),
		ParticipationPct: models.NullableFloat(sizing.ParticipationPct),
		ProfitPerHour:    sizing.ProfitPerHour,

		Score: sizing.Score,
	}, ""
}
