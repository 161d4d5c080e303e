package repository

import (
	"context"

	"FlipPulse/internal/domain/models"
)

// MarketSource retrieves one complete market snapshot. Implementations must
// return an error when the mapping or latest tables cannot be fetched, and
// degrade the optional tables (5m, 24h, volumes) to empty maps instead of
// failing: the window cascade needs to know absent-vs-empty only at the
// table level, which empty maps preserve.
type MarketSource interface {
	Fetch(ctx context.Context) (*models.MarketData, error)
}

type Metrics interface {
	RecordEvaluation(candidates int, topScore float64)
	RecordRejections(byStage map[string]int)
	RecordFetchError(source string)
	RecordLatency(op string, seconds float64)
}
