package flip

import "FlipPulse/internal/domain/models"

const (
	standardTaxPercent = 2
	standardTaxCap     = 5_000_000
	legacyTaxPercent   = 1
)

// Tax computes the GE levy on a sell price under the given model. Integer
// math throughout: the in-game levy truncates toward zero.
func Tax(sell int64, model string) int64 {
	if sell <= 0 {
		return 0
	}
	switch model {
	case models.TaxNone:
		return 0
	case models.TaxLegacy:
		return sell * legacyTaxPercent / 100
	default:
		t := sell * standardTaxPercent / 100
		if t > standardTaxCap {
			t = standardTaxCap
		}
		return t
	}
}
