package models

// Requests for the flips HTTP endpoints. Defined in domain for consistency and reuse.

type FlipsRequest struct {
	N           int     `query:"n" json:"n" default:"25" validate:"gte=1,lte=500"`
	Query       string  `query:"q" json:"q"`
	MinROI      float64 `query:"min_roi" json:"min_roi" validate:"gte=0"`
	MinProfitHr float64 `query:"min_profit_hr" json:"min_profit_hr" validate:"gte=0"`
	MaxETAHours float64 `query:"max_eta_hours" json:"max_eta_hours" validate:"gte=0"`
	HASafe      bool    `query:"ha_safe" json:"ha_safe"`
	HideInfETA  bool    `query:"hide_inf_eta" json:"hide_inf_eta"`
}

type ExportRequest struct {
	N      int    `query:"n" json:"n" default:"0" validate:"gte=0,lte=5000"`
	Format string `query:"format" json:"format" default:"csv" validate:"oneof=csv tsv"`
}
