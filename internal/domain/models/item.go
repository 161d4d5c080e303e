package models

// Item is one entry of the GE item mapping: static reference data for a
// tradable good. Limit is the per-4h buy limit; items without a positive
// limit are never flippable. HighAlch of 0 means no alch fallback exists.
type Item struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Members  bool   `json:"members"`
	Limit    int64  `json:"limit"`
	HighAlch int64  `json:"highalch"`
	Value    int64  `json:"value,omitempty"`
	Examine  string `json:"examine,omitempty"`
	Icon     string `json:"icon,omitempty"`
}
