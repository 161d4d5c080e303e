package models

import "time"

// LatestQuote is a point-in-time order book observation: instant buy (high)
// and instant sell (low) with the unix timestamp of each side's last trade.
type LatestQuote struct {
	High     int64
	Low      int64
	HighTime int64
	LowTime  int64
}

// WindowStats holds the averaged prices and fill counts of a time window.
// Both the 5m and the 24h tables share this shape.
type WindowStats struct {
	AvgHighPrice    int64
	AvgLowPrice     int64
	HighPriceVolume int64
	LowPriceVolume  int64
}

// MarketData is one immutable snapshot of every table the evaluation needs.
// FiveMin, Daily and Volumes may be empty (source unavailable) but are never
// nil after a successful fetch; Latest and Items are mandatory.
type MarketData struct {
	Items     []Item
	Latest    map[int]LatestQuote
	FiveMin   map[int]WindowStats
	Daily     map[int]WindowStats
	Volumes   map[int]int64
	FetchedAt time.Time
}
