package flip

import (
	"testing"
	"time"

	"FlipPulse/internal/domain/models"
)

var testNow = time.Unix(1_700_000_000, 0)

func marketWith(latest models.LatestQuote, fiveMin, daily *models.WindowStats) *models.MarketData {
	data := &models.MarketData{
		Latest:  map[int]models.LatestQuote{1: latest},
		FiveMin: map[int]models.WindowStats{},
		Daily:   map[int]models.WindowStats{},
		Volumes: map[int]int64{},
	}
	if fiveMin != nil {
		data.FiveMin[1] = *fiveMin
	}
	if daily != nil {
		data.Daily[1] = *daily
	}
	return data
}

func TestPickPriceWindowPrefersFiveMin(t *testing.T) {
	data := marketWith(
		models.LatestQuote{High: 300, Low: 200, HighTime: testNow.Unix(), LowTime: testNow.Unix()},
		&models.WindowStats{AvgHighPrice: 100, AvgLowPrice: 80},
		&models.WindowStats{AvgHighPrice: 110, AvgLowPrice: 70},
	)
	high, low, src := PickPriceWindow(1, data, testNow, 30*time.Minute)
	if src != SourceFiveMin || high != 100 || low != 80 {
		t.Fatalf("got (%d, %d, %s), want (100, 80, 5m)", high, low, src)
	}
}

func TestPickPriceWindowFallsBackToDaily(t *testing.T) {
	// 5m present but one-sided: unusable, cascade to 24h.
	data := marketWith(
		models.LatestQuote{},
		&models.WindowStats{AvgHighPrice: 100, AvgLowPrice: 0},
		&models.WindowStats{AvgHighPrice: 110, AvgLowPrice: 70},
	)
	high, low, src := PickPriceWindow(1, data, testNow, 30*time.Minute)
	if src != SourceDaily || high != 110 || low != 70 {
		t.Fatalf("got (%d, %d, %s), want (110, 70, 24h)", high, low, src)
	}
}

func TestPickPriceWindowLatestFresh(t *testing.T) {
	data := marketWith(
		models.LatestQuote{High: 120, Low: 100, HighTime: testNow.Unix() - 60, LowTime: testNow.Unix() - 120},
		nil, nil,
	)
	high, low, src := PickPriceWindow(1, data, testNow, 30*time.Minute)
	if src != SourceLatest || high != 120 || low != 100 {
		t.Fatalf("got (%d, %d, %s), want (120, 100, latest)", high, low, src)
	}
}

func TestPickPriceWindowLatestStale(t *testing.T) {
	data := marketWith(
		models.LatestQuote{High: 120, Low: 100, HighTime: testNow.Unix() - 3600, LowTime: testNow.Unix()},
		nil, nil,
	)
	if _, _, src := PickPriceWindow(1, data, testNow, 30*time.Minute); src != "" {
		t.Fatalf("expected unusable for stale high side, got %s", src)
	}
}

func TestPickPriceWindowLatestSidesFarApart(t *testing.T) {
	// Neither side is individually stale (a clock-skewed high trade 20 min
	// in the future, a low trade 20 min ago), but the sides are 40 minutes
	// apart: the skew guard must fire on its own.
	data := marketWith(
		models.LatestQuote{High: 120, Low: 100, HighTime: testNow.Unix() + 1200, LowTime: testNow.Unix() - 1200},
		nil, nil,
	)
	if _, _, src := PickPriceWindow(1, data, testNow, 30*time.Minute); src != "" {
		t.Fatalf("expected skew guard rejection, got %s", src)
	}
}

func TestPickPriceWindowLatestSidesWithinSkew(t *testing.T) {
	// Sides 20 minutes apart with a 30 minute threshold stay usable.
	data := marketWith(
		models.LatestQuote{High: 120, Low: 100, HighTime: testNow.Unix() - 100, LowTime: testNow.Unix() - 100 - 1200},
		nil, nil,
	)
	if _, _, src := PickPriceWindow(1, data, testNow, 30*time.Minute); src != SourceLatest {
		t.Fatalf("expected latest, got %q", src)
	}
}

func TestPickPriceWindowInvertedSpread(t *testing.T) {
	data := marketWith(
		models.LatestQuote{High: 100, Low: 100, HighTime: testNow.Unix(), LowTime: testNow.Unix()},
		&models.WindowStats{AvgHighPrice: 80, AvgLowPrice: 100},
		nil,
	)
	if _, _, src := PickPriceWindow(1, data, testNow, 30*time.Minute); src != "" {
		t.Fatalf("expected unusable, got %s", src)
	}
}

func TestPickPriceWindowNoData(t *testing.T) {
	data := &models.MarketData{
		Latest:  map[int]models.LatestQuote{},
		FiveMin: map[int]models.WindowStats{},
		Daily:   map[int]models.WindowStats{},
		Volumes: map[int]int64{},
	}
	high, low, src := PickPriceWindow(1, data, testNow, 30*time.Minute)
	if high != 0 || low != 0 || src != "" {
		t.Fatalf("expected (0, 0, \"\"), got (%d, %d, %q)", high, low, src)
	}
}
