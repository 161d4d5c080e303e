package api

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"FlipPulse/internal/domain/models"
	"FlipPulse/internal/usecase"

	"github.com/labstack/echo/v4"
)

type staticSource struct {
	data *models.MarketData
}

func (s *staticSource) Fetch(ctx context.Context) (*models.MarketData, error) {
	return s.data, nil
}

func twoItemMarket(now time.Time) *models.MarketData {
	fresh := func(high, low int64) models.LatestQuote {
		return models.LatestQuote{High: high, Low: low, HighTime: now.Unix() - 30, LowTime: now.Unix() - 30}
	}
	return &models.MarketData{
		Items: []models.Item{
			{ID: 1, Name: "Adamant bar", Members: true, Limit: 1000},
			{ID: 2, Name: "Yew logs", Members: true, Limit: 1000},
		},
		Latest: map[int]models.LatestQuote{
			1: fresh(100, 80),
			2: fresh(100, 80),
		},
		FiveMin: map[int]models.WindowStats{
			1: {AvgHighPrice: 100, AvgLowPrice: 80},
			2: {AvgHighPrice: 100, AvgLowPrice: 80},
		},
		Daily: map[int]models.WindowStats{
			1: {AvgHighPrice: 100, AvgLowPrice: 80, HighPriceVolume: 60_000, LowPriceVolume: 50_000},
			2: {AvgHighPrice: 100, AvgLowPrice: 80, HighPriceVolume: 30_000, LowPriceVolume: 25_000},
		},
		Volumes:   map[int]int64{},
		FetchedAt: now,
	}
}

func newTestHandler(t *testing.T) *FlipsHandler {
	t.Helper()
	p := models.DefaultParams()
	p.Bank = 10_000
	p.Slots = 1
	ref := usecase.NewRefresher(&staticSource{data: twoItemMarket(time.Now())}, nil, p, time.Minute, nil)
	if err := ref.Refresh(context.Background()); err != nil {
		t.Fatalf("seed refresh: %v", err)
	}
	return NewFlipsHandler(nil, ref)
}

func doRequest(h *FlipsHandler, method, target string) *httptest.ResponseRecorder {
	e := echo.New()
	h.RegisterRoutes(e)
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
}

func decodeFlips(t *testing.T, rec *httptest.ResponseRecorder) FlipsResponse {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	var res FlipsResponse
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatalf("decode flips: %v", err)
	}
	return res
}

func TestFlipsRanked(t *testing.T) {
	h := newTestHandler(t)
	rec := doRequest(h, http.MethodGet, "/api/flips")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	res := decodeFlips(t, rec)
	if res.Count != 2 || len(res.Flips) != 2 {
		t.Fatalf("count = %d, want 2", res.Count)
	}
	if res.Flips[0].ID != 1 {
		t.Fatalf("higher-volume item should rank first, got %d", res.Flips[0].ID)
	}
	if res.Flips[0].Score < res.Flips[1].Score {
		t.Fatalf("not sorted by score")
	}
}

func TestFlipsLimitAndQuery(t *testing.T) {
	h := newTestHandler(t)

	res := decodeFlips(t, doRequest(h, http.MethodGet, "/api/flips?n=1"))
	if res.Count != 1 {
		t.Fatalf("n=1: count = %d", res.Count)
	}

	res = decodeFlips(t, doRequest(h, http.MethodGet, "/api/flips?q=yew"))
	if res.Count != 1 || res.Flips[0].Name != "Yew logs" {
		t.Fatalf("q=yew: got %+v", res.Flips)
	}

	res = decodeFlips(t, doRequest(h, http.MethodGet, "/api/flips?q=dragon"))
	if res.Count != 0 {
		t.Fatalf("q=dragon: count = %d, want 0", res.Count)
	}
}

func TestFlipsBadRequest(t *testing.T) {
	h := newTestHandler(t)
	rec := doRequest(h, http.MethodGet, "/api/flips?n=9999")
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", env.Status)
	}
}

func TestRefreshEndpoint(t *testing.T) {
	h := newTestHandler(t)
	rec := doRequest(h, http.MethodPost, "/api/flips/refresh")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	res := decodeFlips(t, rec)
	if res.Count != 2 {
		t.Fatalf("count after refresh = %d, want 2", res.Count)
	}
}

func TestStatusEndpoint(t *testing.T) {
	h := newTestHandler(t)
	rec := doRequest(h, http.MethodGet, "/api/status")

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	var st StatusResponse
	if err := json.Unmarshal(env.Data, &st); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if st.Candidates != 2 || st.InFlight {
		t.Fatalf("status = %+v", st)
	}
	if st.TaxModel != models.TaxStandard {
		t.Fatalf("tax model = %s", st.TaxModel)
	}
}

func TestExportCSV(t *testing.T) {
	h := newTestHandler(t)
	rec := doRequest(h, http.MethodGet, "/api/flips/export?format=csv")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get(echo.HeaderContentDisposition), "flips.csv") {
		t.Fatalf("missing attachment header")
	}

	rows, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "id" || rows[1][1] != "Adamant bar" {
		t.Fatalf("unexpected csv content: %v", rows[:2])
	}
}

func TestExportTSV(t *testing.T) {
	h := newTestHandler(t)
	rec := doRequest(h, http.MethodGet, "/api/flips/export?format=tsv&n=1")

	r := csv.NewReader(rec.Body)
	r.Comma = '\t'
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("parse tsv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header + 1", len(rows))
	}
}

func TestExportXLSX(t *testing.T) {
	h := newTestHandler(t)
	rec := doRequest(h, http.MethodGet, "/api/flips/export.xlsx")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	// XLSX files are zip archives.
	if body := rec.Body.Bytes(); len(body) < 4 || body[0] != 'P' || body[1] != 'K' {
		t.Fatalf("response is not an xlsx archive")
	}
}
