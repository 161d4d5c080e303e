package api

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"FlipPulse/internal/domain/models"
	"FlipPulse/internal/usecase"
	xhttp "FlipPulse/pkg/http"
	xlogger "FlipPulse/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
)

// FlipsHandler exposes the ranked flip recommendations over Echo.
type FlipsHandler struct {
	logger *xlogger.Logger
	ref    *usecase.Refresher
}

func NewFlipsHandler(logger *xlogger.Logger, ref *usecase.Refresher) *FlipsHandler {
	return &FlipsHandler{logger: logger, ref: ref}
}

func (h *FlipsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/flips", h.Flips)
	g.POST("/flips/refresh", h.Refresh)
	g.GET("/flips/export", h.Export)
	g.GET("/flips/export.xlsx", h.ExportXLSX)
	g.GET("/status", h.Status)
}

// FlipsResponse is the payload of GET /api/flips.
type FlipsResponse struct {
	UpdatedAt time.Time              `json:"updated_at"`
	Count     int                    `json:"count"`
	Flips     []models.FlipCandidate `json:"flips"`
}

func (h *FlipsHandler) Flips(c echo.Context) error {
	req := &models.FlipsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	cands, at := h.ref.Snapshot()
	filtered := filterCandidates(cands, req)
	if len(filtered) > req.N {
		filtered = filtered[:req.N]
	}

	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=15")
	return xhttp.SuccessResponse(c, &FlipsResponse{
		UpdatedAt: at,
		Count:     len(filtered),
		Flips:     filtered,
	})
}

// filterCandidates applies the request filters in order; ranking is
// preserved because the snapshot is already sorted.
func filterCandidates(cands []models.FlipCandidate, req *models.FlipsRequest) []models.FlipCandidate {
	out := make([]models.FlipCandidate, 0, len(cands))
	q := strings.ToLower(strings.TrimSpace(req.Query))
	for _, c := range cands {
		if q != "" && !strings.Contains(strings.ToLower(c.Name), q) {
			continue
		}
		if req.MinROI > 0 && c.ROIPct < req.MinROI {
			continue
		}
		if req.MinProfitHr > 0 && c.ProfitPerHour < req.MinProfitHr {
			continue
		}
		if req.HASafe && !c.HASafe {
			continue
		}
		if req.HideInfETA && !c.HoursToClear.IsFinite() {
			continue
		}
		if req.MaxETAHours > 0 {
			if !c.HoursToClear.IsFinite() || float64(c.HoursToClear) > req.MaxETAHours {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

func (h *FlipsHandler) Refresh(c echo.Context) error {
	if err := h.ref.Refresh(c.Request().Context()); err != nil {
		if errors.Is(err, usecase.ErrRefreshInFlight) {
			return xhttp.DataResponse(c, http.StatusConflict, "refresh already in progress")
		}
		h.logger.Error("manual refresh failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	cands, at := h.ref.Snapshot()
	return xhttp.SuccessResponse(c, &FlipsResponse{
		UpdatedAt: at,
		Count:     len(cands),
		Flips:     nil,
	})
}

// StatusResponse is the payload of GET /api/status.
type StatusResponse struct {
	UpdatedAt  time.Time      `json:"updated_at"`
	AgeSeconds float64        `json:"age_seconds"`
	Candidates int            `json:"candidates"`
	Rejections map[string]int `json:"rejections"`
	InFlight   bool           `json:"in_flight"`
	TaxModel   string         `json:"tax_model"`
}

func (h *FlipsHandler) Status(c echo.Context) error {
	cands, at := h.ref.Snapshot()
	age := 0.0
	if !at.IsZero() {
		age = time.Since(at).Seconds()
	}
	return xhttp.SuccessResponse(c, &StatusResponse{
		UpdatedAt:  at,
		AgeSeconds: age,
		Candidates: len(cands),
		Rejections: h.ref.Rejections(),
		InFlight:   h.ref.InFlight(),
		TaxModel:   h.ref.Params().TaxModel,
	})
}

var exportHeader = []string{
	"id", "name", "buy", "sell", "tax", "profit_unit", "qty", "gp_needed",
	"est_profit", "roi_pct", "limit_4h", "vol", "price_src", "ha_safe",
	"cycles_per_day", "daily_profit_est", "hours_to_clear", "profit_per_hour", "score",
}

func exportRow(c models.FlipCandidate) []string {
	return []string{
		strconv.Itoa(c.ID),
		c.Name,
		strconv.FormatInt(c.Buy, 10),
		strconv.FormatInt(c.Sell, 10),
		strconv.FormatInt(c.Tax, 10),
		strconv.FormatInt(c.ProfitUnit, 10),
		strconv.FormatInt(c.Qty, 10),
		strconv.FormatInt(c.GPNeeded, 10),
		strconv.FormatInt(c.EstProfit, 10),
		strconv.FormatFloat(c.ROIPct, 'f', 2, 64),
		strconv.FormatInt(c.Limit, 10),
		strconv.FormatInt(c.Volume, 10),
		c.PriceSource,
		strconv.FormatBool(c.HASafe),
		strconv.FormatFloat(c.CyclesPerDay, 'f', 2, 64),
		strconv.FormatFloat(c.DailyProfitEst, 'f', 0, 64),
		formatNullable(c.HoursToClear),
		strconv.FormatFloat(c.ProfitPerHour, 'f', 0, 64),
		strconv.FormatFloat(c.Score, 'f', 2, 64),
	}
}

func formatNullable(v models.NullableFloat) string {
	if !v.IsFinite() {
		return ""
	}
	return strconv.FormatFloat(float64(v), 'f', 2, 64)
}

func (h *FlipsHandler) Export(c echo.Context) error {
	req := &models.ExportRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	cands, _ := h.ref.Snapshot()
	if req.N > 0 && len(cands) > req.N {
		cands = cands[:req.N]
	}

	ext := req.Format
	c.Response().Header().Set(echo.HeaderContentType, "text/"+ext+"; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=flips.%s", ext))
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if req.Format == "tsv" {
		w.Comma = '\t'
	}
	if err := w.Write(exportHeader); err != nil {
		return err
	}
	for _, cand := range cands {
		if err := w.Write(exportRow(cand)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (h *FlipsHandler) ExportXLSX(c echo.Context) error {
	req := &models.ExportRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	cands, _ := h.ref.Snapshot()
	if req.N > 0 && len(cands) > req.N {
		cands = cands[:req.N]
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Flips"
	f.SetSheetName("Sheet1", sheet)
	for col, name := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, name)
	}
	for row, cand := range cands {
		for col, v := range exportRow(cand) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=flips.xlsx")
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}
