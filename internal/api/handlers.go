package api

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"ricemap/internal/engine"
	"ricemap/internal/models"
	"ricemap/internal/report"
	"ricemap/internal/view"
)

const (
	maxChartLimit = 50
	mimeXLSX      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Handler struct {
	table    atomic.Pointer[engine.Table]
	page     models.Page
	topLimit int
}

// NewHandler serves table, which may be nil until SetData is called.
func NewHandler(table *engine.Table, topLimit int) *Handler {
	h := &Handler{page: view.NewPage(), topLimit: topLimit}
	if table != nil {
		h.table.Store(table)
	}
	return h
}

// SetData publishes the loaded table. Requests before it answer 503.
func (h *Handler) SetData(table *engine.Table) {
	h.table.Store(table)
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	e.GET("/healthz", h.Health)

	api := e.Group("/api")
	api.GET("/page", h.GetPage)
	api.GET("/figure", h.GetFigure)
	api.GET("/summary", h.GetSummary)
	api.GET("/report/table.xlsx", h.GetWorkbook)
	api.GET("/report/top.png", h.GetTopChart)
}

// --- HELPERS ---
func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (h *Handler) loaded() (*engine.Table, error) {
	t := h.table.Load()
	if t == nil {
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, "data is still loading")
	}
	return t, nil
}

func selectedMetric(c echo.Context) (view.Metric, error) {
	m, err := view.ParseMetric(c.QueryParam("feature"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return m, nil
}

// readError maps table read failures to a 500 carrying the reason.
func readError(err error) error {
	if errors.Is(err, engine.ErrMissingColumn) || errors.Is(err, engine.ErrNotNumeric) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error()).SetInternal(err)
	}
	return err
}

// --- HANDLERS ---
func (h *Handler) Index(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", h.page)
}

func (h *Handler) Health(c echo.Context) error {
	t := h.table.Load()
	if t == nil {
		return c.JSON(http.StatusOK, map[string]interface{}{"status": "loading"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "ready",
		"rows":      t.NumRows(),
		"countries": len(t.Regions()),
	})
}

func (h *Handler) GetPage(c echo.Context) error {
	return c.JSON(http.StatusOK, h.page)
}

// GetFigure renders the choropleth for the selected feature.
func (h *Handler) GetFigure(c echo.Context) error {
	m, err := selectedMetric(c)
	if err != nil {
		return err
	}
	t, err := h.loaded()
	if err != nil {
		return err
	}

	fig, err := view.Render(t, m)
	if err != nil {
		log.Warnf("API: %v", err)
		return readError(err)
	}

	body, err := marshal(fig)
	if err != nil {
		return err
	}
	return blobWithETag(c, echo.MIMEApplicationJSON, body)
}

// GetSummary returns the metric's statistics with the country ranking paginated.
func (h *Handler) GetSummary(c echo.Context) error {
	m, err := selectedMetric(c)
	if err != nil {
		return err
	}
	t, err := h.loaded()
	if err != nil {
		return err
	}

	s, err := t.Summarize(m.Column(), -1)
	if err != nil {
		return readError(err)
	}
	s.Label = m.Label()

	total := len(s.Top)
	limit, offset := getPaginationParams(c, total)
	if offset >= total {
		s.Top = []models.TopItem{}
	} else {
		// compared before adding so a huge limit cannot overflow
		if limit > total-offset {
			limit = total - offset
		}
		s.Top = s.Top[offset : offset+limit]
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":   s,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) GetWorkbook(c echo.Context) error {
	t, err := h.loaded()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := report.WriteWorkbook(&buf, t); err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="rice_production.xlsx"`)
	return c.Blob(http.StatusOK, mimeXLSX, buf.Bytes())
}

func (h *Handler) GetTopChart(c echo.Context) error {
	m, err := selectedMetric(c)
	if err != nil {
		return err
	}
	t, err := h.loaded()
	if err != nil {
		return err
	}

	limit, _ := getPaginationParams(c, h.topLimit)
	if limit > maxChartLimit {
		limit = maxChartLimit
	}

	var buf bytes.Buffer
	if err := report.WriteTopChart(&buf, t, m, limit); err != nil {
		if errors.Is(err, report.ErrNoData) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return readError(err)
	}
	return blobWithETag(c, "image/png", buf.Bytes())
}
