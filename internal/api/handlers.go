package api

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/emantzoo/TSA-GR/internal/engine"
	"github.com/emantzoo/TSA-GR/internal/models"
)

// Handler serves the current analysis run. The report pointer is swapped
// wholesale on reload; a RWMutex guards the swap because reloads happen
// on a background goroutine.
type Handler struct {
	mu        sync.RWMutex
	report    *models.AnalysisReport
	scenarios *engine.ScenarioEngine
}

func NewHandler(report *models.AnalysisReport, scenarios *engine.ScenarioEngine) *Handler {
	return &Handler{report: report, scenarios: scenarios}
}

// SetReport replaces the served run. The old report is discarded whole;
// nothing inside a report is ever patched in place.
func (h *Handler) SetReport(report *models.AnalysisReport) {
	h.mu.Lock()
	h.report = report
	h.mu.Unlock()
}

func (h *Handler) current() *models.AnalysisReport {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.report
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/report", h.GetReport)
	api.GET("/aggregates", h.GetAggregates)
	api.GET("/ratios", h.GetRatios)
	api.GET("/employment", h.GetEmployment)
	api.GET("/validation", h.GetValidation)
	api.GET("/scenarios/growth", h.GetGrowthScenarios)
	api.GET("/scenarios/policies", h.GetPolicyOutcomes)
	api.GET("/scenarios/sensitivity", h.GetSensitivity)
}

// --- HANDLERS ---

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

func (h *Handler) GetReport(c echo.Context) error {
	report := h.current()
	if report == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "analysis not ready")
	}
	return c.JSON(http.StatusOK, report)
}

func (h *Handler) GetAggregates(c echo.Context) error {
	report := h.current()
	if report == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "analysis not ready")
	}
	return c.JSON(http.StatusOK, report.Aggregates)
}

func (h *Handler) GetRatios(c echo.Context) error {
	report := h.current()
	if report == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "analysis not ready")
	}

	ratios := report.Ratios
	total := len(ratios)
	limit, offset := getPaginationParams(c, total)

	if offset >= total {
		return c.JSON(http.StatusOK, []models.RatioRecord{})
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":   ratios[offset:end],
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) GetEmployment(c echo.Context) error {
	report := h.current()
	if report == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "analysis not ready")
	}

	records := report.Employment
	limit, _ := getPaginationParams(c, len(records))
	if limit < len(records) {
		return c.JSON(http.StatusOK, records[:limit])
	}
	return c.JSON(http.StatusOK, records)
}

func (h *Handler) GetValidation(c echo.Context) error {
	report := h.current()
	if report == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "analysis not ready")
	}
	return c.JSON(http.StatusOK, report.Validation)
}

// --- SCENARIO HANDLERS ---

func (h *Handler) GetGrowthScenarios(c echo.Context) error {
	report := h.current()
	if report == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "analysis not ready")
	}

	years, err := strconv.Atoi(c.QueryParam("years"))
	if err != nil || years <= 0 {
		years = 5
	}
	return c.JSON(http.StatusOK, h.scenarios.ProjectGrowth(report.Aggregates, years))
}

func (h *Handler) GetPolicyOutcomes(c echo.Context) error {
	report := h.current()
	if report == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "analysis not ready")
	}
	return c.JSON(http.StatusOK, h.scenarios.EvaluatePolicies(report.Aggregates))
}

func (h *Handler) GetSensitivity(c echo.Context) error {
	report := h.current()
	if report == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "analysis not ready")
	}

	parameter := c.QueryParam("parameter")
	change, err := strconv.ParseFloat(c.QueryParam("change"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "change must be a number")
	}

	result, err := h.scenarios.Sensitivity(report.Aggregates, parameter, change)
	if err != nil {
		var unknown *engine.UnknownParameterError
		if errors.As(err, &unknown) {
			return echo.NewHTTPError(http.StatusBadRequest, unknown.Error())
		}
		return err
	}
	return c.JSON(http.StatusOK, result)
}
