package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-sellermetrics/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/domain"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/services"
)

type DashboardHandler struct {
	svc *services.DashboardService
}

func NewDashboardHandler(svc *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) RegisterRoutes(r *gin.RouterGroup) {
	dashboard := r.Group("/dashboard")
	{
		dashboard.GET("/summary", h.Summary)
		dashboard.GET("/series", h.Series)
		dashboard.GET("/weekday", h.Weekday)
		dashboard.GET("/quarters", h.Quarters)
		dashboard.GET("/yoy", h.YearOverYear)
	}
}

// Summary godoc
// @Summary      Reconciled metric cards
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        store_ids   query  string  false  "comma separated store ids, all stores when empty"
// @Param        start_date  query  string  false  "YYYY-MM-DD, defaults to 6 days before end_date"
// @Param        end_date    query  string  false  "YYYY-MM-DD, defaults to today"
// @Success      200  {object}  domain.Summary
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	input, ok := h.dashboardInput(c)
	if !ok {
		return
	}

	summary, err := h.svc.Summary(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Series godoc
// @Summary      Bucketed time series with period-over-period growth
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        metric       query  string  true   "sales, orders, visitors, conversion_rate or basket_size"
// @Param        granularity  query  string  false  "daily, weekly, monthly or quarterly (default daily)"
// @Param        store_ids    query  string  false  "comma separated store ids"
// @Param        start_date   query  string  false  "YYYY-MM-DD"
// @Param        end_date     query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  domain.SeriesResult
// @Failure      400  {object}  errorResponse
// @Router       /dashboard/series [get]
func (h *DashboardHandler) Series(c *gin.Context) {
	input, ok := h.dashboardInput(c)
	if !ok {
		return
	}

	metric, err := domain.ParseMetric(c.Query("metric"))
	if err != nil {
		respondError(c, err)
		return
	}
	granularity, err := domain.ParseGranularity(c.DefaultQuery("granularity", string(domain.GranularityDaily)))
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.svc.Series(c.Request.Context(), services.SeriesInput{
		DashboardInput: input,
		Metric:         metric,
		Granularity:    granularity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Weekday godoc
// @Summary      Totals and averages per day of week
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        metric      query  string  true   "metric name"
// @Param        store_ids   query  string  false  "comma separated store ids"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  domain.WeekdayResult
// @Failure      400  {object}  errorResponse
// @Router       /dashboard/weekday [get]
func (h *DashboardHandler) Weekday(c *gin.Context) {
	input, ok := h.dashboardInput(c)
	if !ok {
		return
	}

	metric, err := domain.ParseMetric(c.Query("metric"))
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.svc.WeekdayBreakdown(c.Request.Context(), services.WeekdayInput{
		DashboardInput: input,
		Metric:         metric,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Quarters godoc
// @Summary      Quarterly sales, orders and basket size
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        year       query  int     false  "calendar year, defaults to the current one"
// @Param        store_ids  query  string  false  "comma separated store ids"
// @Success      200  {object}  domain.QuarterResult
// @Failure      400  {object}  errorResponse
// @Router       /dashboard/quarters [get]
func (h *DashboardHandler) Quarters(c *gin.Context) {
	input, ok := h.yearInput(c)
	if !ok {
		return
	}

	result, err := h.svc.Quarterly(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// YearOverYear godoc
// @Summary      Monthly sales compared with the previous year
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        year       query  int     false  "calendar year"
// @Param        store_ids  query  string  false  "comma separated store ids"
// @Success      200  {object}  domain.YearOverYearResult
// @Failure      400  {object}  errorResponse
// @Router       /dashboard/yoy [get]
func (h *DashboardHandler) YearOverYear(c *gin.Context) {
	input, ok := h.yearInput(c)
	if !ok {
		return
	}

	result, err := h.svc.YearOverYear(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *DashboardHandler) dashboardInput(c *gin.Context) (services.DashboardInput, bool) {
	merchantID, ok := middleware.GetMerchantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return services.DashboardInput{}, false
	}

	dateRange, err := parseDateRange(c)
	if err != nil {
		respondError(c, err)
		return services.DashboardInput{}, false
	}

	return services.DashboardInput{
		MerchantID: merchantID,
		StoreIDs:   parseStoreIDs(c),
		Range:      dateRange,
	}, true
}

func (h *DashboardHandler) yearInput(c *gin.Context) (services.YearInput, bool) {
	merchantID, ok := middleware.GetMerchantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return services.YearInput{}, false
	}

	year, err := parseYear(c)
	if err != nil {
		respondError(c, err)
		return services.YearInput{}, false
	}

	return services.YearInput{
		MerchantID: merchantID,
		StoreIDs:   parseStoreIDs(c),
		Year:       year,
	}, true
}
