package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	portssvc "github.com/hotelnest/shift_ledger_app/internal/core/ports/services"
	"github.com/hotelnest/shift_ledger_app/internal/dto"
)

// reportingHandler handles HTTP requests for revenue reporting.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: reportingService}
}

// dashboardSummary godoc
// @Summary Dashboard revenue summary
// @Description Returns aggregated revenue, branch rankings and recent closes
// @Tags reports
// @Produce json
// @Param branch query string false "Branch code"
// @Param day query string false "YYYY-MM-DD"
// @Param year query int false "Year window"
// @Param month query int false "Month window (requires year)"
// @Param status query string false "PENDING or CLOSED"
// @Param transactionType query string false "Transaction type"
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Router /reports/dashboard [get]
func (h *reportingHandler) dashboardSummary(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var params dto.DashboardParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	resp, err := h.reportingService.DashboardSummary(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// monthlySummary godoc
// @Summary Settled revenue by month
// @Tags reports
// @Produce json
// @Param year query int false "Year, defaults to current"
// @Success 200 {object} dto.MonthlyRevenueResponse
// @Failure 400 {object} map[string]string "Invalid year"
// @Router /reports/monthly [get]
func (h *reportingHandler) monthlySummary(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	year := 0
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return
		}
		year = parsed
	}

	resp, err := h.reportingService.MonthlySummary(c.Request.Context(), actor, year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// pendingSummary godoc
// @Summary Pending revenue for a branch
// @Tags reports
// @Produce json
// @Param branch query string false "Branch code, defaults to the caller's branch"
// @Success 200 {object} dto.PendingSummaryResponse
// @Failure 400 {object} map[string]string "Branch is required"
// @Router /reports/pending [get]
func (h *reportingHandler) pendingSummary(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.reportingService.PendingSummary(c.Request.Context(), actor, c.Query("branch"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// registerReportingRoutes registers reporting specific routes
func registerReportingRoutes(group *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := group.Group("/reports")
	{
		reports.GET("/dashboard", h.dashboardSummary)
		reports.GET("/monthly", h.monthlySummary)
		reports.GET("/pending", h.pendingSummary)
	}
}
