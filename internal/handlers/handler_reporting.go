package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bookkeepr/bookkeeping_app/internal/core/ports/services"
	"github.com/bookkeepr/bookkeeping_app/internal/dto"
	"github.com/bookkeepr/bookkeeping_app/internal/middleware"
)

// reportingHandler handles HTTP requests for financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers report routes under a specific company.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/profit-and-loss", h.profitAndLoss)
		reports.GET("/balance-sheet", h.balanceSheet)
	}
}

// trialBalance godoc
// @Summary Trial balance report
// @Description Per-account debit, credit and net totals over POSTED entries
// @Description up to the asOf date. An imbalanced ledger is reported in the
// @Description payload, never as an error.
// @Tags reports
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   asOf query string false "Cutoff date YYYY-MM-DD, defaults to today"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /companies/{company_id}/reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	var params dto.TrialBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	asOf, err := dto.ParseReportDateEnd(params.AsOf)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected YYYY-MM-DD"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), companyID, asOf, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute trial balance")
		return
	}

	c.JSON(http.StatusOK, dto.TrialBalanceResponse{AsOf: dto.FormatReportDate(asOf), Report: report})
}

// profitAndLoss godoc
// @Summary Profit and loss statement
// @Description Revenue and expense sections grouped by sub-type over the
// @Description requested period, POSTED entries only.
// @Tags reports
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   from query string true "Period start YYYY-MM-DD"
// @Param   to query string true "Period end YYYY-MM-DD"
// @Success 200 {object} dto.ProfitAndLossResponse
// @Failure 400 {object} map[string]interface{} "Invalid or inverted date range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /companies/{company_id}/reports/profit-and-loss [get]
func (h *reportingHandler) profitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	var params dto.ProfitAndLossParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	from, err := dto.ParseReportDate(params.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, expected YYYY-MM-DD"})
		return
	}
	to, err := dto.ParseReportDateEnd(params.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date, expected YYYY-MM-DD"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), companyID, from, to, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute profit and loss")
		return
	}

	c.JSON(http.StatusOK, dto.ProfitAndLossResponse{
		From:   dto.FormatReportDate(from),
		To:     dto.FormatReportDate(to),
		Report: report,
	})
}

// balanceSheet godoc
// @Summary Balance sheet report
// @Description Assets, liabilities and equity grouped by sub-type, cumulative
// @Description over all POSTED entries up to the asOf date.
// @Tags reports
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   asOf query string false "Cutoff date YYYY-MM-DD, defaults to today"
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /companies/{company_id}/reports/balance-sheet [get]
func (h *reportingHandler) balanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	var params dto.BalanceSheetParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	asOf, err := dto.ParseReportDateEnd(params.AsOf)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected YYYY-MM-DD"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), companyID, asOf, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute balance sheet")
		return
	}

	c.JSON(http.StatusOK, dto.BalanceSheetResponse{AsOf: dto.FormatReportDate(asOf), Report: report})
}
