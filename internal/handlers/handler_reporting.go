package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MaxTecnology/rede-trade-back/internal/apperrors"
	portssvc "github.com/MaxTecnology/rede-trade-back/internal/core/ports/services"
	"github.com/MaxTecnology/rede-trade-back/internal/dto"
	"github.com/MaxTecnology/rede-trade-back/internal/middleware"
)

// reportingHandler handles HTTP requests for dashboard reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
	userService      portssvc.UserReaderSvc
}

// registerReportingRoutes registers the report endpoints.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, userService portssvc.UserReaderSvc) {
	h := &reportingHandler{reportingService: reportingService, userService: userService}

	reports := rg.Group("/reports")
	{
		reports.GET("/trade-volume", h.tradeVolume)
		reports.GET("/manager-commission/:managerID", h.managerCommission)
		reports.GET("/receivables", h.receivables)
		reports.GET("/approved-credit", h.approvedCredit)
	}
}

// callerHeadquarters resolves the headquarters scope of the logged-in user.
func (h *reportingHandler) callerHeadquarters(c *gin.Context) (string, bool) {
	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	actor, err := h.userService.GetUserByID(c.Request.Context(), actorUserID)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to resolve caller", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve caller"})
		return "", false
	}
	return actor.HeadquartersID, true
}

func (h *reportingHandler) tradeVolume(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	headquartersID, ok := h.callerHeadquarters(c)
	if !ok {
		return
	}

	rows, err := h.reportingService.GetTradeVolume(c.Request.Context(), &headquartersID, params.From, params.To)
	if err != nil {
		logger.Error("Failed to build trade volume report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, dto.TradeVolumeResponse{Rows: rows})
}

func (h *reportingHandler) managerCommission(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	managerID := c.Param("managerID")
	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.reportingService.GetManagerCommission(c.Request.Context(), managerID, params.From, params.To)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Manager not found"})
			return
		}
		logger.Error("Failed to build manager commission report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *reportingHandler) receivables(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	headquartersID, ok := h.callerHeadquarters(c)
	if !ok {
		return
	}

	resp, err := h.reportingService.GetOpenReceivables(c.Request.Context(), headquartersID)
	if err != nil {
		logger.Error("Failed to build receivables report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *reportingHandler) approvedCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	headquartersID, ok := h.callerHeadquarters(c)
	if !ok {
		return
	}

	resp, err := h.reportingService.GetApprovedCreditTotal(c.Request.Context(), headquartersID, params.From, params.To)
	if err != nil {
		logger.Error("Failed to build approved credit report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
