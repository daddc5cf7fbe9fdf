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

// billingHandler handles HTTP requests related to commission billings.
type billingHandler struct {
	billingService portssvc.BillingSvcFacade
}

// registerBillingRoutes registers routes related to billings.
func registerBillingRoutes(rg *gin.RouterGroup, billingService portssvc.BillingSvcFacade) {
	h := &billingHandler{billingService: billingService}

	billings := rg.Group("/billings")
	{
		billings.GET("", h.listBillings)
		billings.GET("/:id", h.getBilling)
		billings.POST("/:id/settle", h.settleBilling)
	}
}

func (h *billingHandler) getBilling(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	billingID := c.Param("id")

	billing, err := h.billingService.GetBillingByID(c.Request.Context(), billingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Billing not found"})
			return
		}
		logger.Error("Failed to get billing", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve billing"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBillingResponse(billing))
}

func (h *billingHandler) listBillings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListBillingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	billings, nextToken, err := h.billingService.ListBillingsByPayer(c.Request.Context(), params.AccountID, params.Limit, params.NextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list billings", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list billings"})
		return
	}

	c.JSON(http.StatusOK, dto.ListBillingsResponse{
		Billings:  dto.ToBillingResponses(billings),
		NextToken: nextToken,
	})
}

func (h *billingHandler) settleBilling(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	billingID := c.Param("id")

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	billing, err := h.billingService.SettleBilling(c.Request.Context(), billingID, actorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Billing not found"})
		case errors.Is(err, apperrors.ErrInvalidStateTransition):
			logger.Warn("Billing not settleable", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to settle billing", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to settle billing"})
		}
		return
	}

	logger.Info("Billing settled", slog.String("billing_id", billingID))
	c.JSON(http.StatusOK, dto.ToBillingResponse(billing))
}
