package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MaxTecnology/rede-trade-back/internal/apperrors"
	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
	portssvc "github.com/MaxTecnology/rede-trade-back/internal/core/ports/services"
	"github.com/MaxTecnology/rede-trade-back/internal/dto"
	"github.com/MaxTecnology/rede-trade-back/internal/middleware"
)

// creditRequestHandler handles HTTP requests for the credit raise workflow.
type creditRequestHandler struct {
	creditService portssvc.CreditRequestSvcFacade
}

// registerCreditRequestRoutes registers routes related to credit requests.
func registerCreditRequestRoutes(rg *gin.RouterGroup, creditService portssvc.CreditRequestSvcFacade) {
	h := &creditRequestHandler{creditService: creditService}

	requests := rg.Group("/credit-requests")
	{
		requests.POST("", h.submit)
		requests.GET("/:id", h.getCreditRequest)
		requests.GET("", h.listCreditRequests)
		requests.POST("/:id/forward", h.forward)
		requests.POST("/:id/decision", h.decide)
	}
}

func (h *creditRequestHandler) submit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SubmitCreditRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitCreditRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requesterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.creditService.Submit(c.Request.Context(), req, requesterUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to submit credit request", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit credit request"})
		}
		return
	}

	logger.Info("Credit request submitted", slog.String("credit_request_id", request.CreditRequestID))
	c.JSON(http.StatusCreated, dto.ToCreditRequestResponse(request))
}

func (h *creditRequestHandler) getCreditRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	request, err := h.creditService.GetCreditRequestByID(c.Request.Context(), requestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Credit request not found"})
			return
		}
		logger.Error("Failed to get credit request", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve credit request"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCreditRequestResponse(request))
}

func (h *creditRequestHandler) listCreditRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListCreditRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if params.Status == "" {
		params.Status = string(domain.CreditPending)
	}

	requests, err := h.creditService.ListCreditRequestsByStatus(c.Request.Context(), domain.CreditRequestStatus(params.Status), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list credit requests", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list credit requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"creditRequests": dto.ToCreditRequestResponses(requests)})
}

func (h *creditRequestHandler) forward(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	var req dto.ForwardCreditRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.creditService.Forward(c.Request.Context(), requestID, req.Comment, actorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Credit request not found"})
		case errors.Is(err, apperrors.ErrInvalidStateTransition):
			logger.Warn("Credit request not forwardable", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to forward credit request", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to forward credit request"})
		}
		return
	}

	logger.Info("Credit request forwarded", slog.String("credit_request_id", requestID))
	c.JSON(http.StatusOK, dto.ToCreditRequestResponse(request))
}

func (h *creditRequestHandler) decide(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	var req dto.CreditDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.creditService.Decide(c.Request.Context(), requestID, req.Approve, req.Comment, actorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Credit request not found"})
		case errors.Is(err, apperrors.ErrInvalidStateTransition):
			logger.Warn("Credit request already decided", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to decide credit request", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decide credit request"})
		}
		return
	}

	logger.Info("Credit request decided",
		slog.String("credit_request_id", requestID),
		slog.Bool("approved", req.Approve))
	c.JSON(http.StatusOK, dto.ToCreditRequestResponse(request))
}
