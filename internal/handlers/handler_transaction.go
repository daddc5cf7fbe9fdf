package handlers

import (
	"context"
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

// transactionHandler handles HTTP requests related to trade transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// RegisterTransactionRoutes registers routes related to trade transactions.
func RegisterTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := &transactionHandler{transactionService: transactionService}

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.executeTransaction)
		transactions.GET("/:id", h.getTransaction)
		transactions.GET("", h.listTransactions)
		transactions.POST("/:id/reversal-request", h.requestReversal)
		transactions.POST("/:id/forward-reversal", h.forwardReversal)
		transactions.POST("/:id/reverse", h.executeReversal)
	}
	rg.GET("/reversal-queue", h.listReversalQueue)
}

// executeTransaction runs a trade. An insufficient-funds outcome is a business
// result, not an error, and is reported with HTTP 200.
func (h *transactionHandler) executeTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ExecuteTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ExecuteTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(
		slog.String("buyer_account_id", req.BuyerAccountID),
		slog.String("seller_account_id", req.SellerAccountID),
	)
	logger.Info("Received request to execute trade", slog.String("amount", req.Amount.String()))

	result, err := h.transactionService.Execute(c.Request.Context(), req, actorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			logger.Info("Trade rejected for insufficient funds")
			c.JSON(http.StatusOK, dto.InsufficientFundsResponse{
				Status:  "INSUFFICIENT_FUNDS",
				Message: err.Error(),
			})
		case errors.Is(err, apperrors.ErrCapExceeded):
			logger.Warn("Trade rejected by sales cap", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error executing trade", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Account not found executing trade", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to execute trade", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to execute transaction"})
		}
		return
	}

	logger.Info("Trade executed",
		slog.String("transaction_id", result.Transaction.TransactionID),
		slog.String("code", result.Transaction.Code),
		slog.Bool("notifications_sent", result.NotificationsSent))
	c.JSON(http.StatusCreated, result)
}

func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		logger.Error("Failed to get transaction", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listTransactions lists an account's trades, or looks one up by its trade
// code when the code query is given.
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if code := c.Query("code"); code != "" {
		txn, err := h.transactionService.GetTransactionByCode(c.Request.Context(), code)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
				return
			}
			logger.Error("Failed to find transaction by code", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
			return
		}
		c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
		return
	}

	accountID := c.Query("accountID")
	if accountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "accountID query parameter is required"})
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	txns, nextToken, err := h.transactionService.ListTransactionsByAccount(c.Request.Context(), accountID, params.Limit, params.NextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	})
}

// listReversalQueue lists transactions awaiting a reversal decision. The
// status query selects which stage of the queue to show.
func (h *transactionHandler) listReversalQueue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	status := domain.TransactionStatus(c.DefaultQuery("status", string(domain.TxReversalRequested)))
	if status != domain.TxReversalRequested && status != domain.TxForwardedForReversal {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be a reversal workflow status"})
		return
	}

	var headquartersID *string
	if hq := c.Query("headquartersID"); hq != "" {
		headquartersID = &hq
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	txns, nextToken, err := h.transactionService.ListReversalQueue(c.Request.Context(), status, headquartersID, params.Limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list reversal queue", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reversal queue"})
		return
	}

	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	})
}

func (h *transactionHandler) requestReversal(c *gin.Context) {
	h.transition(c, h.transactionService.RequestReversal, "reversal request")
}

func (h *transactionHandler) forwardReversal(c *gin.Context) {
	h.transition(c, h.transactionService.ForwardReversalToHeadquarters, "reversal forwarding")
}

func (h *transactionHandler) executeReversal(c *gin.Context) {
	h.transition(c, h.transactionService.ExecuteReversal, "reversal execution")
}

// transition runs one reversal workflow step and maps its outcome to HTTP.
func (h *transactionHandler) transition(
	c *gin.Context,
	step func(ctx context.Context, transactionID string, actorUserID string) (*domain.Transaction, error),
	action string,
) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("transaction_id", transactionID))

	txn, err := step(c.Request.Context(), transactionID, actorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		case errors.Is(err, apperrors.ErrInvalidStateTransition):
			logger.Warn("Invalid state for "+action, slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed "+action, slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed " + action})
		}
		return
	}

	logger.Info("Completed "+action, slog.String("status", string(txn.Status)))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
