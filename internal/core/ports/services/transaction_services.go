package services

import (
	"context"

	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
	"github.com/MaxTecnology/rede-trade-back/internal/dto"
)

// TransactionReaderSvc defines read operations for trade transactions
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific transaction by its unique identifier.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// GetTransactionByCode retrieves a transaction by its human-facing trade code.
	GetTransactionByCode(ctx context.Context, code string) (*domain.Transaction, error)

	// ListTransactionsByAccount retrieves a paginated list of transactions
	// where the account is buyer or seller.
	ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListReversalQueue retrieves transactions in a given reversal workflow
	// status, scoped to a headquarters when headquartersID is non-nil.
	ListReversalQueue(ctx context.Context, status domain.TransactionStatus, headquartersID *string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionExecutorSvc runs trades and their reversals
type TransactionExecutorSvc interface {
	// Execute runs a trade between a buyer and a seller account atomically:
	// cap check, funds draw, seller credit, commission billing schedule,
	// voucher issue. An insufficient-funds outcome is reported via
	// apperrors.ErrInsufficientFunds without persisting anything.
	Execute(ctx context.Context, req dto.ExecuteTransactionRequest, actorUserID string) (*dto.TransactionResult, error)

	// RequestReversal opens a reversal request on a completed transaction.
	RequestReversal(ctx context.Context, transactionID string, actorUserID string) (*domain.Transaction, error)

	// ForwardReversalToHeadquarters escalates the reversal decision.
	ForwardReversalToHeadquarters(ctx context.Context, transactionID string, actorUserID string) (*domain.Transaction, error)

	// ExecuteReversal undoes the ledger effects of a transaction atomically:
	// restore buyer funds from the trace, claw back the seller's barter,
	// cancel billings and vouchers. A transaction can only be reversed once.
	ExecuteReversal(ctx context.Context, transactionID string, actorUserID string) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionExecutorSvc
}
