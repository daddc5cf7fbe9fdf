package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
)

// TransactionReader defines read operations for trade transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionByCode retrieves a transaction by its human-facing trade code.
	FindTransactionByCode(ctx context.Context, code string) (*domain.Transaction, error)

	// ListTransactionsByAccountID retrieves a paginated list of transactions
	// where the account is buyer or seller, using token-based pagination.
	ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListTransactionsByStatus retrieves transactions in a given status, newest
	// first, scoped to a headquarters when headquartersID is non-nil. Reversal
	// queues are built on this.
	ListTransactionsByStatus(ctx context.Context, status domain.TransactionStatus, headquartersID *string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for trade transaction data
type TransactionWriter interface {
	// SaveTransactionInTx persists a new transaction within a database transaction.
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// UpdateTransactionStatus moves a transaction from the expected status to
	// the target one. Zero rows updated means the row changed concurrently and
	// yields ErrInvalidStateTransition.
	UpdateTransactionStatus(ctx context.Context, transactionID string, from domain.TransactionStatus, to domain.TransactionStatus, userID string, now time.Time) error

	// MarkTransactionReversedInTx sets the Reversed status and reversal
	// timestamp within a database transaction.
	MarkTransactionReversedInTx(ctx context.Context, tx pgx.Tx, transactionID string, reversedAt time.Time, userID string) error

	// FindTransactionByIDForUpdate selects a transaction and locks its row
	// within a database transaction.
	FindTransactionByIDForUpdate(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.Transaction, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
