package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
)

// BillingReader defines read operations for billing data
type BillingReader interface {
	// FindBillingByID retrieves a specific billing by its unique identifier.
	FindBillingByID(ctx context.Context, billingID string) (*domain.Billing, error)

	// ListBillingsByPayer retrieves a paginated list of billings for a payer
	// account using token-based pagination.
	ListBillingsByPayer(ctx context.Context, payerAccountID string, limit int, nextToken *string) ([]domain.Billing, *string, error)

	// FindBillingsByTransactionID retrieves all installment billings of a transaction.
	FindBillingsByTransactionID(ctx context.Context, transactionID string) ([]domain.Billing, error)
}

// BillingWriter defines write operations for billing data
type BillingWriter interface {
	// SaveBillingsInTx persists a batch of billings within a database transaction.
	SaveBillingsInTx(ctx context.Context, tx pgx.Tx, billings []domain.Billing) error

	// SettleBilling flips an Issued billing to Settled.
	SettleBilling(ctx context.Context, billingID string, userID string, now time.Time) error

	// CancelBillingsByTransactionInTx cancels every non-settled billing of a
	// transaction within a database transaction.
	CancelBillingsByTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string, userID string, now time.Time) error
}

// BillingRepositoryFacade combines all billing-related repository interfaces
type BillingRepositoryFacade interface {
	BillingReader
	BillingWriter
}
