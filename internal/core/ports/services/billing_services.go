package services

import (
	"context"

	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
)

// BillingSvcFacade exposes the commission billing ledger.
type BillingSvcFacade interface {
	// GetBillingByID retrieves a specific billing.
	GetBillingByID(ctx context.Context, billingID string) (*domain.Billing, error)

	// ListBillingsByPayer retrieves a paginated list of billings for a payer account.
	ListBillingsByPayer(ctx context.Context, payerAccountID string, limit int, nextToken *string) ([]domain.Billing, *string, error)

	// SettleBilling flips an Issued billing to Settled.
	SettleBilling(ctx context.Context, billingID string, actorUserID string) (*domain.Billing, error)
}
