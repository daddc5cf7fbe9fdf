package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MaxTecnology/rede-trade-back/internal/apperrors"
	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
	portsrepo "github.com/MaxTecnology/rede-trade-back/internal/core/ports/repositories"
	portssvc "github.com/MaxTecnology/rede-trade-back/internal/core/ports/services"
	"github.com/MaxTecnology/rede-trade-back/internal/middleware"
)

// billingService exposes the commission billing ledger.
type billingService struct {
	billingRepo portsrepo.BillingRepositoryFacade
}

// NewBillingService creates a new BillingService.
func NewBillingService(billingRepo portsrepo.BillingRepositoryFacade) portssvc.BillingSvcFacade {
	return &billingService{billingRepo: billingRepo}
}

var _ portssvc.BillingSvcFacade = (*billingService)(nil)

// GetBillingByID retrieves a specific billing.
func (s *billingService) GetBillingByID(ctx context.Context, billingID string) (*domain.Billing, error) {
	billing, err := s.billingRepo.FindBillingByID(ctx, billingID)
	if err != nil {
		return nil, fmt.Errorf("failed to find billing %s: %w", billingID, err)
	}
	return billing, nil
}

// ListBillingsByPayer retrieves a page of a payer account's billings.
func (s *billingService) ListBillingsByPayer(ctx context.Context, payerAccountID string, limit int, nextToken *string) ([]domain.Billing, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.billingRepo.ListBillingsByPayer(ctx, payerAccountID, limit, nextToken)
}

// SettleBilling flips an Issued billing to Settled. Cancelled and already
// settled billings are rejected.
func (s *billingService) SettleBilling(ctx context.Context, billingID string, actorUserID string) (*domain.Billing, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	billing, err := s.billingRepo.FindBillingByID(ctx, billingID)
	if err != nil {
		return nil, fmt.Errorf("failed to find billing %s: %w", billingID, err)
	}
	if billing.Status != domain.BillingIssued {
		return nil, fmt.Errorf("%w: cannot settle billing %s in status %s",
			apperrors.ErrInvalidStateTransition, billingID, billing.Status)
	}

	now := time.Now().UTC()
	if err := s.billingRepo.SettleBilling(ctx, billingID, actorUserID, now); err != nil {
		logger.Error("Failed to settle billing", slog.String("error", err.Error()), slog.String("billing_id", billingID))
		return nil, fmt.Errorf("failed to settle billing %s: %w", billingID, err)
	}

	billing.Status = domain.BillingSettled
	billing.LastUpdatedAt = now
	billing.LastUpdatedBy = actorUserID

	logger.Info("Billing settled", slog.String("billing_id", billingID))
	return billing, nil
}
