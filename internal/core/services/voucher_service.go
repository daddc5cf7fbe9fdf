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

// voucherService exposes trade voucher lookup and redemption.
type voucherService struct {
	voucherRepo portsrepo.VoucherRepositoryFacade
}

// NewVoucherService creates a new VoucherService.
func NewVoucherService(voucherRepo portsrepo.VoucherRepositoryFacade) portssvc.VoucherSvcFacade {
	return &voucherService{voucherRepo: voucherRepo}
}

var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

// GetVoucherByCode retrieves a voucher by its redeem code.
func (s *voucherService) GetVoucherByCode(ctx context.Context, code string) (*domain.Voucher, error) {
	voucher, err := s.voucherRepo.FindVoucherByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to find voucher %s: %w", code, err)
	}
	return voucher, nil
}

// ListVouchersByTransaction retrieves the vouchers issued for a transaction.
func (s *voucherService) ListVouchersByTransaction(ctx context.Context, transactionID string) ([]domain.Voucher, error) {
	vouchers, err := s.voucherRepo.FindVouchersByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vouchers for transaction %s: %w", transactionID, err)
	}
	return vouchers, nil
}

// RedeemVoucher flips an Active voucher to Redeemed. Vouchers cancelled by a
// reversal and already redeemed vouchers are rejected.
func (s *voucherService) RedeemVoucher(ctx context.Context, code string, actorUserID string) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	voucher, err := s.voucherRepo.FindVoucherByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to find voucher %s: %w", code, err)
	}
	if voucher.Status != domain.VoucherActive {
		return nil, fmt.Errorf("%w: cannot redeem voucher %s in status %s",
			apperrors.ErrInvalidStateTransition, code, voucher.Status)
	}

	now := time.Now().UTC()
	if err := s.voucherRepo.RedeemVoucher(ctx, voucher.VoucherID, actorUserID, now); err != nil {
		logger.Error("Failed to redeem voucher", slog.String("error", err.Error()), slog.String("voucher_id", voucher.VoucherID))
		return nil, fmt.Errorf("failed to redeem voucher %s: %w", code, err)
	}

	voucher.Status = domain.VoucherRedeemed
	voucher.LastUpdatedAt = now
	voucher.LastUpdatedBy = actorUserID

	logger.Info("Voucher redeemed", slog.String("voucher_id", voucher.VoucherID), slog.String("transaction_id", voucher.TransactionID))
	return voucher, nil
}
