package services

import (
	"context"

	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
)

// VoucherSvcFacade exposes trade voucher lookup and redemption.
type VoucherSvcFacade interface {
	// GetVoucherByCode retrieves a voucher by its redeem code.
	GetVoucherByCode(ctx context.Context, code string) (*domain.Voucher, error)

	// ListVouchersByTransaction retrieves the vouchers issued for a transaction.
	ListVouchersByTransaction(ctx context.Context, transactionID string) ([]domain.Voucher, error)

	// RedeemVoucher flips an Active voucher to Redeemed. Cancelled and already
	// redeemed vouchers are rejected.
	RedeemVoucher(ctx context.Context, code string, actorUserID string) (*domain.Voucher, error)
}
