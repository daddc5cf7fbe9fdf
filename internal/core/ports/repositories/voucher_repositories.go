package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
)

// VoucherReader defines read operations for voucher data
type VoucherReader interface {
	// FindVoucherByCode retrieves a voucher by its redeem code.
	FindVoucherByCode(ctx context.Context, code string) (*domain.Voucher, error)

	// FindVouchersByTransactionID retrieves the vouchers issued for a transaction.
	FindVouchersByTransactionID(ctx context.Context, transactionID string) ([]domain.Voucher, error)
}

// VoucherWriter defines write operations for voucher data
type VoucherWriter interface {
	// SaveVoucherInTx persists a new voucher within a database transaction.
	SaveVoucherInTx(ctx context.Context, tx pgx.Tx, voucher domain.Voucher) error

	// RedeemVoucher flips an Active voucher to Redeemed.
	RedeemVoucher(ctx context.Context, voucherID string, userID string, now time.Time) error

	// CancelVouchersByTransactionInTx cancels every active voucher of a
	// transaction, recording the cancellation timestamp, within a database transaction.
	CancelVouchersByTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string, userID string, now time.Time) error
}

// VoucherRepositoryFacade combines all voucher-related repository interfaces
type VoucherRepositoryFacade interface {
	VoucherReader
	VoucherWriter
}
