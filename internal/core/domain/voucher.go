package domain

import "time"

// VoucherStatus is the lifecycle of a trade voucher.
type VoucherStatus string

const (
	VoucherActive    VoucherStatus = "ACTIVE"
	VoucherRedeemed  VoucherStatus = "REDEEMED"
	VoucherCancelled VoucherStatus = "CANCELLED"
)

// Voucher is a redeemable proof issued for a trade. The engine only touches
// vouchers on reversal, when all vouchers of the transaction are cancelled.
type Voucher struct {
	VoucherID     string        `json:"voucherID"`
	TransactionID string        `json:"transactionID"`
	Code          string        `json:"code"`
	Status        VoucherStatus `json:"status"`
	CancelledAt   *time.Time    `json:"cancelledAt,omitempty"`
	AuditFields
}
