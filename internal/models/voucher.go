package models

import "time"

// Voucher is one redeemable trade voucher row.
type Voucher struct {
	VoucherID     string     `db:"voucher_id"`
	TransactionID string     `db:"transaction_id"`
	Code          string     `db:"code"`
	Status        string     `db:"status"`
	CancelledAt   *time.Time `db:"cancelled_at"` // Nullable
	AuditFields
}
