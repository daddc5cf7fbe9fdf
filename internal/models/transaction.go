package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one completed trade. FundsUsed is stored as JSONB: the
// per-pool draw trace is read back verbatim on reversal.
type Transaction struct {
	TransactionID string `db:"transaction_id"`
	Code          string `db:"code"`

	BuyerAccountID  string `db:"buyer_account_id"`
	SellerAccountID string `db:"seller_account_id"`
	BuyerUserID     string `db:"buyer_user_id"`
	SellerUserID    string `db:"seller_user_id"`

	BuyerSubAccountID  string `db:"buyer_sub_account_id"`  // Nullable
	SellerSubAccountID string `db:"seller_sub_account_id"` // Nullable

	Amount      decimal.Decimal `db:"amount"`
	Description string          `db:"description"`
	OfferID     string          `db:"offer_id"` // Nullable

	BuyerBarterBefore decimal.Decimal `db:"buyer_barter_before"`
	BuyerBarterAfter  decimal.Decimal `db:"buyer_barter_after"`
	BuyerCreditBefore decimal.Decimal `db:"buyer_credit_before"`
	BuyerCreditAfter  decimal.Decimal `db:"buyer_credit_after"`
	SellerBarterAfter decimal.Decimal `db:"seller_barter_after"`

	FundsUsed []byte `db:"funds_used"` // JSONB

	CommissionTotal          decimal.Decimal `db:"commission_total"`
	CommissionPerInstallment decimal.Decimal `db:"commission_per_installment"`
	InstallmentCount         int             `db:"installment_count"`

	Status     string     `db:"status"`
	ReversedAt *time.Time `db:"reversed_at"` // Nullable
	AuditFields
}
