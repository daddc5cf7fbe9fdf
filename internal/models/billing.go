package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Billing is one commission installment invoice.
type Billing struct {
	BillingID      string          `db:"billing_id"`
	TransactionID  string          `db:"transaction_id"`
	PayerAccountID string          `db:"payer_account_id"`
	PayerUserID    string          `db:"payer_user_id"`
	ManagerUserID  string          `db:"manager_user_id"` // Nullable
	Reference      string          `db:"reference"`
	AmountDue      decimal.Decimal `db:"amount_due"`
	DueDate        time.Time       `db:"due_date"`
	Status         string          `db:"status"`
	AuditFields
}
