package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillingStatus is the lifecycle of one commission installment invoice.
type BillingStatus string

const (
	BillingIssued    BillingStatus = "ISSUED"
	BillingSettled   BillingStatus = "SETTLED"
	BillingCancelled BillingStatus = "CANCELLED"
)

// Billing is one commission installment owed by the buyer of a trade.
type Billing struct {
	BillingID      string          `json:"billingID"`
	TransactionID  string          `json:"transactionID"`
	PayerAccountID string          `json:"payerAccountID"`
	PayerUserID    string          `json:"payerUserID"`
	ManagerUserID  string          `json:"managerUserID"` // commission payee, optional
	Reference      string          `json:"reference"`
	AmountDue      decimal.Decimal `json:"amountDue"`
	DueDate        time.Time       `json:"dueDate"`
	Status         BillingStatus   `json:"status"`
	AuditFields
}
