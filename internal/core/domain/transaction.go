package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus tracks a trade through its reversal state machine.
type TransactionStatus string

const (
	TxCompleted            TransactionStatus = "COMPLETED"
	TxReversalRequested    TransactionStatus = "REVERSAL_REQUESTED"
	TxForwardedForReversal TransactionStatus = "FORWARDED_TO_HQ_FOR_REVERSAL"
	TxReversed             TransactionStatus = "REVERSED"
)

// CanRequestReversal reports whether a branch may open a reversal request.
func (s TransactionStatus) CanRequestReversal() bool {
	return s == TxCompleted
}

// CanForwardForReversal reports whether the request may be escalated to
// headquarters. Forwarding straight from Completed is allowed; some units
// escalate without recording the intermediate request.
func (s TransactionStatus) CanForwardForReversal() bool {
	return s == TxCompleted || s == TxReversalRequested
}

// CanReverse reports whether the ledger effects may be undone. A reversed
// transaction can never be reversed again.
func (s TransactionStatus) CanReverse() bool {
	switch s {
	case TxCompleted, TxReversalRequested, TxForwardedForReversal:
		return true
	}
	return false
}

// Transaction is the immutable record of one completed trade. Monetary fields
// are write-once at creation; only the status and ReversedAt ever change.
type Transaction struct {
	TransactionID string `json:"transactionID"`
	Code          string `json:"code"` // short human-facing reference

	BuyerAccountID  string `json:"buyerAccountID"`
	SellerAccountID string `json:"sellerAccountID"`
	BuyerUserID     string `json:"buyerUserID"`
	SellerUserID    string `json:"sellerUserID"`

	// Delegate sub-accounts the trade was addressed through, when any. Funds
	// always settle on the parent accounts above.
	BuyerSubAccountID  string `json:"buyerSubAccountID,omitempty"`
	SellerSubAccountID string `json:"sellerSubAccountID,omitempty"`

	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	OfferID     string          `json:"offerID"` // optional catalog reference

	BuyerBarterBefore decimal.Decimal `json:"buyerBarterBefore"`
	BuyerBarterAfter  decimal.Decimal `json:"buyerBarterAfter"`
	BuyerCreditBefore decimal.Decimal `json:"buyerCreditBefore"` // available credit
	BuyerCreditAfter  decimal.Decimal `json:"buyerCreditAfter"`
	SellerBarterAfter decimal.Decimal `json:"sellerBarterAfter"`

	FundsUsed FundsTrace `json:"fundsUsed"`

	CommissionTotal          decimal.Decimal `json:"commissionTotal"`
	CommissionPerInstallment decimal.Decimal `json:"commissionPerInstallment"`
	InstallmentCount         int             `json:"installmentCount"`

	Status     TransactionStatus `json:"status"`
	ReversedAt *time.Time        `json:"reversedAt,omitempty"`

	AuditFields
}
