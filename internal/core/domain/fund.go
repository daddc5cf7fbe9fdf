package domain

import "github.com/shopspring/decimal"

// FundEntry is one line of the barter fund register. An entry is written when
// an account is created (its initial credit limit) and when a credit request
// is approved (the granted raise), giving headquarters an audit trail of all
// credit ever issued into the network.
type FundEntry struct {
	FundEntryID string          `json:"fundEntryID"`
	UserID      string          `json:"userID"`
	AccountID   string          `json:"accountID"`
	Amount      decimal.Decimal `json:"amount"`
	Reason      string          `json:"reason"`
	AuditFields
}
