package domain

import "github.com/shopspring/decimal"

// CreditRequestStatus tracks a credit-limit raise through its two approval
// gates: the branch forwards or denies, headquarters approves or denies.
type CreditRequestStatus string

const (
	CreditPending   CreditRequestStatus = "PENDING"
	CreditForwarded CreditRequestStatus = "FORWARDED_TO_HQ"
	CreditApproved  CreditRequestStatus = "APPROVED"
	CreditDenied    CreditRequestStatus = "DENIED"
)

// AwaitingDecision reports whether a headquarters decision may be applied.
// Pending is included so headquarters can decide directly on accounts it
// created itself, without a branch gate in between.
func (s CreditRequestStatus) AwaitingDecision() bool {
	return s == CreditPending || s == CreditForwarded
}

// CreditRequest asks for the requester account's credit line to be raised.
type CreditRequest struct {
	CreditRequestID    string              `json:"creditRequestID"`
	RequesterAccountID string              `json:"requesterAccountID"`
	RequesterUserID    string              `json:"requesterUserID"`
	AmountRequested    decimal.Decimal     `json:"amountRequested"`
	Reason             string              `json:"reason"`
	Status             CreditRequestStatus `json:"status"`
	BranchComment      string              `json:"branchComment"`
	HQComment          string              `json:"hqComment"`
	// CreditLimitBefore snapshots the limit at approval time for audit.
	CreditLimitBefore decimal.Decimal `json:"creditLimitBefore"`
	AuditFields
}
