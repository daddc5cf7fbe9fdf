package models

import "github.com/shopspring/decimal"

// CreditRequest is one credit-limit raise request row.
type CreditRequest struct {
	CreditRequestID    string          `db:"credit_request_id"`
	RequesterAccountID string          `db:"requester_account_id"`
	RequesterUserID    string          `db:"requester_user_id"`
	AmountRequested    decimal.Decimal `db:"amount_requested"`
	Reason             string          `db:"reason"`
	Status             string          `db:"status"`
	BranchComment      string          `db:"branch_comment"`
	HQComment          string          `db:"hq_comment"`
	CreditLimitBefore  decimal.Decimal `db:"credit_limit_before"`
	AuditFields
}
