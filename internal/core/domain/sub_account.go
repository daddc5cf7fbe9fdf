package domain

// SubAccount is a delegate identity operating under a parent account. A trade
// addressed to a sub-account settles on the parent's ledger; the delegate is
// recorded on the transaction so the parent can attribute activity per
// operator.
type SubAccount struct {
	SubAccountID    string `json:"subAccountID"`
	ParentAccountID string `json:"parentAccountID"`
	UserID          string `json:"userID"` // operator behind the delegate
	Name            string `json:"name"`
	IsActive        bool   `json:"isActive"`
	AuditFields
}
