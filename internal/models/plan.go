package models

import "github.com/shopspring/decimal"

// Plan is one commission plan row.
type Plan struct {
	PlanID         string          `db:"plan_id"`
	Name           string          `db:"name"`
	CommissionRate decimal.Decimal `db:"commission_rate"`
	AuditFields
}

// FundEntry is one line of the barter fund register.
type FundEntry struct {
	FundEntryID string          `db:"fund_entry_id"`
	UserID      string          `db:"user_id"`
	AccountID   string          `db:"account_id"`
	Amount      decimal.Decimal `db:"amount"`
	Reason      string          `db:"reason"`
	AuditFields
}
