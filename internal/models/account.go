package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents one marketplace participant's ledger row.
type Account struct {
	AccountID      string `db:"account_id"`
	OwnerUserID    string `db:"owner_user_id"`
	AccountNumber  string `db:"account_number"`
	AccountTypeID  string `db:"account_type_id"`
	Tier           string `db:"tier"`
	HeadquartersID string `db:"headquarters_id"`
	CreatorUserID  string `db:"creator_user_id"`
	ManagerUserID  string `db:"manager_user_id"` // Nullable
	PlanID         string `db:"plan_id"`         // Nullable

	CreditLimit   decimal.Decimal `db:"credit_limit"`
	UsedCredit    decimal.Decimal `db:"used_credit"`
	BarterBalance decimal.Decimal `db:"barter_balance"`

	MonthlySalesCap     decimal.Decimal `db:"monthly_sales_cap"`
	TotalSalesCap       decimal.Decimal `db:"total_sales_cap"`
	CompanySalesCap     decimal.Decimal `db:"company_sales_cap"`
	MonthlySalesCurrent decimal.Decimal `db:"monthly_sales_current"`
	MonthlySalesMonth   time.Time       `db:"monthly_sales_month"`
	TotalSalesCurrent   decimal.Decimal `db:"total_sales_current"`

	BillingCloseDay int  `db:"billing_close_day"`
	BillingDueDay   int  `db:"billing_due_day"`
	IsActive        bool `db:"is_active"`
	AuditFields
}

// AccountType is one row of the account type catalog.
type AccountType struct {
	AccountTypeID string `db:"account_type_id"`
	Name          string `db:"name"`
	Tier          string `db:"tier"`
	NumberPrefix  string `db:"number_prefix"`
}
