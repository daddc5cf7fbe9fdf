package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MaxTecnology/rede-trade-back/internal/apperrors"
)

// AccountTier places an account in the organizational hierarchy.
type AccountTier string

const (
	TierHeadquarters AccountTier = "HEADQUARTERS"
	TierBranch       AccountTier = "BRANCH"
	TierAssociate    AccountTier = "ASSOCIATE"
)

// AccountType describes a category of account: its tier in the hierarchy and
// the prefix used when deriving account numbers of that type.
type AccountType struct {
	AccountTypeID string      `json:"accountTypeID"`
	Name          string      `json:"name"`
	Tier          AccountTier `json:"tier"`
	NumberPrefix  string      `json:"numberPrefix"`
}

// Account holds the two value pools of one marketplace participant: a
// revolving credit line (CreditLimit / UsedCredit) and a barter-currency
// balance. Sales caps and billing-cycle anchors also live here.
type Account struct {
	AccountID      string      `json:"accountID"`
	OwnerUserID    string      `json:"ownerUserID"`
	AccountNumber  string      `json:"accountNumber"` // immutable once assigned
	AccountTypeID  string      `json:"accountTypeID"`
	Tier           AccountTier `json:"tier"`
	HeadquartersID string      `json:"headquartersID"` // precomputed at creation
	CreatorUserID  string      `json:"creatorUserID"`  // user that onboarded this account
	ManagerUserID  string      `json:"managerUserID"`  // optional commission payee
	PlanID         string      `json:"planID"`         // optional, drives commission rate

	CreditLimit   decimal.Decimal `json:"creditLimit"`
	UsedCredit    decimal.Decimal `json:"usedCredit"`
	BarterBalance decimal.Decimal `json:"barterBalance"`

	MonthlySalesCap     decimal.Decimal `json:"monthlySalesCap"`
	TotalSalesCap       decimal.Decimal `json:"totalSalesCap"`
	CompanySalesCap     decimal.Decimal `json:"companySalesCap"`
	MonthlySalesCurrent decimal.Decimal `json:"monthlySalesCurrent"`
	MonthlySalesMonth   time.Time       `json:"monthlySalesMonth"` // first day of the month the counter covers
	TotalSalesCurrent   decimal.Decimal `json:"totalSalesCurrent"`

	BillingCloseDay int `json:"billingCloseDay"` // 1-31
	BillingDueDay   int `json:"billingDueDay"`   // 1-31

	IsActive bool `json:"isActive"`
	AuditFields
}

// AvailableCredit is the undrawn remainder of the credit line.
func (a *Account) AvailableCredit() decimal.Decimal {
	return a.CreditLimit.Sub(a.UsedCredit)
}

// checkCreditInvariant enforces 0 <= UsedCredit <= CreditLimit. Every mutating
// ledger operation calls it before reporting success.
func (a *Account) checkCreditInvariant() error {
	if a.UsedCredit.IsNegative() || a.UsedCredit.GreaterThan(a.CreditLimit) {
		return fmt.Errorf("%w: account %s used credit %s outside [0, %s]",
			apperrors.ErrConflict, a.AccountID, a.UsedCredit, a.CreditLimit)
	}
	return nil
}

// DrawFunds debits amount from the account, draining the barter balance first
// and covering any remainder from available credit. The draw is all-or-nothing:
// if the two pools together cannot cover the amount the account is left
// untouched and ErrInsufficientFunds is returned. The returned trace records
// exactly what was drawn from each pool, in order.
func (a *Account) DrawFunds(amount decimal.Decimal) (FundsTrace, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: draw amount must be positive, got %s", apperrors.ErrValidation, amount)
	}
	if a.BarterBalance.Add(a.AvailableCredit()).LessThan(amount) {
		return nil, fmt.Errorf("%w: account %s has %s barter + %s credit available, needs %s",
			apperrors.ErrInsufficientFunds, a.AccountID, a.BarterBalance, a.AvailableCredit(), amount)
	}

	trace := FundsTrace{}

	fromBarter := decimal.Min(a.BarterBalance, amount)
	if fromBarter.IsNegative() {
		fromBarter = decimal.Zero
	}
	if fromBarter.IsPositive() {
		a.BarterBalance = a.BarterBalance.Sub(fromBarter)
		trace = append(trace, FundsDraw{Pool: PoolBarter, Amount: fromBarter})
	}

	fromCredit := amount.Sub(fromBarter)
	if fromCredit.IsPositive() {
		a.UsedCredit = a.UsedCredit.Add(fromCredit)
		trace = append(trace, FundsDraw{Pool: PoolCredit, Amount: fromCredit})
	}

	if err := a.checkCreditInvariant(); err != nil {
		return nil, err
	}
	return trace, nil
}

// CreditFunds adds amount to the barter balance. The seller side of a trade
// always receives barter currency, never credit-line headroom.
func (a *Account) CreditFunds(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: credit amount must be positive, got %s", apperrors.ErrValidation, amount)
	}
	a.BarterBalance = a.BarterBalance.Add(amount)
	return a.checkCreditInvariant()
}

// RestoreFunds is the exact inverse of DrawFunds for the given trace: each
// recorded per-pool draw is put back where it came from.
func (a *Account) RestoreFunds(trace FundsTrace) error {
	for _, d := range trace {
		switch d.Pool {
		case PoolBarter:
			a.BarterBalance = a.BarterBalance.Add(d.Amount)
		case PoolCredit:
			a.UsedCredit = a.UsedCredit.Sub(d.Amount)
		default:
			return fmt.Errorf("%w: unknown funds pool %q in trace for account %s",
				apperrors.ErrValidation, d.Pool, a.AccountID)
		}
	}
	return a.checkCreditInvariant()
}

// DebitFunds subtracts amount from the barter balance unconditionally. Used on
// reversal to claw back the seller's receipt; the balance may go negative.
func (a *Account) DebitFunds(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: debit amount must be positive, got %s", apperrors.ErrValidation, amount)
	}
	a.BarterBalance = a.BarterBalance.Sub(amount)
	return a.checkCreditInvariant()
}

// RaiseCreditLimit increases the credit line. There is no decrease operation.
func (a *Account) RaiseCreditLimit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: credit limit increase must be positive, got %s", apperrors.ErrValidation, amount)
	}
	a.CreditLimit = a.CreditLimit.Add(amount)
	return a.checkCreditInvariant()
}

// CheckSalesCaps reports whether registering a sale of amount would breach the
// company, total or monthly sales cap. A zero cap is treated as unlimited. The
// monthly counter must already cover the current period; RegisterSale rolls it.
func (a *Account) CheckSalesCaps(amount decimal.Decimal) error {
	next := a.TotalSalesCurrent.Add(amount)
	if a.CompanySalesCap.IsPositive() && next.GreaterThan(a.CompanySalesCap) {
		return fmt.Errorf("%w: company sales cap %s would be exceeded (current %s, sale %s)",
			apperrors.ErrCapExceeded, a.CompanySalesCap, a.TotalSalesCurrent, amount)
	}
	if a.TotalSalesCap.IsPositive() && next.GreaterThan(a.TotalSalesCap) {
		return fmt.Errorf("%w: total sales cap %s would be exceeded (current %s, sale %s)",
			apperrors.ErrCapExceeded, a.TotalSalesCap, a.TotalSalesCurrent, amount)
	}
	if a.MonthlySalesCap.IsPositive() && a.MonthlySalesCurrent.Add(amount).GreaterThan(a.MonthlySalesCap) {
		return fmt.Errorf("%w: monthly sales cap %s would be exceeded (current %s, sale %s)",
			apperrors.ErrCapExceeded, a.MonthlySalesCap, a.MonthlySalesCurrent, amount)
	}
	return nil
}

// rollMonthlySales resets the monthly counter when the calendar month turns.
func (a *Account) rollMonthlySales(now time.Time) {
	if a.MonthlySalesMonth.Year() == now.Year() && a.MonthlySalesMonth.Month() == now.Month() {
		return
	}
	a.MonthlySalesCurrent = decimal.Zero
	a.MonthlySalesMonth = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// RegisterSale bumps the running sales counters after a successful cap check.
// The monthly counter is rolled to the current period first.
func (a *Account) RegisterSale(amount decimal.Decimal, now time.Time) error {
	a.rollMonthlySales(now)
	if err := a.CheckSalesCaps(amount); err != nil {
		return err
	}
	a.MonthlySalesCurrent = a.MonthlySalesCurrent.Add(amount)
	a.TotalSalesCurrent = a.TotalSalesCurrent.Add(amount)
	return nil
}
