package domain

import "github.com/shopspring/decimal"

// FundsPool identifies which of an account's two value pools a draw came from.
type FundsPool string

const (
	PoolBarter FundsPool = "BARTER"
	PoolCredit FundsPool = "CREDIT"
)

// FundsDraw records a single debit against one pool.
type FundsDraw struct {
	Pool   FundsPool       `json:"pool"`
	Amount decimal.Decimal `json:"amount"`
}

// FundsTrace is the ordered record of which pools a trade drew from and by how
// much. It is persisted with the transaction and replayed in reverse order to
// undo the draw exactly.
type FundsTrace []FundsDraw

// Total returns the sum drawn across all pools.
func (t FundsTrace) Total() decimal.Decimal {
	total := decimal.Zero
	for _, d := range t {
		total = total.Add(d.Amount)
	}
	return total
}

// DrawnFrom returns the amount the trace drew from the given pool.
func (t FundsTrace) DrawnFrom(pool FundsPool) decimal.Decimal {
	sum := decimal.Zero
	for _, d := range t {
		if d.Pool == pool {
			sum = sum.Add(d.Amount)
		}
	}
	return sum
}
