package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeVolumeRow is one month's aggregate of completed trades.
type TradeVolumeRow struct {
	Month      time.Time       `json:"month"`
	TradeCount int64           `json:"tradeCount"`
	Volume     decimal.Decimal `json:"volume"`
	Commission decimal.Decimal `json:"commission"`
}

// ManagerCommissionSummary aggregates the commission base generated by trades
// whose buyers are managed by a given manager over a period. The payable
// amount is the base multiplied by the manager's own rate.
type ManagerCommissionSummary struct {
	ManagerUserID  string          `json:"managerUserID"`
	TradeCount     int64           `json:"tradeCount"`
	CommissionBase decimal.Decimal `json:"commissionBase"`
}

// ReceivableRow summarizes the open (issued, unpaid) billings of one payer.
type ReceivableRow struct {
	PayerAccountID string          `json:"payerAccountID"`
	AccountNumber  string          `json:"accountNumber"`
	OpenAmount     decimal.Decimal `json:"openAmount"`
	OpenCount      int64           `json:"openCount"`
	OldestDueDate  time.Time       `json:"oldestDueDate"`
}
