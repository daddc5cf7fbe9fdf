package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
)

// ReportPeriodParams defines the from/to window of a report query.
type ReportPeriodParams struct {
	From time.Time `form:"from" time_format:"2006-01-02"`
	To   time.Time `form:"to" time_format:"2006-01-02"`
}

// TradeVolumeResponse wraps the monthly trade volume report.
type TradeVolumeResponse struct {
	Rows []domain.TradeVolumeRow `json:"rows"`
}

// ManagerCommissionResponse is the commission payable to one manager for a period.
type ManagerCommissionResponse struct {
	ManagerUserID  string          `json:"managerUserID"`
	TradeCount     int64           `json:"tradeCount"`
	CommissionBase decimal.Decimal `json:"commissionBase"`
	Rate           decimal.Decimal `json:"rate"` // percent
	Payable        decimal.Decimal `json:"payable"`
}

// ReceivablesResponse wraps the open receivables report of a headquarters.
type ReceivablesResponse struct {
	Rows  []domain.ReceivableRow `json:"rows"`
	Total decimal.Decimal        `json:"total"`
}

// ApprovedCreditResponse is the total credit issued over a period.
type ApprovedCreditResponse struct {
	HeadquartersID string          `json:"headquartersID"`
	Total          decimal.Decimal `json:"total"`
}
