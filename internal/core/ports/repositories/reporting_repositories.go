package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
)

// ReportingRepository defines operations for retrieving dashboard report data
type ReportingRepository interface {
	// GetTradeVolumeByMonth aggregates completed trades per calendar month.
	// headquartersID scopes the report to one network when non-nil.
	GetTradeVolumeByMonth(ctx context.Context, headquartersID *string, from, to time.Time) ([]domain.TradeVolumeRow, error)

	// GetManagerCommissionBase sums the commission generated by trades whose
	// buyer accounts are managed by the given manager over a period.
	GetManagerCommissionBase(ctx context.Context, managerUserID string, from, to time.Time) (*domain.ManagerCommissionSummary, error)

	// GetOpenReceivables lists open billing totals per payer under a headquarters.
	GetOpenReceivables(ctx context.Context, headquartersID string) ([]domain.ReceivableRow, error)

	// GetApprovedCreditTotal sums credit limit raises granted over a period.
	GetApprovedCreditTotal(ctx context.Context, headquartersID string, from, to time.Time) (decimal.Decimal, error)
}
