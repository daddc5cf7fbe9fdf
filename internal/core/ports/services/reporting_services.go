package services

import (
	"context"
	"time"

	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
	"github.com/MaxTecnology/rede-trade-back/internal/dto"
)

// ReportingService produces the dashboard reports.
type ReportingService interface {
	// GetTradeVolume aggregates completed trades per month for a period.
	GetTradeVolume(ctx context.Context, headquartersID *string, from, to time.Time) ([]domain.TradeVolumeRow, error)

	// GetManagerCommission computes the commission payable to a manager for a
	// period by applying the manager's rate to the commission base.
	GetManagerCommission(ctx context.Context, managerUserID string, from, to time.Time) (*dto.ManagerCommissionResponse, error)

	// GetOpenReceivables lists open billing totals per payer under a headquarters.
	GetOpenReceivables(ctx context.Context, headquartersID string) (*dto.ReceivablesResponse, error)

	// GetApprovedCreditTotal sums credit limit raises granted over a period.
	GetApprovedCreditTotal(ctx context.Context, headquartersID string, from, to time.Time) (*dto.ApprovedCreditResponse, error)
}
