package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
	portsrepo "github.com/MaxTecnology/rede-trade-back/internal/core/ports/repositories"
	portssvc "github.com/MaxTecnology/rede-trade-back/internal/core/ports/services"
	"github.com/MaxTecnology/rede-trade-back/internal/dto"
)

// reportingService produces the dashboard reports.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	userRepo      portsrepo.UserReader
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, userRepo portsrepo.UserReader) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: reportingRepo,
		userRepo:      userRepo,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// normalizePeriod fills in an open-ended period: a zero from means the epoch,
// a zero to means now.
func normalizePeriod(from, to time.Time) (time.Time, time.Time) {
	if to.IsZero() {
		to = time.Now().UTC()
	}
	return from, to
}

// GetTradeVolume aggregates completed trades per month for a period.
func (s *reportingService) GetTradeVolume(ctx context.Context, headquartersID *string, from, to time.Time) ([]domain.TradeVolumeRow, error) {
	from, to = normalizePeriod(from, to)
	rows, err := s.reportingRepo.GetTradeVolumeByMonth(ctx, headquartersID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate trade volume: %w", err)
	}
	return rows, nil
}

// GetManagerCommission computes the commission payable to a manager for a
// period: the commission base of their managed accounts' trades times the
// manager's own rate.
func (s *reportingService) GetManagerCommission(ctx context.Context, managerUserID string, from, to time.Time) (*dto.ManagerCommissionResponse, error) {
	from, to = normalizePeriod(from, to)

	manager, err := s.userRepo.FindUserByID(ctx, managerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find manager %s: %w", managerUserID, err)
	}

	summary, err := s.reportingRepo.GetManagerCommissionBase(ctx, managerUserID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate manager commission: %w", err)
	}

	payable := summary.CommissionBase.Mul(manager.ManagerCommissionRate).Div(decimal.NewFromInt(100)).Round(2)
	return &dto.ManagerCommissionResponse{
		ManagerUserID:  managerUserID,
		TradeCount:     summary.TradeCount,
		CommissionBase: summary.CommissionBase,
		Rate:           manager.ManagerCommissionRate,
		Payable:        payable,
	}, nil
}

// GetOpenReceivables lists open billing totals per payer under a headquarters.
func (s *reportingService) GetOpenReceivables(ctx context.Context, headquartersID string) (*dto.ReceivablesResponse, error) {
	rows, err := s.reportingRepo.GetOpenReceivables(ctx, headquartersID)
	if err != nil {
		return nil, fmt.Errorf("failed to list open receivables: %w", err)
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.OpenAmount)
	}
	return &dto.ReceivablesResponse{Rows: rows, Total: total}, nil
}

// GetApprovedCreditTotal sums credit limit raises granted over a period.
func (s *reportingService) GetApprovedCreditTotal(ctx context.Context, headquartersID string, from, to time.Time) (*dto.ApprovedCreditResponse, error) {
	from, to = normalizePeriod(from, to)
	total, err := s.reportingRepo.GetApprovedCreditTotal(ctx, headquartersID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to sum approved credit: %w", err)
	}
	return &dto.ApprovedCreditResponse{HeadquartersID: headquartersID, Total: total}, nil
}
