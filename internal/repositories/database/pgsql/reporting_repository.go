package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
	portsrepo "github.com/MaxTecnology/rede-trade-back/internal/core/ports/repositories"
)

// PgxReportingRepository implements dashboard report queries using pgx.
type PgxReportingRepository struct {
	BaseRepository
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

func newPgxReportingRepository(pool *pgxpool.Pool) *PgxReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// GetTradeVolumeByMonth aggregates completed trades per calendar month.
// Reversed trades are excluded so the report reflects realized volume.
func (r *PgxReportingRepository) GetTradeVolumeByMonth(ctx context.Context, headquartersID *string, from, to time.Time) ([]domain.TradeVolumeRow, error) {
	query := `
		SELECT date_trunc('month', t.created_at) AS month,
			COUNT(*) AS trade_count,
			COALESCE(SUM(t.amount), 0) AS volume,
			COALESCE(SUM(t.commission_total), 0) AS commission
		FROM transactions t
		WHERE t.status <> $1 AND t.created_at >= $2 AND t.created_at < $3`
	args := []any{string(domain.TxReversed), from, to}

	if headquartersID != nil {
		query += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM accounts a
			WHERE a.account_id = t.buyer_account_id AND a.headquarters_id = $%d)`, len(args)+1)
		args = append(args, *headquartersID)
	}
	query += ` GROUP BY 1 ORDER BY 1`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade volume: %w", err)
	}
	defer rows.Close()

	result := []domain.TradeVolumeRow{}
	for rows.Next() {
		var row domain.TradeVolumeRow
		if err := rows.Scan(&row.Month, &row.TradeCount, &row.Volume, &row.Commission); err != nil {
			return nil, fmt.Errorf("failed to scan trade volume row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade volume rows: %w", err)
	}
	return result, nil
}

func (r *PgxReportingRepository) GetManagerCommissionBase(ctx context.Context, managerUserID string, from, to time.Time) (*domain.ManagerCommissionSummary, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(t.commission_total), 0)
		FROM transactions t
		JOIN accounts a ON a.account_id = t.buyer_account_id
		WHERE a.manager_user_id = $1 AND t.status <> $2
			AND t.created_at >= $3 AND t.created_at < $4`

	summary := domain.ManagerCommissionSummary{ManagerUserID: managerUserID}
	err := r.Pool.QueryRow(ctx, query, managerUserID, string(domain.TxReversed), from, to).
		Scan(&summary.TradeCount, &summary.CommissionBase)
	if err != nil {
		return nil, fmt.Errorf("failed to query manager commission base: %w", err)
	}
	return &summary, nil
}

func (r *PgxReportingRepository) GetOpenReceivables(ctx context.Context, headquartersID string) ([]domain.ReceivableRow, error) {
	query := `
		SELECT b.payer_account_id, a.account_number,
			COALESCE(SUM(b.amount_due), 0) AS open_amount,
			COUNT(*) AS open_count,
			MIN(b.due_date) AS oldest_due_date
		FROM billings b
		JOIN accounts a ON a.account_id = b.payer_account_id
		WHERE b.status = $1 AND a.headquarters_id = $2
		GROUP BY b.payer_account_id, a.account_number
		ORDER BY open_amount DESC`

	rows, err := r.Pool.Query(ctx, query, string(domain.BillingIssued), headquartersID)
	if err != nil {
		return nil, fmt.Errorf("failed to query open receivables: %w", err)
	}
	defer rows.Close()

	result := []domain.ReceivableRow{}
	for rows.Next() {
		var row domain.ReceivableRow
		if err := rows.Scan(&row.PayerAccountID, &row.AccountNumber, &row.OpenAmount, &row.OpenCount, &row.OldestDueDate); err != nil {
			return nil, fmt.Errorf("failed to scan receivable row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating receivable rows: %w", err)
	}
	return result, nil
}

// GetApprovedCreditTotal sums the credit limit raises granted over a period,
// read from the fund register so it matches what was actually applied.
func (r *PgxReportingRepository) GetApprovedCreditTotal(ctx context.Context, headquartersID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(f.amount), 0)
		FROM fund_entries f
		JOIN accounts a ON a.account_id = f.account_id
		WHERE f.reason = 'CREDIT_APPROVAL' AND a.headquarters_id = $1
			AND f.created_at >= $2 AND f.created_at < $3`

	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, headquartersID, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum approved credit: %w", err)
	}
	return total, nil
}
