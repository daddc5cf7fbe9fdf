package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MaxTecnology/rede-trade-back/internal/apperrors"
	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
	portsrepo "github.com/MaxTecnology/rede-trade-back/internal/core/ports/repositories"
	"github.com/MaxTecnology/rede-trade-back/internal/models"
	"github.com/MaxTecnology/rede-trade-back/internal/utils/pagination"
)

// PgxBillingRepository implements billing persistence using pgx.
type PgxBillingRepository struct {
	BaseRepository
}

var _ portsrepo.BillingRepositoryFacade = (*PgxBillingRepository)(nil)

func newPgxBillingRepository(pool *pgxpool.Pool) *PgxBillingRepository {
	return &PgxBillingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

func toModelBilling(b domain.Billing) models.Billing {
	return models.Billing{
		BillingID:      b.BillingID,
		TransactionID:  b.TransactionID,
		PayerAccountID: b.PayerAccountID,
		PayerUserID:    b.PayerUserID,
		ManagerUserID:  b.ManagerUserID,
		Reference:      b.Reference,
		AmountDue:      b.AmountDue,
		DueDate:        b.DueDate,
		Status:         string(b.Status),
		AuditFields: models.AuditFields{
			CreatedAt:     b.CreatedAt,
			CreatedBy:     b.CreatedBy,
			LastUpdatedAt: b.LastUpdatedAt,
			LastUpdatedBy: b.LastUpdatedBy,
		},
	}
}

func toDomainBilling(m models.Billing) domain.Billing {
	return domain.Billing{
		BillingID:      m.BillingID,
		TransactionID:  m.TransactionID,
		PayerAccountID: m.PayerAccountID,
		PayerUserID:    m.PayerUserID,
		ManagerUserID:  m.ManagerUserID,
		Reference:      m.Reference,
		AmountDue:      m.AmountDue,
		DueDate:        m.DueDate,
		Status:         domain.BillingStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const billingColumns = `billing_id, transaction_id, payer_account_id, payer_user_id,
	manager_user_id, reference, amount_due, due_date, status,
	created_at, created_by, last_updated_at, last_updated_by`

func scanBilling(row pgx.Row) (models.Billing, error) {
	var m models.Billing
	var managerUserID sql.NullString
	err := row.Scan(
		&m.BillingID, &m.TransactionID, &m.PayerAccountID, &m.PayerUserID,
		&managerUserID, &m.Reference, &m.AmountDue, &m.DueDate, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return models.Billing{}, err
	}
	m.ManagerUserID = managerUserID.String
	return m, nil
}

// SaveBillingsInTx persists all installments of a trade in one batch, inside
// the caller's transaction.
func (r *PgxBillingRepository) SaveBillingsInTx(ctx context.Context, tx pgx.Tx, billings []domain.Billing) error {
	if len(billings) == 0 {
		return nil
	}
	query := `
		INSERT INTO billings (` + billingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	batch := &pgx.Batch{}
	for _, b := range billings {
		m := toModelBilling(b)
		batch.Queue(query,
			m.BillingID, m.TransactionID, m.PayerAccountID, m.PayerUserID,
			nullString(m.ManagerUserID), m.Reference, m.AmountDue, m.DueDate, m.Status,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	for i := range billings {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to save billing %s: %w", billings[i].BillingID, err)
		}
	}
	return nil
}

func (r *PgxBillingRepository) FindBillingByID(ctx context.Context, billingID string) (*domain.Billing, error) {
	query := `SELECT ` + billingColumns + ` FROM billings WHERE billing_id = $1`
	m, err := scanBilling(r.Pool.QueryRow(ctx, query, billingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find billing by id: %w", err)
	}
	billing := toDomainBilling(m)
	return &billing, nil
}

func (r *PgxBillingRepository) FindBillingsByTransactionID(ctx context.Context, transactionID string) ([]domain.Billing, error) {
	query := `
		SELECT ` + billingColumns + `
		FROM billings
		WHERE transaction_id = $1
		ORDER BY due_date, reference`

	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find billings by transaction: %w", err)
	}
	defer rows.Close()

	billings := []domain.Billing{}
	for rows.Next() {
		m, err := scanBilling(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan billing row: %w", err)
		}
		billings = append(billings, toDomainBilling(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating billing rows: %w", err)
	}
	return billings, nil
}

func (r *PgxBillingRepository) ListBillingsByPayer(ctx context.Context, payerAccountID string, limit int, nextToken *string) ([]domain.Billing, *string, error) {
	query := `
		SELECT ` + billingColumns + `
		FROM billings
		WHERE payer_account_id = $1`
	args := []any{payerAccountID}

	if nextToken != nil && *nextToken != "" {
		cursorTime, cursorID, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
		query += fmt.Sprintf(` AND (created_at, billing_id) < ($%d, $%d)`, len(args)+1, len(args)+2)
		args = append(args, cursorTime, cursorID)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, billing_id DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list billings: %w", err)
	}
	defer rows.Close()

	billings := []domain.Billing{}
	for rows.Next() {
		m, err := scanBilling(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan billing row: %w", err)
		}
		billings = append(billings, toDomainBilling(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating billing rows: %w", err)
	}

	var token *string
	if len(billings) > limit {
		billings = billings[:limit]
		last := billings[len(billings)-1]
		t := pagination.EncodeCursor(last.CreatedAt, last.BillingID)
		token = &t
	}
	return billings, token, nil
}

func (r *PgxBillingRepository) SettleBilling(ctx context.Context, billingID string, userID string, now time.Time) error {
	query := `
		UPDATE billings
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE billing_id = $1 AND status = $5`

	tag, err := r.Pool.Exec(ctx, query, billingID, string(domain.BillingSettled), now, userID, string(domain.BillingIssued))
	if err != nil {
		return fmt.Errorf("failed to settle billing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("billing %s not found or not issued: %w", billingID, apperrors.ErrInvalidStateTransition)
	}
	return nil
}

// CancelBillingsByTransactionInTx cancels the open installments of a reversed
// trade. Settled installments stay settled.
func (r *PgxBillingRepository) CancelBillingsByTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string, userID string, now time.Time) error {
	query := `
		UPDATE billings
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1 AND status = $5`

	_, err := tx.Exec(ctx, query, transactionID, string(domain.BillingCancelled), now, userID, string(domain.BillingIssued))
	if err != nil {
		return fmt.Errorf("failed to cancel billings for transaction %s: %w", transactionID, err)
	}
	return nil
}
