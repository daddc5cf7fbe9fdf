package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MaxTecnology/rede-trade-back/internal/apperrors"
	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
	portsrepo "github.com/MaxTecnology/rede-trade-back/internal/core/ports/repositories"
	"github.com/MaxTecnology/rede-trade-back/internal/models"
)

// PgxVoucherRepository implements voucher persistence using pgx.
type PgxVoucherRepository struct {
	BaseRepository
}

var _ portsrepo.VoucherRepositoryFacade = (*PgxVoucherRepository)(nil)

func newPgxVoucherRepository(pool *pgxpool.Pool) *PgxVoucherRepository {
	return &PgxVoucherRepository{BaseRepository: BaseRepository{Pool: pool}}
}

func toDomainVoucher(m models.Voucher) domain.Voucher {
	return domain.Voucher{
		VoucherID:     m.VoucherID,
		TransactionID: m.TransactionID,
		Code:          m.Code,
		Status:        domain.VoucherStatus(m.Status),
		CancelledAt:   m.CancelledAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const voucherColumns = `voucher_id, transaction_id, code, status, cancelled_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanVoucher(row pgx.Row) (models.Voucher, error) {
	var m models.Voucher
	err := row.Scan(
		&m.VoucherID, &m.TransactionID, &m.Code, &m.Status, &m.CancelledAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxVoucherRepository) SaveVoucherInTx(ctx context.Context, tx pgx.Tx, voucher domain.Voucher) error {
	query := `
		INSERT INTO vouchers (` + voucherColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.Exec(ctx, query,
		voucher.VoucherID, voucher.TransactionID, voucher.Code, string(voucher.Status), voucher.CancelledAt,
		voucher.CreatedAt, voucher.CreatedBy, voucher.LastUpdatedAt, voucher.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("voucher code %s: %w", voucher.Code, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save voucher: %w", err)
	}
	return nil
}

func (r *PgxVoucherRepository) FindVoucherByCode(ctx context.Context, code string) (*domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE code = $1`
	m, err := scanVoucher(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find voucher by code: %w", err)
	}
	voucher := toDomainVoucher(m)
	return &voucher, nil
}

func (r *PgxVoucherRepository) FindVouchersByTransactionID(ctx context.Context, transactionID string) ([]domain.Voucher, error) {
	query := `
		SELECT ` + voucherColumns + `
		FROM vouchers
		WHERE transaction_id = $1
		ORDER BY created_at`

	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find vouchers by transaction: %w", err)
	}
	defer rows.Close()

	vouchers := []domain.Voucher{}
	for rows.Next() {
		m, err := scanVoucher(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan voucher row: %w", err)
		}
		vouchers = append(vouchers, toDomainVoucher(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating voucher rows: %w", err)
	}
	return vouchers, nil
}

func (r *PgxVoucherRepository) RedeemVoucher(ctx context.Context, voucherID string, userID string, now time.Time) error {
	query := `
		UPDATE vouchers
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE voucher_id = $1 AND status = $5`

	tag, err := r.Pool.Exec(ctx, query, voucherID, string(domain.VoucherRedeemed), now, userID, string(domain.VoucherActive))
	if err != nil {
		return fmt.Errorf("failed to redeem voucher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("voucher %s not found or not active: %w", voucherID, apperrors.ErrInvalidStateTransition)
	}
	return nil
}

func (r *PgxVoucherRepository) CancelVouchersByTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string, userID string, now time.Time) error {
	query := `
		UPDATE vouchers
		SET status = $2, cancelled_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1 AND status = $5`

	_, err := tx.Exec(ctx, query, transactionID, string(domain.VoucherCancelled), now, userID, string(domain.VoucherActive))
	if err != nil {
		return fmt.Errorf("failed to cancel vouchers for transaction %s: %w", transactionID, err)
	}
	return nil
}
