package pgsql

import (
	"context"
	"database/sql"
	"encoding/json"
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
	"github.com/MaxTecnology/rede-trade-back/internal/utils/pagination"
)

// PgxTransactionRepository implements trade transaction persistence using pgx.
type PgxTransactionRepository struct {
	BaseRepository
}

var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

func toModelTransaction(t domain.Transaction) (models.Transaction, error) {
	fundsUsed, err := json.Marshal(t.FundsUsed)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("failed to marshal funds trace: %w", err)
	}
	return models.Transaction{
		TransactionID:            t.TransactionID,
		Code:                     t.Code,
		BuyerAccountID:           t.BuyerAccountID,
		SellerAccountID:          t.SellerAccountID,
		BuyerUserID:              t.BuyerUserID,
		SellerUserID:             t.SellerUserID,
		BuyerSubAccountID:        t.BuyerSubAccountID,
		SellerSubAccountID:       t.SellerSubAccountID,
		Amount:                   t.Amount,
		Description:              t.Description,
		OfferID:                  t.OfferID,
		BuyerBarterBefore:        t.BuyerBarterBefore,
		BuyerBarterAfter:         t.BuyerBarterAfter,
		BuyerCreditBefore:        t.BuyerCreditBefore,
		BuyerCreditAfter:         t.BuyerCreditAfter,
		SellerBarterAfter:        t.SellerBarterAfter,
		FundsUsed:                fundsUsed,
		CommissionTotal:          t.CommissionTotal,
		CommissionPerInstallment: t.CommissionPerInstallment,
		InstallmentCount:         t.InstallmentCount,
		Status:                   string(t.Status),
		ReversedAt:               t.ReversedAt,
		AuditFields: models.AuditFields{
			CreatedAt:     t.CreatedAt,
			CreatedBy:     t.CreatedBy,
			LastUpdatedAt: t.LastUpdatedAt,
			LastUpdatedBy: t.LastUpdatedBy,
		},
	}, nil
}

func toDomainTransaction(m models.Transaction) (domain.Transaction, error) {
	var trace domain.FundsTrace
	if len(m.FundsUsed) > 0 {
		if err := json.Unmarshal(m.FundsUsed, &trace); err != nil {
			return domain.Transaction{}, fmt.Errorf("failed to unmarshal funds trace for transaction %s: %w", m.TransactionID, err)
		}
	}
	return domain.Transaction{
		TransactionID:            m.TransactionID,
		Code:                     m.Code,
		BuyerAccountID:           m.BuyerAccountID,
		SellerAccountID:          m.SellerAccountID,
		BuyerUserID:              m.BuyerUserID,
		SellerUserID:             m.SellerUserID,
		BuyerSubAccountID:        m.BuyerSubAccountID,
		SellerSubAccountID:       m.SellerSubAccountID,
		Amount:                   m.Amount,
		Description:              m.Description,
		OfferID:                  m.OfferID,
		BuyerBarterBefore:        m.BuyerBarterBefore,
		BuyerBarterAfter:         m.BuyerBarterAfter,
		BuyerCreditBefore:        m.BuyerCreditBefore,
		BuyerCreditAfter:         m.BuyerCreditAfter,
		SellerBarterAfter:        m.SellerBarterAfter,
		FundsUsed:                trace,
		CommissionTotal:          m.CommissionTotal,
		CommissionPerInstallment: m.CommissionPerInstallment,
		InstallmentCount:         m.InstallmentCount,
		Status:                   domain.TransactionStatus(m.Status),
		ReversedAt:               m.ReversedAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}

const transactionColumns = `transaction_id, code, buyer_account_id, seller_account_id,
	buyer_user_id, seller_user_id, buyer_sub_account_id, seller_sub_account_id,
	amount, description, offer_id,
	buyer_barter_before, buyer_barter_after, buyer_credit_before, buyer_credit_after,
	seller_barter_after, funds_used,
	commission_total, commission_per_installment, installment_count,
	status, reversed_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	var buyerSubID, sellerSubID, offerID sql.NullString
	err := row.Scan(
		&m.TransactionID, &m.Code, &m.BuyerAccountID, &m.SellerAccountID,
		&m.BuyerUserID, &m.SellerUserID, &buyerSubID, &sellerSubID,
		&m.Amount, &m.Description, &offerID,
		&m.BuyerBarterBefore, &m.BuyerBarterAfter, &m.BuyerCreditBefore, &m.BuyerCreditAfter,
		&m.SellerBarterAfter, &m.FundsUsed,
		&m.CommissionTotal, &m.CommissionPerInstallment, &m.InstallmentCount,
		&m.Status, &m.ReversedAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return models.Transaction{}, err
	}
	m.BuyerSubAccountID = buyerSubID.String
	m.SellerSubAccountID = sellerSubID.String
	m.OfferID = offerID.String
	return m, nil
}

// SaveTransactionInTx persists a new trade row inside the caller's transaction.
func (r *PgxTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m, err := toModelTransaction(txn)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)`

	_, err = tx.Exec(ctx, query,
		m.TransactionID, m.Code, m.BuyerAccountID, m.SellerAccountID,
		m.BuyerUserID, m.SellerUserID, nullString(m.BuyerSubAccountID), nullString(m.SellerSubAccountID),
		m.Amount, m.Description, nullString(m.OfferID),
		m.BuyerBarterBefore, m.BuyerBarterAfter, m.BuyerCreditBefore, m.BuyerCreditAfter,
		m.SellerBarterAfter, m.FundsUsed,
		m.CommissionTotal, m.CommissionPerInstallment, m.InstallmentCount,
		m.Status, m.ReversedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("transaction code %s: %w", txn.Code, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by id: %w", err)
	}
	txn, err := toDomainTransaction(m)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *PgxTransactionRepository) FindTransactionByCode(ctx context.Context, code string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE code = $1`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by code: %w", err)
	}
	txn, err := toDomainTransaction(m)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// FindTransactionByIDForUpdate locks the transaction row for the duration of
// the caller's database transaction. Reversal uses this so concurrent reversal
// attempts serialize on the row.
func (r *PgxTransactionRepository) FindTransactionByIDForUpdate(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1 FOR UPDATE`
	m, err := scanTransaction(tx.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to select transaction for update: %w", err)
	}
	txn, err := toDomainTransaction(m)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *PgxTransactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE (buyer_account_id = $1 OR seller_account_id = $1)`
	args := []any{accountID}

	query, args, err := appendCursorClause(query, args, nextToken)
	if err != nil {
		return nil, nil, err
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, transaction_id DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit+1)

	return r.listTransactions(ctx, query, args, limit)
}

func (r *PgxTransactionRepository) ListTransactionsByStatus(ctx context.Context, status domain.TransactionStatus, headquartersID *string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions t
		WHERE t.status = $1`
	args := []any{string(status)}

	if headquartersID != nil {
		query += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM accounts a
			WHERE a.account_id = t.buyer_account_id AND a.headquarters_id = $%d)`, len(args)+1)
		args = append(args, *headquartersID)
	}

	query, args, err := appendCursorClause(query, args, nextToken)
	if err != nil {
		return nil, nil, err
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, transaction_id DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit+1)

	return r.listTransactions(ctx, query, args, limit)
}

// appendCursorClause adds the keyset predicate for token-based pagination.
func appendCursorClause(query string, args []any, nextToken *string) (string, []any, error) {
	if nextToken == nil || *nextToken == "" {
		return query, args, nil
	}
	cursorTime, cursorID, err := pagination.DecodeCursor(*nextToken)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}
	query += fmt.Sprintf(` AND (created_at, transaction_id) < ($%d, $%d)`, len(args)+1, len(args)+2)
	args = append(args, cursorTime, cursorID)
	return query, args, nil
}

func (r *PgxTransactionRepository) listTransactions(ctx context.Context, query string, args []any, limit int) ([]domain.Transaction, *string, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txn, err := toDomainTransaction(m)
		if err != nil {
			return nil, nil, err
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	var token *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		t := pagination.EncodeCursor(last.CreatedAt, last.TransactionID)
		token = &t
	}
	return txns, token, nil
}

// UpdateTransactionStatus is a compare-and-set on the workflow status: the
// expected status rides in the predicate so a row decided by a concurrent
// actor matches zero rows instead of being overwritten.
func (r *PgxTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, from domain.TransactionStatus, to domain.TransactionStatus, userID string, now time.Time) error {
	query := `
		UPDATE transactions
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1 AND status = $5`

	tag, err := r.Pool.Exec(ctx, query, transactionID, string(to), now, userID, string(from))
	if err != nil {
		return fmt.Errorf("failed to update transaction status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s is no longer %s",
			apperrors.ErrInvalidStateTransition, transactionID, from)
	}
	return nil
}

func (r *PgxTransactionRepository) MarkTransactionReversedInTx(ctx context.Context, tx pgx.Tx, transactionID string, reversedAt time.Time, userID string) error {
	query := `
		UPDATE transactions
		SET status = $2, reversed_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1`

	tag, err := tx.Exec(ctx, query, transactionID, string(domain.TxReversed), reversedAt, userID)
	if err != nil {
		return fmt.Errorf("failed to mark transaction reversed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
