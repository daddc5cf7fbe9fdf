package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
	portsrepo "github.com/MaxTecnology/rede-trade-back/internal/core/ports/repositories"
	"github.com/MaxTecnology/rede-trade-back/internal/models"
)

// PgxFundRepository implements the barter fund register using pgx.
type PgxFundRepository struct {
	BaseRepository
}

var _ portsrepo.FundRepository = (*PgxFundRepository)(nil)

func newPgxFundRepository(pool *pgxpool.Pool) *PgxFundRepository {
	return &PgxFundRepository{BaseRepository: BaseRepository{Pool: pool}}
}

const fundEntryColumns = `fund_entry_id, user_id, account_id, amount, reason,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxFundRepository) SaveFundEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.FundEntry) error {
	query := `
		INSERT INTO fund_entries (` + fundEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.Exec(ctx, query,
		entry.FundEntryID, entry.UserID, entry.AccountID, entry.Amount, entry.Reason,
		entry.CreatedAt, entry.CreatedBy, entry.LastUpdatedAt, entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save fund entry: %w", err)
	}
	return nil
}

func (r *PgxFundRepository) ListFundEntriesByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.FundEntry, error) {
	query := `
		SELECT ` + fundEntryColumns + `
		FROM fund_entries
		WHERE account_id = $1
		ORDER BY created_at DESC, fund_entry_id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.Pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list fund entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.FundEntry{}
	for rows.Next() {
		var m models.FundEntry
		if err := rows.Scan(
			&m.FundEntryID, &m.UserID, &m.AccountID, &m.Amount, &m.Reason,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan fund entry row: %w", err)
		}
		entries = append(entries, domain.FundEntry{
			FundEntryID: m.FundEntryID,
			UserID:      m.UserID,
			AccountID:   m.AccountID,
			Amount:      m.Amount,
			Reason:      m.Reason,
			AuditFields: domain.AuditFields{
				CreatedAt:     m.CreatedAt,
				CreatedBy:     m.CreatedBy,
				LastUpdatedAt: m.LastUpdatedAt,
				LastUpdatedBy: m.LastUpdatedBy,
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fund entry rows: %w", err)
	}
	return entries, nil
}

func (r *PgxFundRepository) SumFundEntriesByHeadquarters(ctx context.Context, headquartersID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(f.amount), 0)
		FROM fund_entries f
		JOIN accounts a ON a.account_id = f.account_id
		WHERE a.headquarters_id = $1`

	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, headquartersID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum fund entries: %w", err)
	}
	return total, nil
}

// PgxSequenceRepository hands out per-scope account numbering counters.
type PgxSequenceRepository struct {
	BaseRepository
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

func newPgxSequenceRepository(pool *pgxpool.Pool) *PgxSequenceRepository {
	return &PgxSequenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// NextValueInTx bumps the counter for scopeKey atomically. The upsert takes a
// row lock, so two concurrent account creations in the same scope serialize
// here and get distinct values.
func (r *PgxSequenceRepository) NextValueInTx(ctx context.Context, tx pgx.Tx, scopeKey string) (int64, error) {
	query := `
		INSERT INTO account_number_sequences (scope_key, value)
		VALUES ($1, 1)
		ON CONFLICT (scope_key) DO UPDATE SET value = account_number_sequences.value + 1
		RETURNING value`

	var value int64
	if err := tx.QueryRow(ctx, query, scopeKey).Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s: %w", scopeKey, err)
	}
	return value, nil
}
