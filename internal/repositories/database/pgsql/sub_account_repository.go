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

// PgxSubAccountRepository implements sub-account persistence using pgx.
type PgxSubAccountRepository struct {
	BaseRepository
}

var _ portsrepo.SubAccountRepository = (*PgxSubAccountRepository)(nil)

func newPgxSubAccountRepository(pool *pgxpool.Pool) *PgxSubAccountRepository {
	return &PgxSubAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

func toDomainSubAccount(m models.SubAccount) domain.SubAccount {
	return domain.SubAccount{
		SubAccountID:    m.SubAccountID,
		ParentAccountID: m.ParentAccountID,
		UserID:          m.UserID,
		Name:            m.Name,
		IsActive:        m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const subAccountColumns = `sub_account_id, parent_account_id, user_id, name, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanSubAccount(row pgx.Row) (models.SubAccount, error) {
	var m models.SubAccount
	err := row.Scan(
		&m.SubAccountID, &m.ParentAccountID, &m.UserID, &m.Name, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxSubAccountRepository) SaveSubAccount(ctx context.Context, sub domain.SubAccount) error {
	query := `
		INSERT INTO sub_accounts (` + subAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.Pool.Exec(ctx, query,
		sub.SubAccountID, sub.ParentAccountID, sub.UserID, sub.Name, sub.IsActive,
		sub.CreatedAt, sub.CreatedBy, sub.LastUpdatedAt, sub.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("sub-account %s: %w", sub.SubAccountID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save sub-account: %w", err)
	}
	return nil
}

func (r *PgxSubAccountRepository) FindSubAccountByID(ctx context.Context, subAccountID string) (*domain.SubAccount, error) {
	query := `SELECT ` + subAccountColumns + ` FROM sub_accounts WHERE sub_account_id = $1`
	m, err := scanSubAccount(r.Pool.QueryRow(ctx, query, subAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sub-account by id: %w", err)
	}
	sub := toDomainSubAccount(m)
	return &sub, nil
}

func (r *PgxSubAccountRepository) ListSubAccountsByParent(ctx context.Context, parentAccountID string) ([]domain.SubAccount, error) {
	query := `
		SELECT ` + subAccountColumns + `
		FROM sub_accounts
		WHERE parent_account_id = $1
		ORDER BY created_at, sub_account_id`

	rows, err := r.Pool.Query(ctx, query, parentAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sub-accounts: %w", err)
	}
	defer rows.Close()

	subs := []domain.SubAccount{}
	for rows.Next() {
		m, err := scanSubAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sub-account row: %w", err)
		}
		subs = append(subs, toDomainSubAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sub-account rows: %w", err)
	}
	return subs, nil
}

func (r *PgxSubAccountRepository) DeactivateSubAccount(ctx context.Context, subAccountID string, userID string, now time.Time) error {
	query := `
		UPDATE sub_accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE sub_account_id = $1`

	tag, err := r.Pool.Exec(ctx, query, subAccountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate sub-account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
