package pgsql

import (
	"context"
	"database/sql"
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

// PgxAccountRepository implements account persistence using pgx.
type PgxAccountRepository struct {
	BaseRepository
}

var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

func toModelAccount(a domain.Account) models.Account {
	return models.Account{
		AccountID:           a.AccountID,
		OwnerUserID:         a.OwnerUserID,
		AccountNumber:       a.AccountNumber,
		AccountTypeID:       a.AccountTypeID,
		Tier:                string(a.Tier),
		HeadquartersID:      a.HeadquartersID,
		CreatorUserID:       a.CreatorUserID,
		ManagerUserID:       a.ManagerUserID,
		PlanID:              a.PlanID,
		CreditLimit:         a.CreditLimit,
		UsedCredit:          a.UsedCredit,
		BarterBalance:       a.BarterBalance,
		MonthlySalesCap:     a.MonthlySalesCap,
		TotalSalesCap:       a.TotalSalesCap,
		CompanySalesCap:     a.CompanySalesCap,
		MonthlySalesCurrent: a.MonthlySalesCurrent,
		MonthlySalesMonth:   a.MonthlySalesMonth,
		TotalSalesCurrent:   a.TotalSalesCurrent,
		BillingCloseDay:     a.BillingCloseDay,
		BillingDueDay:       a.BillingDueDay,
		IsActive:            a.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     a.CreatedAt,
			CreatedBy:     a.CreatedBy,
			LastUpdatedAt: a.LastUpdatedAt,
			LastUpdatedBy: a.LastUpdatedBy,
		},
	}
}

func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:           m.AccountID,
		OwnerUserID:         m.OwnerUserID,
		AccountNumber:       m.AccountNumber,
		AccountTypeID:       m.AccountTypeID,
		Tier:                domain.AccountTier(m.Tier),
		HeadquartersID:      m.HeadquartersID,
		CreatorUserID:       m.CreatorUserID,
		ManagerUserID:       m.ManagerUserID,
		PlanID:              m.PlanID,
		CreditLimit:         m.CreditLimit,
		UsedCredit:          m.UsedCredit,
		BarterBalance:       m.BarterBalance,
		MonthlySalesCap:     m.MonthlySalesCap,
		TotalSalesCap:       m.TotalSalesCap,
		CompanySalesCap:     m.CompanySalesCap,
		MonthlySalesCurrent: m.MonthlySalesCurrent,
		MonthlySalesMonth:   m.MonthlySalesMonth,
		TotalSalesCurrent:   m.TotalSalesCurrent,
		BillingCloseDay:     m.BillingCloseDay,
		BillingDueDay:       m.BillingDueDay,
		IsActive:            m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const accountColumns = `account_id, owner_user_id, account_number, account_type_id, tier,
	headquarters_id, creator_user_id, manager_user_id, plan_id,
	credit_limit, used_credit, barter_balance,
	monthly_sales_cap, total_sales_cap, company_sales_cap,
	monthly_sales_current, monthly_sales_month, total_sales_current,
	billing_close_day, billing_due_day, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	var managerUserID, planID sql.NullString
	err := row.Scan(
		&m.AccountID, &m.OwnerUserID, &m.AccountNumber, &m.AccountTypeID, &m.Tier,
		&m.HeadquartersID, &m.CreatorUserID, &managerUserID, &planID,
		&m.CreditLimit, &m.UsedCredit, &m.BarterBalance,
		&m.MonthlySalesCap, &m.TotalSalesCap, &m.CompanySalesCap,
		&m.MonthlySalesCurrent, &m.MonthlySalesMonth, &m.TotalSalesCurrent,
		&m.BillingCloseDay, &m.BillingDueDay, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return models.Account{}, err
	}
	m.ManagerUserID = managerUserID.String
	m.PlanID = planID.String
	return m, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// SaveAccountInTx persists a new account row inside the caller's transaction.
func (r *PgxAccountRepository) SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	m := toModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)`

	_, err := tx.Exec(ctx, query,
		m.AccountID, m.OwnerUserID, m.AccountNumber, m.AccountTypeID, m.Tier,
		m.HeadquartersID, m.CreatorUserID, nullString(m.ManagerUserID), nullString(m.PlanID),
		m.CreditLimit, m.UsedCredit, m.BarterBalance,
		m.MonthlySalesCap, m.TotalSalesCap, m.CompanySalesCap,
		m.MonthlySalesCurrent, m.MonthlySalesMonth, m.TotalSalesCurrent,
		m.BillingCloseDay, m.BillingDueDay, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("account %s: %w", account.AccountNumber, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by id: %w", err)
	}
	account := toDomainAccount(m)
	return &account, nil
}

func (r *PgxAccountRepository) FindAccountByOwnerUserID(ctx context.Context, ownerUserID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE owner_user_id = $1`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, ownerUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by owner: %w", err)
	}
	account := toDomainAccount(m)
	return &account, nil
}

func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by number: %w", err)
	}
	account := toDomainAccount(m)
	return &account, nil
}

func (r *PgxAccountRepository) ListAccountsByHeadquarters(ctx context.Context, headquartersID string, limit int, offset int) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE headquarters_id = $1
		ORDER BY account_number
		LIMIT $2 OFFSET $3`

	rows, err := r.Pool.Query(ctx, query, headquartersID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, toDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// FindAccountsByIDsForUpdate locks the given account rows for the duration of
// the transaction. Callers sort accountIDs before locking so concurrent trades
// acquire locks in a consistent order.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1) FOR UPDATE`

	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to select accounts for update: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accounts[m.AccountID] = toDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked account rows: %w", err)
	}
	if len(accounts) != len(accountIDs) {
		return nil, fmt.Errorf("%w: expected %d accounts, found %d", apperrors.ErrNotFound, len(accountIDs), len(accounts))
	}
	return accounts, nil
}

// UpdateAccountFundsInTx writes back the funds-bearing columns of the given
// accounts in one batch. Rows must already be locked by the caller.
func (r *PgxAccountRepository) UpdateAccountFundsInTx(ctx context.Context, tx pgx.Tx, accounts []domain.Account, userID string, now time.Time) error {
	if len(accounts) == 0 {
		return nil
	}
	query := `
		UPDATE accounts
		SET barter_balance = $2, used_credit = $3, credit_limit = $4,
			monthly_sales_current = $5, monthly_sales_month = $6, total_sales_current = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE account_id = $1`

	batch := &pgx.Batch{}
	for _, a := range accounts {
		batch.Queue(query, a.AccountID, a.BarterBalance, a.UsedCredit, a.CreditLimit,
			a.MonthlySalesCurrent, a.MonthlySalesMonth, a.TotalSalesCurrent, now, userID)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	for i := range accounts {
		tag, err := br.Exec()
		if err != nil {
			return fmt.Errorf("failed to update funds for account %s: %w", accounts[i].AccountID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: account %s vanished during funds update", apperrors.ErrNotFound, accounts[i].AccountID)
		}
	}
	return nil
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := toModelAccount(account)
	query := `
		UPDATE accounts
		SET manager_user_id = $2, plan_id = $3,
			monthly_sales_cap = $4, total_sales_cap = $5, company_sales_cap = $6,
			billing_close_day = $7, billing_due_day = $8, is_active = $9,
			last_updated_at = $10, last_updated_by = $11
		WHERE account_id = $1`

	tag, err := r.Pool.Exec(ctx, query,
		m.AccountID, nullString(m.ManagerUserID), nullString(m.PlanID),
		m.MonthlySalesCap, m.TotalSalesCap, m.CompanySalesCap,
		m.BillingCloseDay, m.BillingDueDay, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1`

	tag, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
