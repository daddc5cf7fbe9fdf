package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MaxTecnology/rede-trade-back/internal/apperrors"
	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
	portsrepo "github.com/MaxTecnology/rede-trade-back/internal/core/ports/repositories"
	"github.com/MaxTecnology/rede-trade-back/internal/models"
)

// PgxPlanRepository implements commission plan persistence using pgx.
type PgxPlanRepository struct {
	BaseRepository
}

var _ portsrepo.PlanRepository = (*PgxPlanRepository)(nil)

func newPgxPlanRepository(pool *pgxpool.Pool) *PgxPlanRepository {
	return &PgxPlanRepository{BaseRepository: BaseRepository{Pool: pool}}
}

func toDomainPlan(m models.Plan) domain.Plan {
	return domain.Plan{
		PlanID:         m.PlanID,
		Name:           m.Name,
		CommissionRate: m.CommissionRate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const planColumns = `plan_id, name, commission_rate, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxPlanRepository) SavePlan(ctx context.Context, plan domain.Plan) error {
	query := `
		INSERT INTO plans (` + planColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.Pool.Exec(ctx, query,
		plan.PlanID, plan.Name, plan.CommissionRate,
		plan.CreatedAt, plan.CreatedBy, plan.LastUpdatedAt, plan.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("plan %s: %w", plan.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save plan: %w", err)
	}
	return nil
}

func (r *PgxPlanRepository) FindPlanByID(ctx context.Context, planID string) (*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE plan_id = $1`
	var m models.Plan
	err := r.Pool.QueryRow(ctx, query, planID).Scan(
		&m.PlanID, &m.Name, &m.CommissionRate,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find plan by id: %w", err)
	}
	plan := toDomainPlan(m)
	return &plan, nil
}

func (r *PgxPlanRepository) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans ORDER BY name`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	plans := []domain.Plan{}
	for rows.Next() {
		var m models.Plan
		if err := rows.Scan(
			&m.PlanID, &m.Name, &m.CommissionRate,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan plan row: %w", err)
		}
		plans = append(plans, toDomainPlan(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plan rows: %w", err)
	}
	return plans, nil
}

// PgxAccountTypeRepository implements the account type catalog using pgx.
type PgxAccountTypeRepository struct {
	BaseRepository
}

var _ portsrepo.AccountTypeRepository = (*PgxAccountTypeRepository)(nil)

func newPgxAccountTypeRepository(pool *pgxpool.Pool) *PgxAccountTypeRepository {
	return &PgxAccountTypeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

const accountTypeColumns = `account_type_id, name, tier, number_prefix`

func (r *PgxAccountTypeRepository) SaveAccountType(ctx context.Context, accountType domain.AccountType) error {
	query := `
		INSERT INTO account_types (` + accountTypeColumns + `)
		VALUES ($1, $2, $3, $4)`

	_, err := r.Pool.Exec(ctx, query,
		accountType.AccountTypeID, accountType.Name, string(accountType.Tier), accountType.NumberPrefix,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("account type %s: %w", accountType.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save account type: %w", err)
	}
	return nil
}

func (r *PgxAccountTypeRepository) FindAccountTypeByID(ctx context.Context, accountTypeID string) (*domain.AccountType, error) {
	query := `SELECT ` + accountTypeColumns + ` FROM account_types WHERE account_type_id = $1`
	var m models.AccountType
	err := r.Pool.QueryRow(ctx, query, accountTypeID).Scan(
		&m.AccountTypeID, &m.Name, &m.Tier, &m.NumberPrefix,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account type by id: %w", err)
	}
	return &domain.AccountType{
		AccountTypeID: m.AccountTypeID,
		Name:          m.Name,
		Tier:          domain.AccountTier(m.Tier),
		NumberPrefix:  m.NumberPrefix,
	}, nil
}

func (r *PgxAccountTypeRepository) ListAccountTypes(ctx context.Context) ([]domain.AccountType, error) {
	query := `SELECT ` + accountTypeColumns + ` FROM account_types ORDER BY tier, name`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list account types: %w", err)
	}
	defer rows.Close()

	types := []domain.AccountType{}
	for rows.Next() {
		var m models.AccountType
		if err := rows.Scan(&m.AccountTypeID, &m.Name, &m.Tier, &m.NumberPrefix); err != nil {
			return nil, fmt.Errorf("failed to scan account type row: %w", err)
		}
		types = append(types, domain.AccountType{
			AccountTypeID: m.AccountTypeID,
			Name:          m.Name,
			Tier:          domain.AccountTier(m.Tier),
			NumberPrefix:  m.NumberPrefix,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account type rows: %w", err)
	}
	return types, nil
}
