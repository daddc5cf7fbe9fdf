package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByOwnerUserID retrieves the account owned by a given user.
	FindAccountByOwnerUserID(ctx context.Context, ownerUserID string) (*domain.Account, error)

	// FindAccountByNumber retrieves an account by its network-visible number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// ListAccountsByHeadquarters retrieves a paginated list of accounts under a headquarters.
	ListAccountsByHeadquarters(ctx context.Context, headquartersID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountTransactionSupport defines operations that participate in database transactions
type AccountTransactionSupport interface {
	// SaveAccountInTx persists a new account within a transaction, so the
	// account row and its number sequence bump commit together.
	SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error

	// FindAccountsByIDsForUpdate selects accounts and locks them for update within a transaction.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountFundsInTx persists the funds-bearing columns (barter balance,
	// used credit, credit limit, sales counters) of the given accounts within a transaction.
	UpdateAccountFundsInTx(ctx context.Context, tx pgx.Tx, accounts []domain.Account, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
