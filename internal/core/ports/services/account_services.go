package services

import (
	"context"

	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
	"github.com/MaxTecnology/rede-trade-back/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByNumber retrieves an account by its network-visible number.
	GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// ListAccountsByHeadquarters retrieves a paginated list of accounts under a headquarters.
	ListAccountsByHeadquarters(ctx context.Context, headquartersID string, limit int, offset int) ([]domain.Account, error)

	// ListAccountTypes retrieves the account type catalog.
	ListAccountTypes(ctx context.Context) ([]domain.AccountType, error)

	// ListSubAccounts retrieves the delegate sub-accounts under an account.
	ListSubAccounts(ctx context.Context, parentAccountID string) ([]domain.SubAccount, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount opens a new account: assigns its number from the creator's
	// tier transition, resolves the headquarters, and seeds the fund register.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, actorUserID string) error

	// CreateSubAccount opens a delegate identity under an existing account.
	// Trades addressed to the delegate settle on the parent's ledger.
	CreateSubAccount(ctx context.Context, parentAccountID string, req dto.CreateSubAccountRequest, creatorUserID string) (*domain.SubAccount, error)

	// DeactivateSubAccount retires a delegate under the given parent account.
	DeactivateSubAccount(ctx context.Context, parentAccountID string, subAccountID string, actorUserID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
