package repositories

import (
	"context"

	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
)

// AccountTypeRepository defines operations for the account type catalog
type AccountTypeRepository interface {
	// FindAccountTypeByID retrieves a specific account type by its unique identifier.
	FindAccountTypeByID(ctx context.Context, accountTypeID string) (*domain.AccountType, error)

	// ListAccountTypes retrieves the full catalog.
	ListAccountTypes(ctx context.Context) ([]domain.AccountType, error)

	// SaveAccountType persists a new account type.
	SaveAccountType(ctx context.Context, accountType domain.AccountType) error
}
