package repositories

import (
	"context"
	"time"

	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
)

// SubAccountRepository defines persistence operations for delegate sub-accounts.
type SubAccountRepository interface {
	// SaveSubAccount persists a new sub-account.
	SaveSubAccount(ctx context.Context, sub domain.SubAccount) error

	// FindSubAccountByID retrieves a specific sub-account by its unique identifier.
	FindSubAccountByID(ctx context.Context, subAccountID string) (*domain.SubAccount, error)

	// ListSubAccountsByParent retrieves the sub-accounts under a parent account.
	ListSubAccountsByParent(ctx context.Context, parentAccountID string) ([]domain.SubAccount, error)

	// DeactivateSubAccount marks a sub-account as inactive.
	DeactivateSubAccount(ctx context.Context, subAccountID string, userID string, now time.Time) error
}
