package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
)

// CreditRequestReader defines read operations for credit request data
type CreditRequestReader interface {
	// FindCreditRequestByID retrieves a specific credit request by its unique identifier.
	FindCreditRequestByID(ctx context.Context, requestID string) (*domain.CreditRequest, error)

	// ListCreditRequestsByStatus retrieves credit requests in a given status,
	// oldest first so queues are worked in submission order.
	ListCreditRequestsByStatus(ctx context.Context, status domain.CreditRequestStatus, limit int, offset int) ([]domain.CreditRequest, error)

	// ListCreditRequestsByRequester retrieves the credit requests submitted by a user.
	ListCreditRequestsByRequester(ctx context.Context, requesterUserID string, limit int, offset int) ([]domain.CreditRequest, error)
}

// CreditRequestWriter defines write operations for credit request data
type CreditRequestWriter interface {
	// SaveCreditRequest persists a new credit request.
	SaveCreditRequest(ctx context.Context, request domain.CreditRequest) error

	// UpdateCreditRequest updates an existing credit request's status and
	// comments, guarded on the expected current status. Zero rows updated
	// means the request moved concurrently and yields ErrInvalidStateTransition.
	UpdateCreditRequest(ctx context.Context, request domain.CreditRequest, expected domain.CreditRequestStatus) error

	// UpdateCreditRequestInTx is UpdateCreditRequest within a database
	// transaction, so the status flip commits atomically with its side effects.
	UpdateCreditRequestInTx(ctx context.Context, tx pgx.Tx, request domain.CreditRequest, expected domain.CreditRequestStatus) error
}

// CreditRequestRepositoryFacade combines all credit-request repository interfaces
type CreditRequestRepositoryFacade interface {
	CreditRequestReader
	CreditRequestWriter
}

// CreditRequestRepositoryWithTx extends CreditRequestRepositoryFacade with transaction capabilities
type CreditRequestRepositoryWithTx interface {
	CreditRequestRepositoryFacade
	TransactionManager
}
