package services

import (
	"context"

	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
	"github.com/MaxTecnology/rede-trade-back/internal/dto"
)

// CreditRequestSvcFacade drives the credit-limit raise workflow.
type CreditRequestSvcFacade interface {
	// Submit opens a new credit request for the requester's account.
	Submit(ctx context.Context, req dto.SubmitCreditRequestRequest, requesterUserID string) (*domain.CreditRequest, error)

	// Forward escalates a pending request to headquarters with a branch comment.
	Forward(ctx context.Context, creditRequestID string, comment string, actorUserID string) (*domain.CreditRequest, error)

	// Decide applies the headquarters verdict. Approval raises the requester
	// account's credit limit by exactly the requested amount; denial mutates
	// nothing beyond the request status.
	Decide(ctx context.Context, creditRequestID string, approve bool, comment string, actorUserID string) (*domain.CreditRequest, error)

	// GetCreditRequestByID retrieves a specific credit request.
	GetCreditRequestByID(ctx context.Context, creditRequestID string) (*domain.CreditRequest, error)

	// ListCreditRequestsByStatus retrieves a status queue, oldest first.
	ListCreditRequestsByStatus(ctx context.Context, status domain.CreditRequestStatus, limit int, offset int) ([]domain.CreditRequest, error)
}
