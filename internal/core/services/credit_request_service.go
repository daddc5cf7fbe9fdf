package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MaxTecnology/rede-trade-back/internal/apperrors"
	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
	portsrepo "github.com/MaxTecnology/rede-trade-back/internal/core/ports/repositories"
	portssvc "github.com/MaxTecnology/rede-trade-back/internal/core/ports/services"
	"github.com/MaxTecnology/rede-trade-back/internal/dto"
	"github.com/MaxTecnology/rede-trade-back/internal/middleware"
)

var ErrRequesterAccountMissing = errors.New("requester has no account")

const fundReasonCreditApproval = "CREDIT_APPROVAL"

// creditRequestService drives the credit-limit raise workflow.
type creditRequestService struct {
	creditRepo  portsrepo.CreditRequestRepositoryWithTx
	accountRepo portsrepo.AccountRepositoryWithTx
	fundRepo    portsrepo.FundRepository
}

// NewCreditRequestService creates a new CreditRequestService.
func NewCreditRequestService(
	creditRepo portsrepo.CreditRequestRepositoryWithTx,
	accountRepo portsrepo.AccountRepositoryWithTx,
	fundRepo portsrepo.FundRepository,
) portssvc.CreditRequestSvcFacade {
	return &creditRequestService{
		creditRepo:  creditRepo,
		accountRepo: accountRepo,
		fundRepo:    fundRepo,
	}
}

var _ portssvc.CreditRequestSvcFacade = (*creditRequestService)(nil)

// Submit opens a new credit request for the requester's account.
func (s *creditRequestService) Submit(ctx context.Context, req dto.SubmitCreditRequestRequest, requesterUserID string) (*domain.CreditRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.AmountRequested.IsPositive() {
		return nil, fmt.Errorf("%w: requested amount must be positive, got %s", apperrors.ErrValidation, req.AmountRequested)
	}

	account, err := s.accountRepo.FindAccountByOwnerUserID(ctx, requesterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrRequesterAccountMissing, requesterUserID)
		}
		return nil, fmt.Errorf("failed to load requester account: %w", err)
	}

	now := time.Now().UTC()
	request := domain.CreditRequest{
		CreditRequestID:    uuid.NewString(),
		RequesterAccountID: account.AccountID,
		RequesterUserID:    requesterUserID,
		AmountRequested:    req.AmountRequested,
		Reason:             req.Reason,
		Status:             domain.CreditPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requesterUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requesterUserID,
		},
	}

	if err := s.creditRepo.SaveCreditRequest(ctx, request); err != nil {
		logger.Error("Failed to save credit request", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save credit request: %w", err)
	}

	logger.Info("Credit request submitted",
		slog.String("credit_request_id", request.CreditRequestID),
		slog.String("amount", request.AmountRequested.String()),
	)
	return &request, nil
}

// Forward escalates a pending request to headquarters with a branch comment.
func (s *creditRequestService) Forward(ctx context.Context, creditRequestID string, comment string, actorUserID string) (*domain.CreditRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	request, err := s.creditRepo.FindCreditRequestByID(ctx, creditRequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to find credit request %s: %w", creditRequestID, err)
	}
	if request.Status != domain.CreditPending {
		return nil, fmt.Errorf("%w: cannot forward credit request %s in status %s",
			apperrors.ErrInvalidStateTransition, creditRequestID, request.Status)
	}

	now := time.Now().UTC()
	request.Status = domain.CreditForwarded
	request.BranchComment = comment
	request.LastUpdatedAt = now
	request.LastUpdatedBy = actorUserID

	if err := s.creditRepo.UpdateCreditRequest(ctx, *request, domain.CreditPending); err != nil {
		logger.Error("Failed to forward credit request", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to forward credit request: %w", err)
	}

	logger.Info("Credit request forwarded to headquarters", slog.String("credit_request_id", creditRequestID))
	return request, nil
}

// Decide applies the headquarters verdict. Approval raises the requester
// account's credit limit under a row lock and records the raise in the fund
// register; denial mutates nothing beyond the request status.
func (s *creditRequestService) Decide(ctx context.Context, creditRequestID string, approve bool, comment string, actorUserID string) (*domain.CreditRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	request, err := s.creditRepo.FindCreditRequestByID(ctx, creditRequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to find credit request %s: %w", creditRequestID, err)
	}
	if !request.Status.AwaitingDecision() {
		return nil, fmt.Errorf("%w: credit request %s is already %s",
			apperrors.ErrInvalidStateTransition, creditRequestID, request.Status)
	}

	previous := request.Status
	now := time.Now().UTC()
	request.HQComment = comment
	request.LastUpdatedAt = now
	request.LastUpdatedBy = actorUserID

	if !approve {
		request.Status = domain.CreditDenied
		if err := s.creditRepo.UpdateCreditRequest(ctx, *request, previous); err != nil {
			logger.Error("Failed to deny credit request", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to deny credit request: %w", err)
		}
		logger.Info("Credit request denied", slog.String("credit_request_id", creditRequestID))
		return request, nil
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin credit approval: %w", err)
	}
	defer func() {
		_ = s.accountRepo.Rollback(ctx, tx)
	}()

	accounts, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{request.RequesterAccountID})
	if err != nil {
		logger.Error("Failed to lock requester account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to lock requester account: %w", err)
	}
	account, ok := accounts[request.RequesterAccountID]
	if !ok {
		return nil, fmt.Errorf("requester account %s: %w", request.RequesterAccountID, apperrors.ErrNotFound)
	}

	request.CreditLimitBefore = account.CreditLimit
	if err := account.RaiseCreditLimit(request.AmountRequested); err != nil {
		return nil, err
	}

	if err := s.accountRepo.UpdateAccountFundsInTx(ctx, tx, []domain.Account{account}, actorUserID, now); err != nil {
		logger.Error("Failed to persist raised credit limit", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to persist raised credit limit: %w", err)
	}

	entry := domain.FundEntry{
		FundEntryID: uuid.NewString(),
		UserID:      request.RequesterUserID,
		AccountID:   account.AccountID,
		Amount:      request.AmountRequested,
		Reason:      fundReasonCreditApproval,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
	if err := s.fundRepo.SaveFundEntryInTx(ctx, tx, entry); err != nil {
		logger.Error("Failed to save fund entry for approval", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save fund entry: %w", err)
	}

	// The status flip rides in the same transaction as the limit raise and the
	// fund entry. The expected-status guard makes a concurrent decision match
	// zero rows, so a retry of a failed approval can never raise the limit twice.
	request.Status = domain.CreditApproved
	if err := s.creditRepo.UpdateCreditRequestInTx(ctx, tx, *request, previous); err != nil {
		logger.Error("Failed to record approval", slog.String("error", err.Error()),
			slog.String("credit_request_id", creditRequestID))
		return nil, fmt.Errorf("failed to record approval: %w", err)
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit credit approval: %w", err)
	}

	logger.Info("Credit request approved",
		slog.String("credit_request_id", creditRequestID),
		slog.String("amount", request.AmountRequested.String()),
	)
	return request, nil
}

// GetCreditRequestByID retrieves a specific credit request.
func (s *creditRequestService) GetCreditRequestByID(ctx context.Context, creditRequestID string) (*domain.CreditRequest, error) {
	request, err := s.creditRepo.FindCreditRequestByID(ctx, creditRequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to find credit request %s: %w", creditRequestID, err)
	}
	return request, nil
}

// ListCreditRequestsByStatus retrieves a status queue, oldest first.
func (s *creditRequestService) ListCreditRequestsByStatus(ctx context.Context, status domain.CreditRequestStatus, limit int, offset int) ([]domain.CreditRequest, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.creditRepo.ListCreditRequestsByStatus(ctx, status, limit, offset)
}
