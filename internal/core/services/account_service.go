package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MaxTecnology/rede-trade-back/internal/apperrors"
	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
	portsrepo "github.com/MaxTecnology/rede-trade-back/internal/core/ports/repositories"
	portssvc "github.com/MaxTecnology/rede-trade-back/internal/core/ports/services"
	"github.com/MaxTecnology/rede-trade-back/internal/dto"
	"github.com/MaxTecnology/rede-trade-back/internal/middleware"
)

var (
	ErrAccountTypeNotFound    = errors.New("account type not found")
	ErrOwnerUserNotFound      = errors.New("owner user not found")
	ErrCreatorAccountMissing  = errors.New("creator has no account to derive the number from")
	ErrOwnerAlreadyHasAccount = errors.New("owner user already has an account")
)

const fundReasonInitialCredit = "INITIAL_CREDIT"

// accountService opens and reads marketplace accounts.
type accountService struct {
	accountRepo     portsrepo.AccountRepositoryWithTx
	accountTypeRepo portsrepo.AccountTypeRepository
	subAccountRepo  portsrepo.SubAccountRepository
	userRepo        portsrepo.UserReader
	sequenceRepo    portsrepo.SequenceRepository
	fundRepo        portsrepo.FundRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(
	accountRepo portsrepo.AccountRepositoryWithTx,
	accountTypeRepo portsrepo.AccountTypeRepository,
	subAccountRepo portsrepo.SubAccountRepository,
	userRepo portsrepo.UserReader,
	sequenceRepo portsrepo.SequenceRepository,
	fundRepo portsrepo.FundRepository,
) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:     accountRepo,
		accountTypeRepo: accountTypeRepo,
		subAccountRepo:  subAccountRepo,
		userRepo:        userRepo,
		sequenceRepo:    sequenceRepo,
		fundRepo:        fundRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// deriveAccountNumber builds the account number for a new account from its
// type prefix, the assigned sequence value, and the creator's own number.
// Numbers chain hierarchically: a branch opened by headquarters carries the
// headquarters root, an associate carries its branch's segment.
func deriveAccountNumber(creatorAccount *domain.Account, accountType *domain.AccountType, seq int64) string {
	prefixSeq := fmt.Sprintf("%s%04d", accountType.NumberPrefix, seq)
	if creatorAccount == nil {
		return prefixSeq
	}

	segments := strings.Split(creatorAccount.AccountNumber, "/")
	switch {
	case creatorAccount.Tier == domain.TierHeadquarters && accountType.Tier == domain.TierBranch:
		return segments[0] + "/" + prefixSeq
	case creatorAccount.Tier == domain.TierBranch && accountType.Tier == domain.TierAssociate:
		return segments[len(segments)-1] + "/" + prefixSeq
	case creatorAccount.Tier == domain.TierHeadquarters && accountType.Tier == domain.TierAssociate:
		return segments[0] + "/" + prefixSeq
	}
	return prefixSeq
}

// CreateAccount opens a new account. The number sequence bump, the account row
// and the initial fund register entry commit in one database transaction.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accountType, err := s.accountTypeRepo.FindAccountTypeByID(ctx, req.AccountTypeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAccountTypeNotFound, req.AccountTypeID)
		}
		return nil, fmt.Errorf("failed to load account type: %w", err)
	}

	owner, err := s.userRepo.FindUserByID(ctx, req.OwnerUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrOwnerUserNotFound, req.OwnerUserID)
		}
		return nil, fmt.Errorf("failed to load owner user: %w", err)
	}

	if existing, err := s.accountRepo.FindAccountByOwnerUserID(ctx, req.OwnerUserID); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOwnerAlreadyHasAccount, req.OwnerUserID, apperrors.ErrDuplicate)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	// A headquarters account is self-rooted and needs no creator account.
	var creatorAccount *domain.Account
	if accountType.Tier != domain.TierHeadquarters {
		creatorAccount, err = s.accountRepo.FindAccountByOwnerUserID(ctx, creatorUserID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: creator %s", ErrCreatorAccountMissing, creatorUserID)
			}
			return nil, fmt.Errorf("failed to load creator account: %w", err)
		}
	}

	now := time.Now().UTC()
	accountID := uuid.NewString()

	headquartersID := owner.HeadquartersID
	if accountType.Tier == domain.TierHeadquarters {
		headquartersID = owner.UserID
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin account creation: %w", err)
	}
	defer func() {
		_ = s.accountRepo.Rollback(ctx, tx)
	}()

	seq, err := s.sequenceRepo.NextValueInTx(ctx, tx, accountType.NumberPrefix)
	if err != nil {
		logger.Error("Failed to bump account number sequence", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to assign account number: %w", err)
	}

	account := domain.Account{
		AccountID:         accountID,
		OwnerUserID:       owner.UserID,
		AccountNumber:     deriveAccountNumber(creatorAccount, accountType, seq),
		AccountTypeID:     accountType.AccountTypeID,
		Tier:              accountType.Tier,
		HeadquartersID:    headquartersID,
		CreatorUserID:     creatorUserID,
		ManagerUserID:     req.ManagerUserID,
		PlanID:            req.PlanID,
		CreditLimit:       req.CreditLimit,
		MonthlySalesCap:   req.MonthlySalesCap,
		TotalSalesCap:     req.TotalSalesCap,
		CompanySalesCap:   req.CompanySalesCap,
		MonthlySalesMonth: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
		BillingCloseDay:   req.BillingCloseDay,
		BillingDueDay:     req.BillingDueDay,
		IsActive:          true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccountInTx(ctx, tx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	// The initial credit limit is recorded in the fund register so the
	// network's issued credit stays auditable.
	if account.CreditLimit.IsPositive() {
		entry := domain.FundEntry{
			FundEntryID: uuid.NewString(),
			UserID:      owner.UserID,
			AccountID:   account.AccountID,
			Amount:      account.CreditLimit,
			Reason:      fundReasonInitialCredit,
			AuditFields: account.AuditFields,
		}
		if err := s.fundRepo.SaveFundEntryInTx(ctx, tx, entry); err != nil {
			logger.Error("Failed to save fund entry", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to save fund entry: %w", err)
		}
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit account creation: %w", err)
	}

	logger.Info("Account created",
		slog.String("account_id", account.AccountID),
		slog.String("account_number", account.AccountNumber),
		slog.String("tier", string(account.Tier)),
	)
	return &account, nil
}

// CreateSubAccount opens a delegate identity under an existing account.
func (s *accountService) CreateSubAccount(ctx context.Context, parentAccountID string, req dto.CreateSubAccountRequest, creatorUserID string) (*domain.SubAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	parent, err := s.accountRepo.FindAccountByID(ctx, parentAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find parent account %s: %w", parentAccountID, err)
	}
	if !parent.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, parentAccountID)
	}
	if _, err := s.userRepo.FindUserByID(ctx, req.UserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrOwnerUserNotFound, req.UserID)
		}
		return nil, fmt.Errorf("failed to load sub-account user: %w", err)
	}

	now := time.Now().UTC()
	sub := domain.SubAccount{
		SubAccountID:    uuid.NewString(),
		ParentAccountID: parent.AccountID,
		UserID:          req.UserID,
		Name:            req.Name,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.subAccountRepo.SaveSubAccount(ctx, sub); err != nil {
		logger.Error("Failed to save sub-account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save sub-account: %w", err)
	}

	logger.Info("Sub-account created",
		slog.String("sub_account_id", sub.SubAccountID),
		slog.String("parent_account_id", parent.AccountID),
	)
	return &sub, nil
}

// DeactivateSubAccount retires a delegate. Trades already recorded against it
// keep their reference.
func (s *accountService) DeactivateSubAccount(ctx context.Context, parentAccountID string, subAccountID string, actorUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	sub, err := s.subAccountRepo.FindSubAccountByID(ctx, subAccountID)
	if err != nil {
		return fmt.Errorf("failed to find sub-account %s: %w", subAccountID, err)
	}
	if sub.ParentAccountID != parentAccountID {
		return fmt.Errorf("%w: sub-account %s does not belong to account %s",
			apperrors.ErrValidation, subAccountID, parentAccountID)
	}

	if err := s.subAccountRepo.DeactivateSubAccount(ctx, subAccountID, actorUserID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate sub-account", slog.String("error", err.Error()))
		return fmt.Errorf("failed to deactivate sub-account: %w", err)
	}

	logger.Info("Sub-account deactivated", slog.String("sub_account_id", subAccountID))
	return nil
}

// ListSubAccounts retrieves the delegates under an account.
func (s *accountService) ListSubAccounts(ctx context.Context, parentAccountID string) ([]domain.SubAccount, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, parentAccountID); err != nil {
		return nil, fmt.Errorf("failed to find parent account %s: %w", parentAccountID, err)
	}
	return s.subAccountRepo.ListSubAccountsByParent(ctx, parentAccountID)
}

// GetAccountByID retrieves a specific account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountByNumber retrieves an account by its network-visible number.
func (s *accountService) GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to find account by number %s: %w", accountNumber, err)
	}
	return account, nil
}

// ListAccountsByHeadquarters retrieves a paginated list of accounts under a headquarters.
func (s *accountService) ListAccountsByHeadquarters(ctx context.Context, headquartersID string, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.accountRepo.ListAccountsByHeadquarters(ctx, headquartersID, limit, offset)
}

// ListAccountTypes retrieves the account type catalog.
func (s *accountService) ListAccountTypes(ctx context.Context) ([]domain.AccountType, error) {
	return s.accountTypeRepo.ListAccountTypes(ctx)
}

// DeactivateAccount marks an account as inactive.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, actorUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	now := time.Now().UTC()
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, actorUserID, now); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}
