package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MaxTecnology/rede-trade-back/internal/apperrors"
	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
	portsrepo "github.com/MaxTecnology/rede-trade-back/internal/core/ports/repositories"
	portssvc "github.com/MaxTecnology/rede-trade-back/internal/core/ports/services"
	"github.com/MaxTecnology/rede-trade-back/internal/dto"
	"github.com/MaxTecnology/rede-trade-back/internal/middleware"
	"github.com/MaxTecnology/rede-trade-back/internal/utils"
	"github.com/MaxTecnology/rede-trade-back/internal/utils/schedule"
)

var (
	ErrSameAccount         = errors.New("buyer and seller must be different accounts")
	ErrAccountInactive     = errors.New("account is inactive")
	ErrTradeAccountMissing = errors.New("trade account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
)

const tradeCodeLength = 8

// transactionService runs trades and their reversals against the ledger.
type transactionService struct {
	txnRepo        portsrepo.TransactionRepositoryWithTx
	accountRepo    portsrepo.AccountRepositoryWithTx
	subAccountRepo portsrepo.SubAccountRepository
	billingRepo    portsrepo.BillingRepositoryFacade
	voucherRepo    portsrepo.VoucherRepositoryFacade
	userRepo       portsrepo.UserReader
	planRepo       portsrepo.PlanRepository
	notifier       portssvc.Notifier
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryWithTx,
	accountRepo portsrepo.AccountRepositoryWithTx,
	subAccountRepo portsrepo.SubAccountRepository,
	billingRepo portsrepo.BillingRepositoryFacade,
	voucherRepo portsrepo.VoucherRepositoryFacade,
	userRepo portsrepo.UserReader,
	planRepo portsrepo.PlanRepository,
	notifier portssvc.Notifier,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:        txnRepo,
		accountRepo:    accountRepo,
		subAccountRepo: subAccountRepo,
		billingRepo:    billingRepo,
		voucherRepo:    voucherRepo,
		userRepo:       userRepo,
		planRepo:       planRepo,
		notifier:       notifier,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// commissionRate resolves the buyer's plan rate in percent. No plan means no commission.
func (s *transactionService) commissionRate(ctx context.Context, planID string) (decimal.Decimal, error) {
	if planID == "" {
		return decimal.Zero, nil
	}
	plan, err := s.planRepo.FindPlanByID(ctx, planID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to load plan %s: %w", planID, err)
	}
	return plan.CommissionRate, nil
}

// resolveTradeAccountID returns the ledger account a trade party settles on.
// A party addressed by sub-account resolves to the delegate's parent account.
func (s *transactionService) resolveTradeAccountID(ctx context.Context, party string, accountID string, subAccountID string) (string, error) {
	if subAccountID == "" {
		if accountID == "" {
			return "", fmt.Errorf("%w: %s account missing", apperrors.ErrValidation, party)
		}
		return accountID, nil
	}
	sub, err := s.subAccountRepo.FindSubAccountByID(ctx, subAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("%w: %s sub-account %s: %w", ErrTradeAccountMissing, party, subAccountID, apperrors.ErrNotFound)
		}
		return "", fmt.Errorf("failed to load %s sub-account: %w", party, err)
	}
	if !sub.IsActive {
		return "", fmt.Errorf("%w: %s sub-account %s is inactive", apperrors.ErrValidation, party, subAccountID)
	}
	if accountID != "" && accountID != sub.ParentAccountID {
		return "", fmt.Errorf("%w: %s sub-account %s does not belong to account %s",
			apperrors.ErrValidation, party, subAccountID, accountID)
	}
	return sub.ParentAccountID, nil
}

// Execute runs a trade atomically. Both accounts are locked for the duration
// of the database transaction; the commit happens before any email is sent so
// a mail outage can never roll back a trade.
func (s *transactionService) Execute(ctx context.Context, req dto.ExecuteTransactionRequest, actorUserID string) (*dto.TransactionResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: trade amount must be positive, got %s", apperrors.ErrValidation, req.Amount)
	}
	if req.InstallmentCount < 1 {
		return nil, fmt.Errorf("%w: installment count must be at least 1", apperrors.ErrValidation)
	}

	buyerAccountID, err := s.resolveTradeAccountID(ctx, "buyer", req.BuyerAccountID, req.BuyerSubAccountID)
	if err != nil {
		return nil, err
	}
	sellerAccountID, err := s.resolveTradeAccountID(ctx, "seller", req.SellerAccountID, req.SellerSubAccountID)
	if err != nil {
		return nil, err
	}
	if buyerAccountID == sellerAccountID {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrSameAccount)
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = s.accountRepo.Rollback(ctx, tx)
	}()

	// Lock both accounts in a stable order to avoid deadlocks between
	// concurrent trades touching the same pair.
	ids := []string{buyerAccountID, sellerAccountID}
	sort.Strings(ids)
	accounts, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		logger.Error("Failed to lock trade accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to lock trade accounts: %w", err)
	}

	buyer, ok := accounts[buyerAccountID]
	if !ok {
		return nil, fmt.Errorf("%w: buyer %s: %w", ErrTradeAccountMissing, buyerAccountID, apperrors.ErrNotFound)
	}
	seller, ok := accounts[sellerAccountID]
	if !ok {
		return nil, fmt.Errorf("%w: seller %s: %w", ErrTradeAccountMissing, sellerAccountID, apperrors.ErrNotFound)
	}
	if !buyer.IsActive || !seller.IsActive {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAccountInactive)
	}

	now := time.Now().UTC()

	// Seller caps first: a capped seller rejects the trade before any funds move.
	if err := seller.RegisterSale(req.Amount, now); err != nil {
		return nil, err
	}

	buyerBarterBefore := buyer.BarterBalance
	buyerCreditBefore := buyer.AvailableCredit()

	trace, err := buyer.DrawFunds(req.Amount)
	if err != nil {
		// ErrInsufficientFunds is a business outcome the handler reports with
		// HTTP 200; nothing has been persisted at this point.
		return nil, err
	}
	if err := seller.CreditFunds(req.Amount); err != nil {
		return nil, err
	}

	commissionRate, err := s.commissionRate(ctx, buyer.PlanID)
	if err != nil {
		return nil, err
	}
	installments := int64(req.InstallmentCount)
	commissionTotal := req.Amount.Mul(commissionRate).Div(decimal.NewFromInt(100)).Round(2)
	commissionPerInstallment := commissionTotal.DivRound(decimal.NewFromInt(installments), 2)

	code, err := utils.GenerateTradeCode(tradeCodeLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate trade code: %w", err)
	}

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorUserID,
	}

	txn := domain.Transaction{
		TransactionID:            uuid.NewString(),
		Code:                     code,
		BuyerAccountID:           buyer.AccountID,
		SellerAccountID:          seller.AccountID,
		BuyerUserID:              buyer.OwnerUserID,
		SellerUserID:             seller.OwnerUserID,
		BuyerSubAccountID:        req.BuyerSubAccountID,
		SellerSubAccountID:       req.SellerSubAccountID,
		Amount:                   req.Amount,
		Description:              req.Description,
		OfferID:                  req.OfferID,
		BuyerBarterBefore:        buyerBarterBefore,
		BuyerBarterAfter:         buyer.BarterBalance,
		BuyerCreditBefore:        buyerCreditBefore,
		BuyerCreditAfter:         buyer.AvailableCredit(),
		SellerBarterAfter:        seller.BarterBalance,
		FundsUsed:                trace,
		CommissionTotal:          commissionTotal,
		CommissionPerInstallment: commissionPerInstallment,
		InstallmentCount:         req.InstallmentCount,
		Status:                   domain.TxCompleted,
		AuditFields:              audit,
	}

	if err := s.txnRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	if err := s.accountRepo.UpdateAccountFundsInTx(ctx, tx, []domain.Account{buyer, seller}, actorUserID, now); err != nil {
		logger.Error("Failed to update account funds", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update account funds: %w", err)
	}

	// All installments of a trade fall due on the same date, anchored to the
	// buyer's billing cycle.
	if commissionTotal.IsPositive() {
		dueDate := schedule.ComputeDueDate(now, buyer.BillingCloseDay, buyer.BillingDueDay)
		billings := make([]domain.Billing, req.InstallmentCount)
		for i := range billings {
			billings[i] = domain.Billing{
				BillingID:      uuid.NewString(),
				TransactionID:  txn.TransactionID,
				PayerAccountID: buyer.AccountID,
				PayerUserID:    buyer.OwnerUserID,
				ManagerUserID:  buyer.ManagerUserID,
				Reference:      fmt.Sprintf("%s %d/%d", code, i+1, req.InstallmentCount),
				AmountDue:      commissionPerInstallment,
				DueDate:        dueDate,
				Status:         domain.BillingIssued,
				AuditFields:    audit,
			}
		}
		if err := s.billingRepo.SaveBillingsInTx(ctx, tx, billings); err != nil {
			logger.Error("Failed to save billings", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to save billings: %w", err)
		}
	}

	voucherCode, err := utils.GenerateTradeCode(tradeCodeLength + 2)
	if err != nil {
		return nil, fmt.Errorf("failed to generate voucher code: %w", err)
	}
	voucher := domain.Voucher{
		VoucherID:     uuid.NewString(),
		TransactionID: txn.TransactionID,
		Code:          voucherCode,
		Status:        domain.VoucherActive,
		AuditFields:   audit,
	}
	if err := s.voucherRepo.SaveVoucherInTx(ctx, tx, voucher); err != nil {
		logger.Error("Failed to save voucher", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save voucher: %w", err)
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit trade: %w", err)
	}

	logger.Info("Trade executed",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("code", txn.Code),
		slog.String("amount", txn.Amount.String()),
	)

	notificationsSent := s.sendTradeConfirmations(ctx, &txn)

	result := &dto.TransactionResult{
		Transaction:       dto.ToTransactionResponse(&txn),
		NotificationsSent: notificationsSent,
	}
	return result, nil
}

// sendTradeConfirmations emails both parties. Emails go out both-or-none; a
// missing address or a send failure is reported via the result flag, never as
// an error, because the trade is already committed.
func (s *transactionService) sendTradeConfirmations(ctx context.Context, txn *domain.Transaction) bool {
	logger := middleware.GetLoggerFromCtx(ctx)

	users, err := s.userRepo.FindUsersByIDs(ctx, []string{txn.BuyerUserID, txn.SellerUserID})
	if err != nil {
		logger.Warn("Failed to load trade participants for notification", slog.String("error", err.Error()))
		return false
	}
	buyer, buyerOK := users[txn.BuyerUserID]
	seller, sellerOK := users[txn.SellerUserID]
	if !buyerOK || !sellerOK || buyer.Email == "" || seller.Email == "" {
		logger.Warn("Trade confirmation skipped: participant email unresolvable",
			slog.String("transaction_id", txn.TransactionID))
		return false
	}

	buyerBody := fmt.Sprintf(
		"Your purchase %s of %s was completed.\nPaid from barter: %s\nPaid from credit: %s\nBarter balance: %s\nAvailable credit: %s\n",
		txn.Code, txn.Amount,
		txn.FundsUsed.DrawnFrom(domain.PoolBarter),
		txn.FundsUsed.DrawnFrom(domain.PoolCredit),
		txn.BuyerBarterAfter, txn.BuyerCreditAfter,
	)
	sellerBody := fmt.Sprintf(
		"Your sale %s of %s was completed.\nBarter balance: %s\n",
		txn.Code, txn.Amount, txn.SellerBarterAfter,
	)

	if err := s.notifier.Notify(ctx, buyer.Email, "Trade confirmation "+txn.Code, buyerBody); err != nil {
		logger.Warn("Failed to send buyer confirmation", slog.String("error", err.Error()))
		return false
	}
	if err := s.notifier.Notify(ctx, seller.Email, "Trade confirmation "+txn.Code, sellerBody); err != nil {
		logger.Warn("Failed to send seller confirmation", slog.String("error", err.Error()))
		return false
	}
	return true
}

// GetTransactionByID retrieves a specific transaction.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// GetTransactionByCode retrieves a transaction by its trade code.
func (s *transactionService) GetTransactionByCode(ctx context.Context, code string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction with code %s: %w", code, err)
	}
	return txn, nil
}

// ListTransactionsByAccount retrieves a page of an account's trades.
func (s *transactionService) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.txnRepo.ListTransactionsByAccountID(ctx, accountID, limit, nextToken)
}

// ListReversalQueue retrieves transactions in a reversal workflow status.
func (s *transactionService) ListReversalQueue(ctx context.Context, status domain.TransactionStatus, headquartersID *string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.txnRepo.ListTransactionsByStatus(ctx, status, headquartersID, limit, nextToken)
}

// RequestReversal opens a reversal request on a completed transaction.
func (s *transactionService) RequestReversal(ctx context.Context, transactionID string, actorUserID string) (*domain.Transaction, error) {
	return s.transitionStatus(ctx, transactionID, actorUserID, domain.TxReversalRequested, func(status domain.TransactionStatus) bool {
		return status.CanRequestReversal()
	})
}

// ForwardReversalToHeadquarters escalates the reversal decision.
func (s *transactionService) ForwardReversalToHeadquarters(ctx context.Context, transactionID string, actorUserID string) (*domain.Transaction, error) {
	return s.transitionStatus(ctx, transactionID, actorUserID, domain.TxForwardedForReversal, func(status domain.TransactionStatus) bool {
		return status.CanForwardForReversal()
	})
}

func (s *transactionService) transitionStatus(ctx context.Context, transactionID string, actorUserID string, target domain.TransactionStatus, allowed func(domain.TransactionStatus) bool) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	if !allowed(txn.Status) {
		return nil, fmt.Errorf("%w: cannot move transaction %s from %s to %s",
			apperrors.ErrInvalidStateTransition, transactionID, txn.Status, target)
	}

	now := time.Now().UTC()
	if err := s.txnRepo.UpdateTransactionStatus(ctx, transactionID, txn.Status, target, actorUserID, now); err != nil {
		logger.Error("Failed to update transaction status", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction status: %w", err)
	}

	txn.Status = target
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = actorUserID
	return txn, nil
}

// ExecuteReversal undoes a trade atomically. The transaction row is locked
// before the status guard so two concurrent reversals cannot both pass it.
func (s *transactionService) ExecuteReversal(ctx context.Context, transactionID string, actorUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin reversal: %w", err)
	}
	defer func() {
		_ = s.txnRepo.Rollback(ctx, tx)
	}()

	txn, err := s.txnRepo.FindTransactionByIDForUpdate(ctx, tx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	if !txn.Status.CanReverse() {
		return nil, fmt.Errorf("%w: transaction %s is already %s",
			apperrors.ErrInvalidStateTransition, transactionID, txn.Status)
	}

	ids := []string{txn.BuyerAccountID, txn.SellerAccountID}
	sort.Strings(ids)
	accounts, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		logger.Error("Failed to lock accounts for reversal", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to lock accounts for reversal: %w", err)
	}
	buyer, ok := accounts[txn.BuyerAccountID]
	if !ok {
		return nil, fmt.Errorf("%w: buyer %s: %w", ErrTradeAccountMissing, txn.BuyerAccountID, apperrors.ErrNotFound)
	}
	seller, ok := accounts[txn.SellerAccountID]
	if !ok {
		return nil, fmt.Errorf("%w: seller %s: %w", ErrTradeAccountMissing, txn.SellerAccountID, apperrors.ErrNotFound)
	}

	if err := buyer.RestoreFunds(txn.FundsUsed); err != nil {
		return nil, fmt.Errorf("failed to restore buyer funds: %w", err)
	}
	// The seller's barter receipt is clawed back even if it drives the
	// balance negative; the network absorbs spent funds.
	if err := seller.DebitFunds(txn.Amount); err != nil {
		return nil, fmt.Errorf("failed to debit seller funds: %w", err)
	}

	now := time.Now().UTC()
	if err := s.accountRepo.UpdateAccountFundsInTx(ctx, tx, []domain.Account{buyer, seller}, actorUserID, now); err != nil {
		logger.Error("Failed to update account funds on reversal", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update account funds on reversal: %w", err)
	}
	if err := s.billingRepo.CancelBillingsByTransactionInTx(ctx, tx, transactionID, actorUserID, now); err != nil {
		logger.Error("Failed to cancel billings on reversal", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to cancel billings: %w", err)
	}
	if err := s.voucherRepo.CancelVouchersByTransactionInTx(ctx, tx, transactionID, actorUserID, now); err != nil {
		logger.Error("Failed to cancel vouchers on reversal", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to cancel vouchers: %w", err)
	}
	if err := s.txnRepo.MarkTransactionReversedInTx(ctx, tx, transactionID, now, actorUserID); err != nil {
		logger.Error("Failed to mark transaction reversed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to mark transaction reversed: %w", err)
	}

	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit reversal: %w", err)
	}

	logger.Info("Trade reversed",
		slog.String("transaction_id", transactionID),
		slog.String("amount", txn.Amount.String()),
	)

	txn.Status = domain.TxReversed
	txn.ReversedAt = &now
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = actorUserID
	return txn, nil
}
