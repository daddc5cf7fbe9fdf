package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/MaxTecnology/rede-trade-back/internal/apperrors"
	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
	portssvc "github.com/MaxTecnology/rede-trade-back/internal/core/ports/services"
	"github.com/MaxTecnology/rede-trade-back/internal/core/services"
	"github.com/MaxTecnology/rede-trade-back/internal/dto"
	"github.com/MaxTecnology/rede-trade-back/internal/utils/schedule"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo        *MockTransactionRepository
	mockAccountRepo    *MockAccountRepository
	mockSubAccountRepo *MockSubAccountRepository
	mockBillingRepo    *MockBillingRepository
	mockVoucherRepo    *MockVoucherRepository
	mockUserRepo       *MockUserRepository
	mockPlanRepo       *MockPlanRepository
	mockNotifier       *MockNotifier
	service            portssvc.TransactionSvcFacade

	buyer   domain.Account
	seller  domain.Account
	plan    domain.Plan
	actorID string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockSubAccountRepo = new(MockSubAccountRepository)
	suite.mockBillingRepo = new(MockBillingRepository)
	suite.mockVoucherRepo = new(MockVoucherRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockPlanRepo = new(MockPlanRepository)
	suite.mockNotifier = new(MockNotifier)
	suite.service = services.NewTransactionService(
		suite.mockTxnRepo,
		suite.mockAccountRepo,
		suite.mockSubAccountRepo,
		suite.mockBillingRepo,
		suite.mockVoucherRepo,
		suite.mockUserRepo,
		suite.mockPlanRepo,
		suite.mockNotifier,
	)

	suite.actorID = uuid.NewString()
	suite.plan = domain.Plan{
		PlanID:         uuid.NewString(),
		Name:           "standard",
		CommissionRate: decimal.NewFromInt(10),
	}
	suite.buyer = domain.Account{
		AccountID:       uuid.NewString(),
		OwnerUserID:     uuid.NewString(),
		PlanID:          suite.plan.PlanID,
		CreditLimit:     decimal.NewFromInt(5000),
		UsedCredit:      decimal.Zero,
		BarterBalance:   decimal.NewFromInt(2000),
		BillingCloseDay: 20,
		BillingDueDay:   5,
		IsActive:        true,
	}
	suite.seller = domain.Account{
		AccountID:     uuid.NewString(),
		OwnerUserID:   uuid.NewString(),
		BarterBalance: decimal.NewFromInt(100),
		IsActive:      true,
	}
}

// lockedAccounts is what FindAccountsByIDsForUpdate returns for the pair.
func (suite *TransactionServiceTestSuite) lockedAccounts() map[string]domain.Account {
	return map[string]domain.Account{
		suite.buyer.AccountID:  suite.buyer,
		suite.seller.AccountID: suite.seller,
	}
}

func (suite *TransactionServiceTestSuite) expectUsersAndNotifications() {
	users := map[string]domain.User{
		suite.buyer.OwnerUserID:  {UserID: suite.buyer.OwnerUserID, Email: "buyer@example.com"},
		suite.seller.OwnerUserID: {UserID: suite.seller.OwnerUserID, Email: "seller@example.com"},
	}
	suite.mockUserRepo.On("FindUsersByIDs", mock.Anything, mock.Anything).Return(users, nil).Once()
	suite.mockNotifier.On("Notify", mock.Anything, "buyer@example.com", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockNotifier.On("Notify", mock.Anything, "seller@example.com", mock.Anything, mock.Anything).Return(nil).Once()
}

func (suite *TransactionServiceTestSuite) TestExecute_BarterThenCreditWithCommission() {
	ctx := context.Background()
	req := dto.ExecuteTransactionRequest{
		BuyerAccountID:   suite.buyer.AccountID,
		SellerAccountID:  suite.seller.AccountID,
		Amount:           decimal.NewFromInt(3000),
		Description:      "bulk order",
		InstallmentCount: 3,
	}

	suite.mockAccountRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockAccountRepo.On("Rollback", ctx, nil).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", ctx, nil, mock.Anything).Return(suite.lockedAccounts(), nil).Once()
	suite.mockPlanRepo.On("FindPlanByID", ctx, suite.plan.PlanID).Return(&suite.plan, nil).Once()

	var savedTxn domain.Transaction
	suite.mockTxnRepo.On("SaveTransactionInTx", ctx, nil, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) { savedTxn = args.Get(2).(domain.Transaction) }).
		Return(nil).Once()

	var savedAccounts []domain.Account
	suite.mockAccountRepo.On("UpdateAccountFundsInTx", ctx, nil, mock.AnythingOfType("[]domain.Account"), suite.actorID, mock.Anything).
		Run(func(args mock.Arguments) { savedAccounts = args.Get(2).([]domain.Account) }).
		Return(nil).Once()

	var savedBillings []domain.Billing
	suite.mockBillingRepo.On("SaveBillingsInTx", ctx, nil, mock.AnythingOfType("[]domain.Billing")).
		Run(func(args mock.Arguments) { savedBillings = args.Get(2).([]domain.Billing) }).
		Return(nil).Once()

	suite.mockVoucherRepo.On("SaveVoucherInTx", ctx, nil, mock.AnythingOfType("domain.Voucher")).Return(nil).Once()
	suite.mockAccountRepo.On("Commit", ctx, nil).Return(nil).Once()
	suite.expectUsersAndNotifications()

	result, err := suite.service.Execute(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.True(result.NotificationsSent)

	// Funds: 2000 from barter, 1000 from credit.
	suite.Require().Len(savedTxn.FundsUsed, 2)
	suite.Equal(domain.PoolBarter, savedTxn.FundsUsed[0].Pool)
	suite.True(savedTxn.FundsUsed[0].Amount.Equal(decimal.NewFromInt(2000)))
	suite.Equal(domain.PoolCredit, savedTxn.FundsUsed[1].Pool)
	suite.True(savedTxn.FundsUsed[1].Amount.Equal(decimal.NewFromInt(1000)))
	suite.True(savedTxn.BuyerBarterAfter.IsZero())
	suite.True(savedTxn.BuyerCreditAfter.Equal(decimal.NewFromInt(4000)))
	suite.True(savedTxn.SellerBarterAfter.Equal(decimal.NewFromInt(3100)))
	suite.Equal(domain.TxCompleted, savedTxn.Status)
	suite.NotEmpty(savedTxn.Code)

	// Commission: 10% of 3000 split over 3 installments.
	suite.True(savedTxn.CommissionTotal.Equal(decimal.NewFromInt(300)))
	suite.True(savedTxn.CommissionPerInstallment.Equal(decimal.NewFromInt(100)))

	// One billing per installment, all sharing one due date.
	suite.Require().Len(savedBillings, 3)
	expectedDue := schedule.ComputeDueDate(time.Now().UTC(), suite.buyer.BillingCloseDay, suite.buyer.BillingDueDay)
	for _, b := range savedBillings {
		suite.True(b.AmountDue.Equal(decimal.NewFromInt(100)))
		suite.True(b.DueDate.Equal(expectedDue))
		suite.Equal(domain.BillingIssued, b.Status)
		suite.Equal(suite.buyer.AccountID, b.PayerAccountID)
	}

	// Both accounts persisted with their post-trade balances.
	suite.Require().Len(savedAccounts, 2)

	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockBillingRepo.AssertExpectations(suite.T())
	suite.mockVoucherRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestExecute_InsufficientFundsPersistsNothing() {
	ctx := context.Background()
	req := dto.ExecuteTransactionRequest{
		BuyerAccountID:   suite.buyer.AccountID,
		SellerAccountID:  suite.seller.AccountID,
		Amount:           decimal.NewFromInt(8000), // above 2000 barter + 5000 credit
		InstallmentCount: 1,
	}

	suite.mockAccountRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockAccountRepo.On("Rollback", ctx, nil).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", ctx, nil, mock.Anything).Return(suite.lockedAccounts(), nil).Once()

	result, err := suite.service.Execute(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.Nil(result)

	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransactionInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccountFundsInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockNotifier.AssertNotCalled(suite.T(), "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestExecute_SellerCapRejectsWithoutMutation() {
	suite.seller.CompanySalesCap = decimal.NewFromInt(500)
	suite.seller.TotalSalesCurrent = decimal.NewFromInt(400)

	ctx := context.Background()
	req := dto.ExecuteTransactionRequest{
		BuyerAccountID:   suite.buyer.AccountID,
		SellerAccountID:  suite.seller.AccountID,
		Amount:           decimal.NewFromInt(200),
		InstallmentCount: 1,
	}

	suite.mockAccountRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockAccountRepo.On("Rollback", ctx, nil).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", ctx, nil, mock.Anything).Return(suite.lockedAccounts(), nil).Once()

	result, err := suite.service.Execute(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrCapExceeded)
	suite.Nil(result)

	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransactionInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestExecute_NotificationFailureStillCommits() {
	ctx := context.Background()
	req := dto.ExecuteTransactionRequest{
		BuyerAccountID:   suite.buyer.AccountID,
		SellerAccountID:  suite.seller.AccountID,
		Amount:           decimal.NewFromInt(100),
		InstallmentCount: 1,
	}

	suite.mockAccountRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockAccountRepo.On("Rollback", ctx, nil).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", ctx, nil, mock.Anything).Return(suite.lockedAccounts(), nil).Once()
	suite.mockPlanRepo.On("FindPlanByID", ctx, suite.plan.PlanID).Return(&suite.plan, nil).Once()
	suite.mockTxnRepo.On("SaveTransactionInTx", ctx, nil, mock.Anything).Return(nil).Once()
	suite.mockAccountRepo.On("UpdateAccountFundsInTx", ctx, nil, mock.Anything, suite.actorID, mock.Anything).Return(nil).Once()
	suite.mockBillingRepo.On("SaveBillingsInTx", ctx, nil, mock.Anything).Return(nil).Once()
	suite.mockVoucherRepo.On("SaveVoucherInTx", ctx, nil, mock.Anything).Return(nil).Once()
	suite.mockAccountRepo.On("Commit", ctx, nil).Return(nil).Once()

	// Participants cannot be resolved, so no mail goes out.
	suite.mockUserRepo.On("FindUsersByIDs", mock.Anything, mock.Anything).Return(map[string]domain.User{}, nil).Once()

	result, err := suite.service.Execute(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.False(result.NotificationsSent)
	suite.mockNotifier.AssertNotCalled(suite.T(), "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestExecute_BuyerSubAccountSettlesOnParentLedger() {
	ctx := context.Background()
	sub := &domain.SubAccount{
		SubAccountID:    uuid.NewString(),
		ParentAccountID: suite.buyer.AccountID,
		UserID:          uuid.NewString(),
		IsActive:        true,
	}
	req := dto.ExecuteTransactionRequest{
		BuyerSubAccountID: sub.SubAccountID,
		SellerAccountID:   suite.seller.AccountID,
		Amount:            decimal.NewFromInt(100),
		InstallmentCount:  1,
	}

	suite.mockSubAccountRepo.On("FindSubAccountByID", ctx, sub.SubAccountID).Return(sub, nil).Once()
	suite.mockAccountRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockAccountRepo.On("Rollback", ctx, nil).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", ctx, nil, mock.Anything).Return(suite.lockedAccounts(), nil).Once()
	suite.mockPlanRepo.On("FindPlanByID", ctx, suite.plan.PlanID).Return(&suite.plan, nil).Once()

	var savedTxn domain.Transaction
	suite.mockTxnRepo.On("SaveTransactionInTx", ctx, nil, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) { savedTxn = args.Get(2).(domain.Transaction) }).
		Return(nil).Once()

	var savedAccounts []domain.Account
	suite.mockAccountRepo.On("UpdateAccountFundsInTx", ctx, nil, mock.AnythingOfType("[]domain.Account"), suite.actorID, mock.Anything).
		Run(func(args mock.Arguments) { savedAccounts = args.Get(2).([]domain.Account) }).
		Return(nil).Once()

	suite.mockBillingRepo.On("SaveBillingsInTx", ctx, nil, mock.Anything).Return(nil).Once()
	suite.mockVoucherRepo.On("SaveVoucherInTx", ctx, nil, mock.Anything).Return(nil).Once()
	suite.mockAccountRepo.On("Commit", ctx, nil).Return(nil).Once()
	suite.mockUserRepo.On("FindUsersByIDs", mock.Anything, mock.Anything).Return(map[string]domain.User{}, nil).Once()

	result, err := suite.service.Execute(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)

	// The trade settles on the parent ledger and keeps the delegate on record.
	suite.Equal(suite.buyer.AccountID, savedTxn.BuyerAccountID)
	suite.Equal(sub.SubAccountID, savedTxn.BuyerSubAccountID)
	suite.Empty(savedTxn.SellerSubAccountID)

	suite.Require().Len(savedAccounts, 2)
	byID := map[string]domain.Account{}
	for _, a := range savedAccounts {
		byID[a.AccountID] = a
	}
	suite.True(byID[suite.buyer.AccountID].BarterBalance.Equal(decimal.NewFromInt(1900)))

	suite.mockSubAccountRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestExecute_InactiveSubAccountRejected() {
	ctx := context.Background()
	sub := &domain.SubAccount{
		SubAccountID:    uuid.NewString(),
		ParentAccountID: suite.buyer.AccountID,
		IsActive:        false,
	}
	req := dto.ExecuteTransactionRequest{
		BuyerSubAccountID: sub.SubAccountID,
		SellerAccountID:   suite.seller.AccountID,
		Amount:            decimal.NewFromInt(100),
		InstallmentCount:  1,
	}

	suite.mockSubAccountRepo.On("FindSubAccountByID", ctx, sub.SubAccountID).Return(sub, nil).Once()

	result, err := suite.service.Execute(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestExecute_SubAccountOfWrongParentRejected() {
	ctx := context.Background()
	sub := &domain.SubAccount{
		SubAccountID:    uuid.NewString(),
		ParentAccountID: uuid.NewString(),
		IsActive:        true,
	}
	req := dto.ExecuteTransactionRequest{
		BuyerAccountID:    suite.buyer.AccountID,
		BuyerSubAccountID: sub.SubAccountID,
		SellerAccountID:   suite.seller.AccountID,
		Amount:            decimal.NewFromInt(100),
		InstallmentCount:  1,
	}

	suite.mockSubAccountRepo.On("FindSubAccountByID", ctx, sub.SubAccountID).Return(sub, nil).Once()

	_, err := suite.service.Execute(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestExecuteReversal_RestoresFundsAndCancels() {
	ctx := context.Background()
	suite.buyer.BarterBalance = decimal.Zero
	suite.buyer.UsedCredit = decimal.NewFromInt(1000)
	suite.seller.BarterBalance = decimal.NewFromInt(3100)

	txn := &domain.Transaction{
		TransactionID:   uuid.NewString(),
		BuyerAccountID:  suite.buyer.AccountID,
		SellerAccountID: suite.seller.AccountID,
		Amount:          decimal.NewFromInt(3000),
		FundsUsed: domain.FundsTrace{
			{Pool: domain.PoolBarter, Amount: decimal.NewFromInt(2000)},
			{Pool: domain.PoolCredit, Amount: decimal.NewFromInt(1000)},
		},
		Status: domain.TxReversalRequested,
	}

	suite.mockTxnRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockTxnRepo.On("Rollback", ctx, nil).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByIDForUpdate", ctx, nil, txn.TransactionID).Return(txn, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", ctx, nil, mock.Anything).Return(suite.lockedAccounts(), nil).Once()

	var savedAccounts []domain.Account
	suite.mockAccountRepo.On("UpdateAccountFundsInTx", ctx, nil, mock.AnythingOfType("[]domain.Account"), suite.actorID, mock.Anything).
		Run(func(args mock.Arguments) { savedAccounts = args.Get(2).([]domain.Account) }).
		Return(nil).Once()
	suite.mockBillingRepo.On("CancelBillingsByTransactionInTx", ctx, nil, txn.TransactionID, suite.actorID, mock.Anything).Return(nil).Once()
	suite.mockVoucherRepo.On("CancelVouchersByTransactionInTx", ctx, nil, txn.TransactionID, suite.actorID, mock.Anything).Return(nil).Once()
	suite.mockTxnRepo.On("MarkTransactionReversedInTx", ctx, nil, txn.TransactionID, mock.Anything, suite.actorID).Return(nil).Once()
	suite.mockTxnRepo.On("Commit", ctx, nil).Return(nil).Once()

	reversed, err := suite.service.ExecuteReversal(ctx, txn.TransactionID, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.TxReversed, reversed.Status)
	suite.Require().NotNil(reversed.ReversedAt)

	suite.Require().Len(savedAccounts, 2)
	byID := map[string]domain.Account{}
	for _, a := range savedAccounts {
		byID[a.AccountID] = a
	}
	suite.True(byID[suite.buyer.AccountID].BarterBalance.Equal(decimal.NewFromInt(2000)))
	suite.True(byID[suite.buyer.AccountID].UsedCredit.IsZero())
	suite.True(byID[suite.seller.AccountID].BarterBalance.Equal(decimal.NewFromInt(100)))

	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockBillingRepo.AssertExpectations(suite.T())
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestExecuteReversal_AlreadyReversedRejected() {
	ctx := context.Background()
	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		Status:        domain.TxReversed,
	}

	suite.mockTxnRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockTxnRepo.On("Rollback", ctx, nil).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByIDForUpdate", ctx, nil, txn.TransactionID).Return(txn, nil).Once()

	_, err := suite.service.ExecuteReversal(ctx, txn.TransactionID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidStateTransition)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccountFundsInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestRequestReversal_OnlyFromCompleted() {
	ctx := context.Background()
	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		Status:        domain.TxForwardedForReversal,
	}
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	_, err := suite.service.RequestReversal(ctx, txn.TransactionID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidStateTransition)
}

func (suite *TransactionServiceTestSuite) TestForwardReversal_FromRequested() {
	ctx := context.Background()
	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		Status:        domain.TxReversalRequested,
	}
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxnRepo.On("UpdateTransactionStatus", ctx, txn.TransactionID, domain.TxReversalRequested, domain.TxForwardedForReversal, suite.actorID, mock.Anything).Return(nil).Once()

	updated, err := suite.service.ForwardReversalToHeadquarters(ctx, txn.TransactionID, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.TxForwardedForReversal, updated.Status)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

// A status changed between the read and the write, for example by a reversal
// executing concurrently, must surface instead of being overwritten.
func (suite *TransactionServiceTestSuite) TestRequestReversal_ConcurrentStatusChangeSurfaces() {
	ctx := context.Background()
	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		Status:        domain.TxCompleted,
	}
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxnRepo.On("UpdateTransactionStatus", ctx, txn.TransactionID, domain.TxCompleted, domain.TxReversalRequested, suite.actorID, mock.Anything).
		Return(apperrors.ErrInvalidStateTransition).Once()

	_, err := suite.service.RequestReversal(ctx, txn.TransactionID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidStateTransition)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestTransactionService(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
