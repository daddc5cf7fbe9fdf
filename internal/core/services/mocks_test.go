package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
	portsrepo "github.com/MaxTecnology/rede-trade-back/internal/core/ports/repositories"
	portssvc "github.com/MaxTecnology/rede-trade-back/internal/core/ports/services"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryWithTx = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockAccountRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAccountRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByOwnerUserID(ctx context.Context, ownerUserID string) (*domain.Account, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByHeadquarters(ctx context.Context, headquartersID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, headquartersID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	args := m.Called(ctx, tx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountFundsInTx(ctx context.Context, tx pgx.Tx, accounts []domain.Account, userID string, now time.Time) error {
	args := m.Called(ctx, tx, accounts, userID, now)
	return args.Error(0)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryWithTx = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTransactionRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByCode(ctx context.Context, code string) (*domain.Transaction, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		val := args.Get(1).(string)
		token = &val
	}
	return args.Get(0).([]domain.Transaction), token, args.Error(2)
}

func (m *MockTransactionRepository) ListTransactionsByStatus(ctx context.Context, status domain.TransactionStatus, headquartersID *string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, status, headquartersID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		val := args.Get(1).(string)
		token = &val
	}
	return args.Get(0).([]domain.Transaction), token, args.Error(2)
}

func (m *MockTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, from domain.TransactionStatus, to domain.TransactionStatus, userID string, now time.Time) error {
	args := m.Called(ctx, transactionID, from, to, userID, now)
	return args.Error(0)
}

func (m *MockTransactionRepository) MarkTransactionReversedInTx(ctx context.Context, tx pgx.Tx, transactionID string, reversedAt time.Time, userID string) error {
	args := m.Called(ctx, tx, transactionID, reversedAt, userID)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByIDForUpdate(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, tx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// --- Mock BillingRepository ---

type MockBillingRepository struct {
	mock.Mock
}

var _ portsrepo.BillingRepositoryFacade = (*MockBillingRepository)(nil)

func (m *MockBillingRepository) FindBillingByID(ctx context.Context, billingID string) (*domain.Billing, error) {
	args := m.Called(ctx, billingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Billing), args.Error(1)
}

func (m *MockBillingRepository) ListBillingsByPayer(ctx context.Context, payerAccountID string, limit int, nextToken *string) ([]domain.Billing, *string, error) {
	args := m.Called(ctx, payerAccountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		val := args.Get(1).(string)
		token = &val
	}
	return args.Get(0).([]domain.Billing), token, args.Error(2)
}

func (m *MockBillingRepository) FindBillingsByTransactionID(ctx context.Context, transactionID string) ([]domain.Billing, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Billing), args.Error(1)
}

func (m *MockBillingRepository) SaveBillingsInTx(ctx context.Context, tx pgx.Tx, billings []domain.Billing) error {
	args := m.Called(ctx, tx, billings)
	return args.Error(0)
}

func (m *MockBillingRepository) SettleBilling(ctx context.Context, billingID string, userID string, now time.Time) error {
	args := m.Called(ctx, billingID, userID, now)
	return args.Error(0)
}

func (m *MockBillingRepository) CancelBillingsByTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string, userID string, now time.Time) error {
	args := m.Called(ctx, tx, transactionID, userID, now)
	return args.Error(0)
}

// --- Mock VoucherRepository ---

type MockVoucherRepository struct {
	mock.Mock
}

var _ portsrepo.VoucherRepositoryFacade = (*MockVoucherRepository)(nil)

func (m *MockVoucherRepository) FindVoucherByCode(ctx context.Context, code string) (*domain.Voucher, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) FindVouchersByTransactionID(ctx context.Context, transactionID string) ([]domain.Voucher, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) SaveVoucherInTx(ctx context.Context, tx pgx.Tx, voucher domain.Voucher) error {
	args := m.Called(ctx, tx, voucher)
	return args.Error(0)
}

func (m *MockVoucherRepository) RedeemVoucher(ctx context.Context, voucherID string, userID string, now time.Time) error {
	args := m.Called(ctx, voucherID, userID, now)
	return args.Error(0)
}

func (m *MockVoucherRepository) CancelVouchersByTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string, userID string, now time.Time) error {
	args := m.Called(ctx, tx, transactionID, userID, now)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsersByIDs(ctx context.Context, userIDs []string) (map[string]domain.User, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SetUserBlocked(ctx context.Context, userID string, blocked bool, updatedBy string, now time.Time) error {
	args := m.Called(ctx, userID, blocked, updatedBy, now)
	return args.Error(0)
}

// --- Mock PlanRepository ---

type MockPlanRepository struct {
	mock.Mock
}

var _ portsrepo.PlanRepository = (*MockPlanRepository)(nil)

func (m *MockPlanRepository) FindPlanByID(ctx context.Context, planID string) (*domain.Plan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func (m *MockPlanRepository) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plan), args.Error(1)
}

func (m *MockPlanRepository) SavePlan(ctx context.Context, plan domain.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

// --- Mock CreditRequestRepository ---

type MockCreditRequestRepository struct {
	mock.Mock
}

var _ portsrepo.CreditRequestRepositoryWithTx = (*MockCreditRequestRepository)(nil)

func (m *MockCreditRequestRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockCreditRequestRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockCreditRequestRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockCreditRequestRepository) FindCreditRequestByID(ctx context.Context, requestID string) (*domain.CreditRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditRequest), args.Error(1)
}

func (m *MockCreditRequestRepository) ListCreditRequestsByStatus(ctx context.Context, status domain.CreditRequestStatus, limit int, offset int) ([]domain.CreditRequest, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditRequest), args.Error(1)
}

func (m *MockCreditRequestRepository) ListCreditRequestsByRequester(ctx context.Context, requesterUserID string, limit int, offset int) ([]domain.CreditRequest, error) {
	args := m.Called(ctx, requesterUserID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditRequest), args.Error(1)
}

func (m *MockCreditRequestRepository) SaveCreditRequest(ctx context.Context, request domain.CreditRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockCreditRequestRepository) UpdateCreditRequest(ctx context.Context, request domain.CreditRequest, expected domain.CreditRequestStatus) error {
	args := m.Called(ctx, request, expected)
	return args.Error(0)
}

func (m *MockCreditRequestRepository) UpdateCreditRequestInTx(ctx context.Context, tx pgx.Tx, request domain.CreditRequest, expected domain.CreditRequestStatus) error {
	args := m.Called(ctx, tx, request, expected)
	return args.Error(0)
}

// --- Mock AccountTypeRepository ---

type MockAccountTypeRepository struct {
	mock.Mock
}

var _ portsrepo.AccountTypeRepository = (*MockAccountTypeRepository)(nil)

func (m *MockAccountTypeRepository) FindAccountTypeByID(ctx context.Context, accountTypeID string) (*domain.AccountType, error) {
	args := m.Called(ctx, accountTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountType), args.Error(1)
}

func (m *MockAccountTypeRepository) ListAccountTypes(ctx context.Context) ([]domain.AccountType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountType), args.Error(1)
}

func (m *MockAccountTypeRepository) SaveAccountType(ctx context.Context, accountType domain.AccountType) error {
	args := m.Called(ctx, accountType)
	return args.Error(0)
}

// --- Mock SubAccountRepository ---

type MockSubAccountRepository struct {
	mock.Mock
}

var _ portsrepo.SubAccountRepository = (*MockSubAccountRepository)(nil)

func (m *MockSubAccountRepository) SaveSubAccount(ctx context.Context, sub domain.SubAccount) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubAccountRepository) FindSubAccountByID(ctx context.Context, subAccountID string) (*domain.SubAccount, error) {
	args := m.Called(ctx, subAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubAccount), args.Error(1)
}

func (m *MockSubAccountRepository) ListSubAccountsByParent(ctx context.Context, parentAccountID string) ([]domain.SubAccount, error) {
	args := m.Called(ctx, parentAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SubAccount), args.Error(1)
}

func (m *MockSubAccountRepository) DeactivateSubAccount(ctx context.Context, subAccountID string, userID string, now time.Time) error {
	args := m.Called(ctx, subAccountID, userID, now)
	return args.Error(0)
}

// --- Mock SequenceRepository ---

type MockSequenceRepository struct {
	mock.Mock
}

var _ portsrepo.SequenceRepository = (*MockSequenceRepository)(nil)

func (m *MockSequenceRepository) NextValueInTx(ctx context.Context, tx pgx.Tx, scopeKey string) (int64, error) {
	args := m.Called(ctx, tx, scopeKey)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock FundRepository ---

type MockFundRepository struct {
	mock.Mock
}

var _ portsrepo.FundRepository = (*MockFundRepository)(nil)

func (m *MockFundRepository) SaveFundEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.FundEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockFundRepository) ListFundEntriesByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.FundEntry, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FundEntry), args.Error(1)
}

func (m *MockFundRepository) SumFundEntriesByHeadquarters(ctx context.Context, headquartersID string) (decimal.Decimal, error) {
	args := m.Called(ctx, headquartersID)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock Notifier ---

type MockNotifier struct {
	mock.Mock
}

var _ portssvc.Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) Notify(ctx context.Context, recipientEmail string, subject string, body string) error {
	args := m.Called(ctx, recipientEmail, subject, body)
	return args.Error(0)
}
