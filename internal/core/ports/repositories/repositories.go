package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo       AccountRepositoryWithTx
	AccountTypeRepo   AccountTypeRepository
	SubAccountRepo    SubAccountRepository
	TransactionRepo   TransactionRepositoryWithTx
	BillingRepo       BillingRepositoryFacade
	VoucherRepo       VoucherRepositoryFacade
	CreditRequestRepo CreditRequestRepositoryWithTx
	UserRepo          UserRepositoryFacade
	PlanRepo          PlanRepository
	FundRepo          FundRepository
	SequenceRepo      SequenceRepository
	ReportingRepo     ReportingRepository
}
