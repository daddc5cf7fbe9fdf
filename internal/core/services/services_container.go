package services

import (
	portsrepo "github.com/MaxTecnology/rede-trade-back/internal/core/ports/repositories"
	portssvc "github.com/MaxTecnology/rede-trade-back/internal/core/ports/services"
	"github.com/MaxTecnology/rede-trade-back/internal/platform/config"
)

// NewServiceContainer wires all application services from the repository
// provider, the notifier and the runtime configuration.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, notifier portssvc.Notifier) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo, notifier, cfg.JWTSecret, cfg.JWTExpiry, cfg.JWTIssuer)

	container.Account = NewAccountService(
		repos.AccountRepo,
		repos.AccountTypeRepo,
		repos.SubAccountRepo,
		repos.UserRepo,
		repos.SequenceRepo,
		repos.FundRepo,
	)

	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.AccountRepo,
		repos.SubAccountRepo,
		repos.BillingRepo,
		repos.VoucherRepo,
		repos.UserRepo,
		repos.PlanRepo,
		notifier,
	)

	container.CreditRequest = NewCreditRequestService(
		repos.CreditRequestRepo,
		repos.AccountRepo,
		repos.FundRepo,
	)

	container.Billing = NewBillingService(repos.BillingRepo)
	container.Voucher = NewVoucherService(repos.VoucherRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.UserRepo)

	return container
}
