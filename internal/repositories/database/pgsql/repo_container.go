package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/MaxTecnology/rede-trade-back/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgx-backed repositories over one shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:       newPgxAccountRepository(dbPool),
		AccountTypeRepo:   newPgxAccountTypeRepository(dbPool),
		SubAccountRepo:    newPgxSubAccountRepository(dbPool),
		TransactionRepo:   newPgxTransactionRepository(dbPool),
		BillingRepo:       newPgxBillingRepository(dbPool),
		VoucherRepo:       newPgxVoucherRepository(dbPool),
		CreditRequestRepo: newPgxCreditRequestRepository(dbPool),
		UserRepo:          newPgxUserRepository(dbPool),
		PlanRepo:          newPgxPlanRepository(dbPool),
		FundRepo:          newPgxFundRepository(dbPool),
		SequenceRepo:      newPgxSequenceRepository(dbPool),
		ReportingRepo:     newPgxReportingRepository(dbPool),
	}
}
