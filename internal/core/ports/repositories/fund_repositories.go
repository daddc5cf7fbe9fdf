package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
)

// FundRepository defines operations for the barter fund register
type FundRepository interface {
	// SaveFundEntryInTx records a fund register entry within a database transaction.
	SaveFundEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.FundEntry) error

	// ListFundEntriesByAccount retrieves the fund entries of an account, newest first.
	ListFundEntriesByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.FundEntry, error)

	// SumFundEntriesByHeadquarters totals fund entries across a headquarters' network.
	SumFundEntriesByHeadquarters(ctx context.Context, headquartersID string) (decimal.Decimal, error)
}
