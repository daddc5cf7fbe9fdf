package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaxTecnology/rede-trade-back/internal/apperrors"
	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
)

func newBuyerAccount(barter, limit, used int64) *domain.Account {
	return &domain.Account{
		AccountID:     "acc_buyer",
		BarterBalance: decimal.NewFromInt(barter),
		CreditLimit:   decimal.NewFromInt(limit),
		UsedCredit:    decimal.NewFromInt(used),
	}
}

func TestAccount_DrawFunds(t *testing.T) {
	tests := []struct {
		name        string
		barter      int64
		limit       int64
		used        int64
		amount      int64
		wantErr     error
		wantTrace   domain.FundsTrace
		wantBarter  int64
		wantUsed    int64
		wantAvail   int64
	}{
		{
			name:   "barter covers whole amount",
			barter: 5000, limit: 1000, used: 0, amount: 3000,
			wantTrace:  domain.FundsTrace{{Pool: domain.PoolBarter, Amount: decimal.NewFromInt(3000)}},
			wantBarter: 2000, wantUsed: 0, wantAvail: 1000,
		},
		{
			name:   "barter drained then credit covers remainder",
			barter: 2000, limit: 5000, used: 0, amount: 3000,
			wantTrace: domain.FundsTrace{
				{Pool: domain.PoolBarter, Amount: decimal.NewFromInt(2000)},
				{Pool: domain.PoolCredit, Amount: decimal.NewFromInt(1000)},
			},
			wantBarter: 0, wantUsed: 1000, wantAvail: 4000,
		},
		{
			name:   "zero barter draws entirely from credit",
			barter: 0, limit: 5000, used: 1000, amount: 2500,
			wantTrace:  domain.FundsTrace{{Pool: domain.PoolCredit, Amount: decimal.NewFromInt(2500)}},
			wantBarter: 0, wantUsed: 3500, wantAvail: 1500,
		},
		{
			name:   "negative barter balance draws from credit only",
			barter: -500, limit: 5000, used: 0, amount: 1000,
			wantTrace:  domain.FundsTrace{{Pool: domain.PoolCredit, Amount: decimal.NewFromInt(1000)}},
			wantBarter: -500, wantUsed: 1000, wantAvail: 4000,
		},
		{
			name:   "pools together cannot cover amount",
			barter: 2000, limit: 5000, used: 4500, amount: 3000,
			wantErr: apperrors.ErrInsufficientFunds,
		},
		{
			name:   "non-positive amount rejected",
			barter: 2000, limit: 5000, used: 0, amount: 0,
			wantErr: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := newBuyerAccount(tt.barter, tt.limit, tt.used)
			barterBefore := acc.BarterBalance
			usedBefore := acc.UsedCredit

			trace, err := acc.DrawFunds(decimal.NewFromInt(tt.amount))

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				// A failed draw must leave the account untouched.
				assert.True(t, acc.BarterBalance.Equal(barterBefore), "barter balance mutated on failed draw")
				assert.True(t, acc.UsedCredit.Equal(usedBefore), "used credit mutated on failed draw")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTrace, trace)
			assert.True(t, acc.BarterBalance.Equal(decimal.NewFromInt(tt.wantBarter)), "barter after: %s", acc.BarterBalance)
			assert.True(t, acc.UsedCredit.Equal(decimal.NewFromInt(tt.wantUsed)), "used credit after: %s", acc.UsedCredit)
			assert.True(t, acc.AvailableCredit().Equal(decimal.NewFromInt(tt.wantAvail)), "available after: %s", acc.AvailableCredit())
		})
	}
}

func TestAccount_RestoreFunds_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		barter int64
		limit  int64
		used   int64
		amount int64
	}{
		{name: "mixed pools", barter: 2000, limit: 5000, used: 0, amount: 3000},
		{name: "barter only", barter: 5000, limit: 5000, used: 0, amount: 1234},
		{name: "credit only", barter: 0, limit: 5000, used: 500, amount: 4000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := newBuyerAccount(tt.barter, tt.limit, tt.used)
			barterBefore := acc.BarterBalance
			usedBefore := acc.UsedCredit

			trace, err := acc.DrawFunds(decimal.NewFromInt(tt.amount))
			require.NoError(t, err)

			require.NoError(t, acc.RestoreFunds(trace))

			assert.True(t, acc.BarterBalance.Equal(barterBefore), "barter not restored exactly: %s", acc.BarterBalance)
			assert.True(t, acc.UsedCredit.Equal(usedBefore), "used credit not restored exactly: %s", acc.UsedCredit)
		})
	}
}

func TestAccount_RestoreFunds_UnknownPool(t *testing.T) {
	acc := newBuyerAccount(0, 1000, 500)
	err := acc.RestoreFunds(domain.FundsTrace{{Pool: "CASH", Amount: decimal.NewFromInt(10)}})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAccount_CreditAndDebitFunds(t *testing.T) {
	acc := newBuyerAccount(100, 0, 0)

	require.NoError(t, acc.CreditFunds(decimal.NewFromInt(3000)))
	assert.True(t, acc.BarterBalance.Equal(decimal.NewFromInt(3100)))

	// Debit may push the barter balance negative; that is the reversal clawback.
	require.NoError(t, acc.DebitFunds(decimal.NewFromInt(5000)))
	assert.True(t, acc.BarterBalance.Equal(decimal.NewFromInt(-1900)))

	assert.ErrorIs(t, acc.CreditFunds(decimal.Zero), apperrors.ErrValidation)
	assert.ErrorIs(t, acc.DebitFunds(decimal.NewFromInt(-5)), apperrors.ErrValidation)
}

func TestAccount_RaiseCreditLimit(t *testing.T) {
	acc := newBuyerAccount(0, 4000, 4000)

	require.NoError(t, acc.RaiseCreditLimit(decimal.NewFromInt(1000)))
	assert.True(t, acc.CreditLimit.Equal(decimal.NewFromInt(5000)))
	assert.True(t, acc.AvailableCredit().Equal(decimal.NewFromInt(1000)))

	assert.ErrorIs(t, acc.RaiseCreditLimit(decimal.Zero), apperrors.ErrValidation)
}

func TestAccount_SalesCaps(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	thisMonth := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		companyCap     int64
		totalCap       int64
		monthlyCap     int64
		current        int64
		monthlyCurrent int64
		sale           int64
		wantErr        bool
	}{
		{name: "within all caps", companyCap: 10000, totalCap: 20000, current: 5000, sale: 4000},
		{name: "company cap breached", companyCap: 10000, totalCap: 20000, current: 9500, sale: 600, wantErr: true},
		{name: "total cap breached", companyCap: 0, totalCap: 10000, current: 9500, sale: 600, wantErr: true},
		{name: "monthly cap breached", monthlyCap: 1000, monthlyCurrent: 800, sale: 300, wantErr: true},
		{name: "exactly at cap allowed", companyCap: 10000, totalCap: 0, current: 9400, sale: 600},
		{name: "exactly at monthly cap allowed", monthlyCap: 1000, monthlyCurrent: 400, sale: 600},
		{name: "zero caps are unlimited", companyCap: 0, totalCap: 0, current: 999999, sale: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &domain.Account{
				AccountID:           "acc_seller",
				CompanySalesCap:     decimal.NewFromInt(tt.companyCap),
				TotalSalesCap:       decimal.NewFromInt(tt.totalCap),
				MonthlySalesCap:     decimal.NewFromInt(tt.monthlyCap),
				TotalSalesCurrent:   decimal.NewFromInt(tt.current),
				MonthlySalesCurrent: decimal.NewFromInt(tt.monthlyCurrent),
				MonthlySalesMonth:   thisMonth,
			}
			err := acc.RegisterSale(decimal.NewFromInt(tt.sale), now)
			if tt.wantErr {
				require.ErrorIs(t, err, apperrors.ErrCapExceeded)
				assert.True(t, acc.TotalSalesCurrent.Equal(decimal.NewFromInt(tt.current)), "counter mutated on rejected sale")
				assert.True(t, acc.MonthlySalesCurrent.Equal(decimal.NewFromInt(tt.monthlyCurrent)), "monthly counter mutated on rejected sale")
				return
			}
			require.NoError(t, err)
			assert.True(t, acc.TotalSalesCurrent.Equal(decimal.NewFromInt(tt.current+tt.sale)))
			assert.True(t, acc.MonthlySalesCurrent.Equal(decimal.NewFromInt(tt.monthlyCurrent+tt.sale)))
		})
	}
}

// A sale in a new calendar month resets the monthly counter before the cap
// check, so last month's volume never blocks this month's trades.
func TestAccount_MonthlySalesRollover(t *testing.T) {
	acc := &domain.Account{
		AccountID:           "acc_seller",
		MonthlySalesCap:     decimal.NewFromInt(1000),
		MonthlySalesCurrent: decimal.NewFromInt(950),
		MonthlySalesMonth:   time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
	}
	now := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)

	require.NoError(t, acc.RegisterSale(decimal.NewFromInt(800), now))

	assert.True(t, acc.MonthlySalesCurrent.Equal(decimal.NewFromInt(800)))
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), acc.MonthlySalesMonth)
	assert.True(t, acc.TotalSalesCurrent.Equal(decimal.NewFromInt(800)))
}

func TestTransactionStatus_Transitions(t *testing.T) {
	assert.True(t, domain.TxCompleted.CanRequestReversal())
	assert.False(t, domain.TxReversalRequested.CanRequestReversal())

	assert.True(t, domain.TxCompleted.CanForwardForReversal())
	assert.True(t, domain.TxReversalRequested.CanForwardForReversal())
	assert.False(t, domain.TxReversed.CanForwardForReversal())

	assert.True(t, domain.TxCompleted.CanReverse())
	assert.True(t, domain.TxReversalRequested.CanReverse())
	assert.True(t, domain.TxForwardedForReversal.CanReverse())
	assert.False(t, domain.TxReversed.CanReverse())
}
