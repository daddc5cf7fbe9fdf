package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
)

// CreateAccountRequest defines the data needed to open a new account.
type CreateAccountRequest struct {
	OwnerUserID     string          `json:"ownerUserID" binding:"required"`
	AccountTypeID   string          `json:"accountTypeID" binding:"required"`
	ManagerUserID   string          `json:"managerUserID"` // Optional commission payee
	PlanID          string          `json:"planID"`        // Optional
	CreditLimit     decimal.Decimal `json:"creditLimit"`
	MonthlySalesCap decimal.Decimal `json:"monthlySalesCap"`
	TotalSalesCap   decimal.Decimal `json:"totalSalesCap"`
	CompanySalesCap decimal.Decimal `json:"companySalesCap"`
	BillingCloseDay int             `json:"billingCloseDay" binding:"required,min=1,max=31"`
	BillingDueDay   int             `json:"billingDueDay" binding:"required,min=1,max=31"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID           string             `json:"accountID"`
	OwnerUserID         string             `json:"ownerUserID"`
	AccountNumber       string             `json:"accountNumber"`
	AccountTypeID       string             `json:"accountTypeID"`
	Tier                domain.AccountTier `json:"tier"`
	HeadquartersID      string             `json:"headquartersID"`
	ManagerUserID       string             `json:"managerUserID"`
	PlanID              string             `json:"planID"`
	CreditLimit         decimal.Decimal    `json:"creditLimit"`
	UsedCredit          decimal.Decimal    `json:"usedCredit"`
	AvailableCredit     decimal.Decimal    `json:"availableCredit"`
	BarterBalance       decimal.Decimal    `json:"barterBalance"`
	MonthlySalesCap     decimal.Decimal    `json:"monthlySalesCap"`
	TotalSalesCap       decimal.Decimal    `json:"totalSalesCap"`
	CompanySalesCap     decimal.Decimal    `json:"companySalesCap"`
	MonthlySalesCurrent decimal.Decimal    `json:"monthlySalesCurrent"`
	TotalSalesCurrent   decimal.Decimal    `json:"totalSalesCurrent"`
	BillingCloseDay     int                `json:"billingCloseDay"`
	BillingDueDay       int                `json:"billingDueDay"`
	IsActive            bool               `json:"isActive"`
	CreatedAt           time.Time          `json:"createdAt"`
	CreatedBy           string             `json:"createdBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:           acc.AccountID,
		OwnerUserID:         acc.OwnerUserID,
		AccountNumber:       acc.AccountNumber,
		AccountTypeID:       acc.AccountTypeID,
		Tier:                acc.Tier,
		HeadquartersID:      acc.HeadquartersID,
		ManagerUserID:       acc.ManagerUserID,
		PlanID:              acc.PlanID,
		CreditLimit:         acc.CreditLimit,
		UsedCredit:          acc.UsedCredit,
		AvailableCredit:     acc.AvailableCredit(),
		BarterBalance:       acc.BarterBalance,
		MonthlySalesCap:     acc.MonthlySalesCap,
		TotalSalesCap:       acc.TotalSalesCap,
		CompanySalesCap:     acc.CompanySalesCap,
		MonthlySalesCurrent: acc.MonthlySalesCurrent,
		TotalSalesCurrent:   acc.TotalSalesCurrent,
		BillingCloseDay:     acc.BillingCloseDay,
		BillingDueDay:       acc.BillingDueDay,
		IsActive:            acc.IsActive,
		CreatedAt:           acc.CreatedAt,
		CreatedBy:           acc.CreatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
