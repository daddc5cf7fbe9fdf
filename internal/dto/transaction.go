package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
)

// ExecuteTransactionRequest defines the data needed to run a trade between
// a buyer and a seller. Each party is addressed either by its account or by a
// delegate sub-account, which resolves to the parent account's ledger.
type ExecuteTransactionRequest struct {
	BuyerAccountID     string          `json:"buyerAccountID" binding:"required_without=BuyerSubAccountID"`
	SellerAccountID    string          `json:"sellerAccountID" binding:"required_without=SellerSubAccountID"`
	BuyerSubAccountID  string          `json:"buyerSubAccountID"`
	SellerSubAccountID string          `json:"sellerSubAccountID"`
	Amount             decimal.Decimal `json:"amount" binding:"required"`
	Description        string          `json:"description"`
	OfferID            string          `json:"offerID"`
	InstallmentCount   int             `json:"installmentCount" binding:"required,min=1,max=12"`
}

// TransactionResponse defines the data returned for a trade transaction.
type TransactionResponse struct {
	TransactionID            string                   `json:"transactionID"`
	Code                     string                   `json:"code"`
	BuyerAccountID           string                   `json:"buyerAccountID"`
	SellerAccountID          string                   `json:"sellerAccountID"`
	BuyerSubAccountID        string                   `json:"buyerSubAccountID,omitempty"`
	SellerSubAccountID       string                   `json:"sellerSubAccountID,omitempty"`
	Amount                   decimal.Decimal          `json:"amount"`
	Description              string                   `json:"description"`
	OfferID                  string                   `json:"offerID,omitempty"`
	FundsUsed                domain.FundsTrace        `json:"fundsUsed"`
	BuyerBarterAfter         decimal.Decimal          `json:"buyerBarterAfter"`
	BuyerCreditAfter         decimal.Decimal          `json:"buyerCreditAfter"`
	SellerBarterAfter        decimal.Decimal          `json:"sellerBarterAfter"`
	CommissionTotal          decimal.Decimal          `json:"commissionTotal"`
	CommissionPerInstallment decimal.Decimal          `json:"commissionPerInstallment"`
	InstallmentCount         int                      `json:"installmentCount"`
	Status                   domain.TransactionStatus `json:"status"`
	ReversedAt               *time.Time               `json:"reversedAt,omitempty"`
	CreatedAt                time.Time                `json:"createdAt"`
}

// TransactionResult is the success payload of the execute endpoint. The
// transaction is committed even when confirmation emails could not be sent;
// NotificationsSent tells the caller which of the two happened.
type TransactionResult struct {
	Transaction       TransactionResponse `json:"transaction"`
	NotificationsSent bool                `json:"notificationsSent"`
}

// InsufficientFundsResponse is returned with HTTP 200 when the buyer cannot
// cover the trade. This is a business outcome, not an error.
type InsufficientFundsResponse struct {
	Status  string `json:"status"` // always "INSUFFICIENT_FUNDS"
	Message string `json:"message"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:            txn.TransactionID,
		Code:                     txn.Code,
		BuyerAccountID:           txn.BuyerAccountID,
		SellerAccountID:          txn.SellerAccountID,
		BuyerSubAccountID:        txn.BuyerSubAccountID,
		SellerSubAccountID:       txn.SellerSubAccountID,
		Amount:                   txn.Amount,
		Description:              txn.Description,
		OfferID:                  txn.OfferID,
		FundsUsed:                txn.FundsUsed,
		BuyerBarterAfter:         txn.BuyerBarterAfter,
		BuyerCreditAfter:         txn.BuyerCreditAfter,
		SellerBarterAfter:        txn.SellerBarterAfter,
		CommissionTotal:          txn.CommissionTotal,
		CommissionPerInstallment: txn.CommissionPerInstallment,
		InstallmentCount:         txn.InstallmentCount,
		Status:                   txn.Status,
		ReversedAt:               txn.ReversedAt,
		CreatedAt:                txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}

// ListTransactionsParams defines query parameters for transaction listings.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
