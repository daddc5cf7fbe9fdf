package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
)

// BillingResponse defines the data returned for a commission billing.
type BillingResponse struct {
	BillingID      string               `json:"billingID"`
	TransactionID  string               `json:"transactionID"`
	PayerAccountID string               `json:"payerAccountID"`
	Reference      string               `json:"reference"`
	AmountDue      decimal.Decimal      `json:"amountDue"`
	DueDate        time.Time            `json:"dueDate"`
	Status         domain.BillingStatus `json:"status"`
	CreatedAt      time.Time            `json:"createdAt"`
}

// ToBillingResponse converts a domain.Billing to BillingResponse DTO.
func ToBillingResponse(b *domain.Billing) BillingResponse {
	return BillingResponse{
		BillingID:      b.BillingID,
		TransactionID:  b.TransactionID,
		PayerAccountID: b.PayerAccountID,
		Reference:      b.Reference,
		AmountDue:      b.AmountDue,
		DueDate:        b.DueDate,
		Status:         b.Status,
		CreatedAt:      b.CreatedAt,
	}
}

// ToBillingResponses converts a slice of domain.Billing to []BillingResponse.
func ToBillingResponses(billings []domain.Billing) []BillingResponse {
	responses := make([]BillingResponse, len(billings))
	for i, b := range billings {
		responses[i] = ToBillingResponse(&b)
	}
	return responses
}

// ListBillingsParams defines query parameters for billing listings.
type ListBillingsParams struct {
	AccountID string  `form:"accountID" binding:"required"`
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListBillingsResponse wraps a page of billings.
type ListBillingsResponse struct {
	Billings  []BillingResponse `json:"billings"`
	NextToken *string           `json:"nextToken,omitempty"`
}
