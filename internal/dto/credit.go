package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
)

// SubmitCreditRequestRequest defines the data needed to ask for a credit limit raise.
type SubmitCreditRequestRequest struct {
	AmountRequested decimal.Decimal `json:"amountRequested" binding:"required"`
	Reason          string          `json:"reason" binding:"required"`
}

// ForwardCreditRequestRequest carries the branch's comment when escalating to headquarters.
type ForwardCreditRequestRequest struct {
	Comment string `json:"comment"`
}

// CreditDecisionRequest records the headquarters' verdict on a credit request.
type CreditDecisionRequest struct {
	Approve bool   `json:"approve"`
	Comment string `json:"comment"`
}

// CreditRequestResponse defines the data returned for a credit request.
type CreditRequestResponse struct {
	CreditRequestID    string                     `json:"creditRequestID"`
	RequesterUserID    string                     `json:"requesterUserID"`
	RequesterAccountID string                     `json:"requesterAccountID"`
	AmountRequested    decimal.Decimal            `json:"amountRequested"`
	Reason             string                     `json:"reason"`
	Status             domain.CreditRequestStatus `json:"status"`
	BranchComment      string                     `json:"branchComment,omitempty"`
	HQComment          string                     `json:"hqComment,omitempty"`
	CreditLimitBefore  decimal.Decimal            `json:"creditLimitBefore"`
	CreatedAt          time.Time                  `json:"createdAt"`
	LastUpdatedAt      time.Time                  `json:"lastUpdatedAt"`
}

// ToCreditRequestResponse converts a domain.CreditRequest to its response DTO.
func ToCreditRequestResponse(cr *domain.CreditRequest) CreditRequestResponse {
	return CreditRequestResponse{
		CreditRequestID:    cr.CreditRequestID,
		RequesterUserID:    cr.RequesterUserID,
		RequesterAccountID: cr.RequesterAccountID,
		AmountRequested:    cr.AmountRequested,
		Reason:             cr.Reason,
		Status:             cr.Status,
		BranchComment:      cr.BranchComment,
		HQComment:          cr.HQComment,
		CreditLimitBefore:  cr.CreditLimitBefore,
		CreatedAt:          cr.CreatedAt,
		LastUpdatedAt:      cr.LastUpdatedAt,
	}
}

// ToCreditRequestResponses converts a slice of domain.CreditRequest to response DTOs.
func ToCreditRequestResponses(requests []domain.CreditRequest) []CreditRequestResponse {
	responses := make([]CreditRequestResponse, len(requests))
	for i, cr := range requests {
		responses[i] = ToCreditRequestResponse(&cr)
	}
	return responses
}

// ListCreditRequestsParams defines query parameters for credit request queues.
type ListCreditRequestsParams struct {
	Status string `form:"status"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}
