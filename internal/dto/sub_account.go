package dto

import (
	"time"

	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
)

// CreateSubAccountRequest defines the data needed to open a delegate
// sub-account under a parent account.
type CreateSubAccountRequest struct {
	UserID string `json:"userID" binding:"required"`
	Name   string `json:"name" binding:"required"`
}

// SubAccountResponse defines the data returned for a sub-account.
type SubAccountResponse struct {
	SubAccountID    string    `json:"subAccountID"`
	ParentAccountID string    `json:"parentAccountID"`
	UserID          string    `json:"userID"`
	Name            string    `json:"name"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ToSubAccountResponse converts a domain.SubAccount to SubAccountResponse DTO.
func ToSubAccountResponse(sub *domain.SubAccount) SubAccountResponse {
	return SubAccountResponse{
		SubAccountID:    sub.SubAccountID,
		ParentAccountID: sub.ParentAccountID,
		UserID:          sub.UserID,
		Name:            sub.Name,
		IsActive:        sub.IsActive,
		CreatedAt:       sub.CreatedAt,
	}
}

// ToSubAccountResponses converts a slice of domain.SubAccount to []SubAccountResponse.
func ToSubAccountResponses(subs []domain.SubAccount) []SubAccountResponse {
	responses := make([]SubAccountResponse, len(subs))
	for i, sub := range subs {
		responses[i] = ToSubAccountResponse(&sub)
	}
	return responses
}
