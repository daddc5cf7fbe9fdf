package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
)

// CreateUserRequest defines the data needed to onboard a new user.
type CreateUserRequest struct {
	Name                  string          `json:"name" binding:"required"`
	Email                 string          `json:"email" binding:"required,email"`
	Password              string          `json:"password" binding:"required,min=8"`
	ManagerCommissionRate decimal.Decimal `json:"managerCommissionRate"`
}

// UserResponse defines the data returned for a user. Never includes the hash.
type UserResponse struct {
	UserID                string          `json:"userID"`
	Name                  string          `json:"name"`
	Email                 string          `json:"email"`
	CreatorUserID         string          `json:"creatorUserID,omitempty"`
	HeadquartersID        string          `json:"headquartersID"`
	Blocked               bool            `json:"blocked"`
	ManagerCommissionRate decimal.Decimal `json:"managerCommissionRate"`
	CreatedAt             time.Time       `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:                u.UserID,
		Name:                  u.Name,
		Email:                 u.Email,
		CreatorUserID:         u.CreatorUserID,
		HeadquartersID:        u.HeadquartersID,
		Blocked:               u.Blocked,
		ManagerCommissionRate: u.ManagerCommissionRate,
		CreatedAt:             u.CreatedAt,
	}
}

// ToUserResponses converts a slice of domain.User to []UserResponse.
func ToUserResponses(users []domain.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, u := range users {
		responses[i] = ToUserResponse(&u)
	}
	return responses
}

// LoginRequest defines the credentials for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
