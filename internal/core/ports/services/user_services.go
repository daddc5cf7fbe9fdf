package services

import (
	"context"

	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
	"github.com/MaxTecnology/rede-trade-back/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a specific user by their unique identifier.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser onboards a user: hashes the password, resolves the
	// headquarters from the creator chain, sends a welcome email (non-fatal).
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)

	// SetUserBlocked flips the blocked flag on a user.
	SetUserBlocked(ctx context.Context, userID string, blocked bool, actorUserID string) error
}

// AuthSvc authenticates users and issues tokens.
type AuthSvc interface {
	// Login verifies credentials and returns a signed JWT plus the user.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	AuthSvc
}
