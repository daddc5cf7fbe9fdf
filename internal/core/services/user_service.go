package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MaxTecnology/rede-trade-back/internal/apperrors"
	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
	portsrepo "github.com/MaxTecnology/rede-trade-back/internal/core/ports/repositories"
	portssvc "github.com/MaxTecnology/rede-trade-back/internal/core/ports/services"
	"github.com/MaxTecnology/rede-trade-back/internal/dto"
	"github.com/MaxTecnology/rede-trade-back/internal/middleware"
	"github.com/MaxTecnology/rede-trade-back/internal/utils"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserBlocked        = errors.New("user is blocked")
)

// userService onboards and authenticates users.
type userService struct {
	userRepo  portsrepo.UserRepositoryFacade
	notifier  portssvc.Notifier
	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, notifier portssvc.Notifier, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) portssvc.UserSvcFacade {
	return &userService{
		userRepo:  userRepo,
		notifier:  notifier,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		jwtIssuer: jwtIssuer,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser onboards a user. The headquarters is resolved once here, from the
// creator's own precomputed headquarters, so request paths never walk the
// creator chain.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if existing, err := s.userRepo.FindUserByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrEmailTaken, req.Email, apperrors.ErrDuplicate)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID := uuid.NewString()
	headquartersID := userID // a root user is its own headquarters
	if creatorUserID != "" {
		creator, err := s.userRepo.FindUserByID(ctx, creatorUserID)
		if err != nil {
			return nil, fmt.Errorf("failed to load creator user %s: %w", creatorUserID, err)
		}
		headquartersID = creator.HeadquartersID
		if headquartersID == "" {
			headquartersID = creator.UserID
		}
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:                userID,
		Name:                  req.Name,
		Email:                 req.Email,
		PasswordHash:          string(hash),
		CreatorUserID:         creatorUserID,
		HeadquartersID:        headquartersID,
		ManagerCommissionRate: req.ManagerCommissionRate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	// Welcome email is best effort; onboarding never fails on a mail outage.
	if s.notifier != nil {
		body := fmt.Sprintf("Welcome to the network, %s. Your login is %s.\n", user.Name, user.Email)
		if err := s.notifier.Notify(ctx, user.Email, "Welcome", body); err != nil {
			logger.Warn("Failed to send welcome email", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		}
	}

	logger.Info("User created", slog.String("user_id", user.UserID))
	return &user, nil
}

// Login verifies credentials and returns a signed JWT plus the user.
func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrForbidden, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrForbidden, ErrInvalidCredentials)
	}
	if user.Blocked {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrForbidden, ErrUserBlocked)
	}

	token, err := utils.GenerateJWT(user.UserID, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		logger.Error("Failed to sign token", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	}, nil
}

// GetUserByID retrieves a specific user.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	return user, nil
}

// ListUsers retrieves a paginated list of users.
func (s *userService) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.userRepo.ListUsers(ctx, limit, offset)
}

// SetUserBlocked flips the blocked flag on a user.
func (s *userService) SetUserBlocked(ctx context.Context, userID string, blocked bool, actorUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	now := time.Now().UTC()
	if err := s.userRepo.SetUserBlocked(ctx, userID, blocked, actorUserID, now); err != nil {
		logger.Error("Failed to update blocked flag", slog.String("error", err.Error()), slog.String("user_id", userID))
		return fmt.Errorf("failed to update blocked flag for user %s: %w", userID, err)
	}

	logger.Info("User blocked flag updated", slog.String("user_id", userID), slog.Bool("blocked", blocked))
	return nil
}
