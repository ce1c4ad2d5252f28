package usecases

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"ahorros.backend/internal/domain/entities"
	domainerrors "ahorros.backend/internal/domain/errors"
	"ahorros.backend/internal/domain/repositories"
	"ahorros.backend/pkg/crypto"
	"ahorros.backend/pkg/jwt"
	"ahorros.backend/pkg/logger"
	"ahorros.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
)

var hashPassword = crypto.HashPassword

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo    repositories.UserRepository
	jwtService  *jwt.JWTService
	defaultPlan string
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	jwtService *jwt.JWTService,
	defaultPlan string,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:    userRepo,
		jwtService:  jwtService,
		defaultPlan: defaultPlan,
	}
}

// Register creates an account on behalf of an admin. New accounts must change their password.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterUserInput) (*entities.AuthResponse, error) {
	role := entities.UserRole(input.Role)
	if role == "" {
		role = entities.UserRoleUser
	}
	if !role.Valid() {
		return nil, domainerrors.Validation("role must be USER or ADMIN")
	}

	user, err := u.createUser(ctx, input, role, true)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "User registered", zap.String("user_id", user.ID.String()), zap.String("role", string(role)))
	return u.issue(user)
}

// RegisterFirstAdmin bootstraps the first ADMIN. It is refused once any admin exists.
func (u *AuthUsecase) RegisterFirstAdmin(ctx context.Context, input *entities.RegisterUserInput) (*entities.AuthResponse, error) {
	exists, err := u.userRepo.AnyAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainerrors.Forbidden("an admin already exists; use the regular register endpoint")
	}

	user, err := u.createUser(ctx, input, entities.UserRoleAdmin, false)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "First admin created", zap.String("user_id", user.ID.String()))
	return u.issue(user)
}

func (u *AuthUsecase) createUser(ctx context.Context, input *entities.RegisterUserInput, role entities.UserRole, mustChangePassword bool) (*entities.User, error) {
	phone := strings.TrimSpace(input.Phone)
	name := strings.TrimSpace(input.Name)
	if phone == "" || name == "" {
		return nil, domainerrors.Validation("name and phone are required")
	}
	if len(input.Password) < crypto.MinPasswordLength {
		return nil, domainerrors.Validation("password must be at least 6 characters")
	}

	_, err := u.userRepo.GetByPhone(ctx, phone)
	if err == nil {
		return nil, domainerrors.Conflict("user already exists with that phone number")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	plan := strings.TrimSpace(input.PlanType)
	if plan == "" {
		plan = u.defaultPlan
	}

	now := time.Now()
	user := &entities.User{
		ID:                  utils.GenerateUUIDv7(),
		Name:                name,
		Phone:               phone,
		PasswordHash:        passwordHash,
		Role:                role,
		PlanType:            null.StringFrom(plan),
		IsActive:            true,
		NeedsPasswordChange: mustChangePassword,
		RegisteredEvents:    []uuid.UUID{},
		Badges:              []entities.BadgeInstance{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("user already exists with that phone number")
		}
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and returns tokens
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByPhone(ctx, strings.TrimSpace(input.Phone))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domainerrors.ErrUserInactive
	}

	return u.issue(user)
}

// ChangePassword replaces the password and clears the forced-change flag
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.OldPassword, user.PasswordHash) {
		return nil, domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeInvalidCredentials, "old password is incorrect", domainerrors.ErrInvalidCredentials)
	}
	if len(input.NewPassword) < crypto.MinPasswordLength {
		return nil, domainerrors.Validation("new password must be at least 6 characters")
	}

	hash, err := hashPassword(input.NewPassword)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	user.NeedsPasswordChange = false

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SkipPasswordChange dismisses the forced-change flag without changing the password
func (u *AuthUsecase) SkipPasswordChange(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, err
	}

	user.NeedsPasswordChange = false
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// RefreshToken issues a new token pair from a valid refresh token
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*entities.AuthResponse, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, domainerrors.ErrTokenExpired
		}
		return nil, domainerrors.ErrUnauthorized
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrUnauthorized
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domainerrors.ErrUserInactive
	}

	return u.issue(user)
}

// GetMe returns the authenticated user
func (u *AuthUsecase) GetMe(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

func (u *AuthUsecase) issue(user *entities.User) (*entities.AuthResponse, error) {
	tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.Phone, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:         tokens.AccessToken,
		RefreshToken:        tokens.RefreshToken,
		User:                user.Ref(),
		NeedsPasswordChange: user.NeedsPasswordChange,
	}, nil
}
