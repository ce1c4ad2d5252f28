package handlers

import (
	"context"
	"net/http"

	"ahorros.backend/internal/domain/entities"
	"ahorros.backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthService is the auth usecase as seen by the handler
type AuthService interface {
	Register(ctx context.Context, input *entities.RegisterUserInput) (*entities.AuthResponse, error)
	RegisterFirstAdmin(ctx context.Context, input *entities.RegisterUserInput) (*entities.AuthResponse, error)
	Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) (*entities.User, error)
	SkipPasswordChange(ctx context.Context, userID uuid.UUID) (*entities.User, error)
	RefreshToken(ctx context.Context, refreshToken string) (*entities.AuthResponse, error)
	GetMe(ctx context.Context, userID uuid.UUID) (*entities.User, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase AuthService) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// Register creates an account on behalf of an admin
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterUserInput
	if !bindJSON(c, &input) {
		return
	}

	resp, err := h.authUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp)
}

// RegisterFirstAdmin bootstraps the first admin account
// POST /api/auth/register-first-admin
func (h *AuthHandler) RegisterFirstAdmin(c *gin.Context) {
	var input entities.RegisterUserInput
	if !bindJSON(c, &input) {
		return
	}

	resp, err := h.authUsecase.RegisterFirstAdmin(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp)
}

// Login handles phone + password login
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if !bindJSON(c, &input) {
		return
	}

	resp, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// ChangePassword handles password change
// POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var input entities.ChangePasswordInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.authUsecase.ChangePassword(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Password changed successfully", user.Ref())
}

// SkipPasswordChange dismisses the forced password change
// POST /api/auth/skip-password-change
func (h *AuthHandler) SkipPasswordChange(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.authUsecase.SkipPasswordChange(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Password change skipped", user.Ref())
}

// RefreshToken issues a new token pair
// POST /api/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if !bindJSON(c, &input) {
		return
	}

	resp, err := h.authUsecase.RefreshToken(c.Request.Context(), input.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// GetMe returns the authenticated user
// GET /api/auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.authUsecase.GetMe(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}
