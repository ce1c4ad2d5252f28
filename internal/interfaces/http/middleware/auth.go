package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"ahorros.backend/internal/domain/entities"
	domainerrors "ahorros.backend/internal/domain/errors"
	"ahorros.backend/internal/interfaces/http/response"
	"ahorros.backend/pkg/jwt"
	"ahorros.backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UserRoleKey is the context key for user role
	UserRoleKey = "userRole"
	// UserKey is the context key for the loaded user
	UserKey = "user"
)

// UserLoader resolves the account behind a token
type UserLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
}

// AuthMiddleware validates the bearer token and loads the current user
func AuthMiddleware(jwtService *jwt.JWTService, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			abortUnauthorized(c, "Not authorized, no token")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization format. Use: Bearer <token>")
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimPrefix(authHeader, BearerPrefix))
		if err != nil {
			logger.Warn(c.Request.Context(), "Token rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
			if errors.Is(err, jwt.ErrExpiredToken) {
				abortUnauthorized(c, "Token has expired")
				return
			}
			abortUnauthorized(c, "Not authorized, token failed")
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				abortUnauthorized(c, "User not found")
				return
			}
			response.Error(c, err)
			c.Abort()
			return
		}
		if !user.IsActive {
			response.Error(c, domainerrors.Forbidden("user is not active"))
			c.Abort()
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(UserRoleKey, string(user.Role))
		c.Set(UserKey, user)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	response.ErrorWithError(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, message)
	c.Abort()
}

// GetUserID gets the user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetUserRole gets the user role from context
func GetUserRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	s, ok := role.(string)
	return s, ok
}

// GetUser gets the loaded user from context
func GetUser(c *gin.Context) (*entities.User, bool) {
	user, exists := c.Get(UserKey)
	if !exists {
		return nil, false
	}
	u, ok := user.(*entities.User)
	return u, ok
}

// RequireRole creates a middleware that requires one of roles
func RequireRole(roles ...entities.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := GetUserRole(c)
		if !exists {
			abortUnauthorized(c, "User role not found")
			return
		}

		for _, role := range roles {
			if userRole == string(role) {
				c.Next()
				return
			}
		}

		response.ErrorWithError(c, http.StatusForbidden, domainerrors.CodeForbidden,
			"User role "+userRole+" is not authorized to access this route")
		c.Abort()
	}
}

// RequireAdmin creates a middleware that requires the ADMIN role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(entities.UserRoleAdmin)
}
